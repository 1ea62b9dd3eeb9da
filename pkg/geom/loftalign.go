package geom

import "math"

// LoopAlignment describes how to re-index and possibly reverse a ring so
// that it lines up, vertex for vertex, with a reference ring of the same
// length.
type LoopAlignment struct {
	Rotation int
	Reversed bool
	Cost     float64
}

// AlignLoop searches over every rotation of candidate (and, if tryReverse,
// every rotation of its reversal) for the one that minimizes the sum of
// squared edge-midpoint distances to reference. Ties are broken by the
// smaller rotation index, and a reversed alignment is only chosen when it
// is strictly better than the best non-reversed one; both rules make the
// search deterministic across repeated runs with identical input, which
// matters because loft re-runs on every history replay.
//
// reference and candidate must be open (non-duplicated-closing-point)
// rings of equal length; callers are expected to have already resampled
// both rings to a common vertex count before calling this.
func AlignLoop(reference, candidate Polyline2, tryReverse bool) LoopAlignment {
	n := len(reference)
	best := LoopAlignment{Rotation: 0, Reversed: false, Cost: ringCost(reference, candidate.RotateStart(0))}

	for rot := 1; rot < n; rot++ {
		cost := ringCost(reference, candidate.RotateStart(rot))
		if cost < best.Cost {
			best = LoopAlignment{Rotation: rot, Reversed: false, Cost: cost}
		}
	}

	if tryReverse {
		reversed := candidate.ReverseLoop()
		for rot := 0; rot < n; rot++ {
			cost := ringCost(reference, reversed.RotateStart(rot))
			if cost < best.Cost {
				best = LoopAlignment{Rotation: rot, Reversed: true, Cost: cost}
			}
		}
	}

	return best
}

// Apply returns candidate re-indexed per the alignment (reverse first, then
// rotate, matching how it was scored in AlignLoop).
func (a LoopAlignment) Apply(candidate Polyline2) Polyline2 {
	ring := candidate
	if a.Reversed {
		ring = ring.ReverseLoop()
	}
	return ring.RotateStart(a.Rotation)
}

// ringCost sums squared distances between corresponding edge midpoints of
// two equal-length rings (edge i runs from point i to point i+1, wrapping).
func ringCost(reference, candidate Polyline2) float64 {
	n := len(reference)
	if len(candidate) != n {
		return math.MaxFloat64
	}
	var sum float64
	for i := 0; i < n; i++ {
		rm := edgeMidpoint(reference, i)
		cm := edgeMidpoint(candidate, i)
		d := rm.Sub(cm)
		sum += d.Dot(d)
	}
	return sum
}

func edgeMidpoint(ring Polyline2, i int) Vec2 {
	n := len(ring)
	return ring[i].Lerp(ring[(i+1)%n], 0.5)
}

// ResampleRing resamples an open ring to target arc-length-proportional
// points, used to bring two loft profile rings with different vertex
// counts to a common length before AlignLoop compares them.
func ResampleRing(ring Polyline2, target int) Polyline2 {
	n := len(ring)
	if n == 0 || target <= 0 {
		return Polyline2{}
	}
	perimeter := ring.EnsureClosed(0).Length()
	if perimeter < Epsilon {
		out := make(Polyline2, target)
		for i := range out {
			out[i] = ring[0]
		}
		return out
	}

	closed := ring.EnsureClosed(0)
	step := perimeter / float64(target)

	out := make(Polyline2, target)
	segIdx := 0
	segStart := 0.0
	for i := 0; i < target; i++ {
		want := step * float64(i)
		for segIdx < len(closed)-2 {
			segLen := closed[segIdx].DistanceTo(closed[segIdx+1])
			if segStart+segLen >= want-1e-9 {
				break
			}
			segStart += segLen
			segIdx++
		}
		segLen := closed[segIdx].DistanceTo(closed[segIdx+1])
		var t float64
		if segLen > Epsilon {
			t = (want - segStart) / segLen
		}
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		out[i] = closed[segIdx].Lerp(closed[segIdx+1], t)
	}
	return out
}
