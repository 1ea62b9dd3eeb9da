package geom

import "math"

// Simplify reduces an open polyline with the Ramer-Douglas-Peucker
// algorithm: points are dropped if they lie within tolerance of the line
// connecting their neighbors after recursive subdivision. The first and
// last points are always kept.
func Simplify(points Polyline2, tolerance float64) Polyline2 {
	n := len(points)
	if n < 3 || tolerance <= 0 {
		return append(Polyline2{}, points...)
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true
	rdpRecurse(points, 0, n-1, tolerance, keep)

	out := make(Polyline2, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func rdpRecurse(points Polyline2, lo, hi int, tolerance float64, keep []bool) {
	if hi <= lo+1 {
		return
	}

	maxDist := -1.0
	maxIdx := -1
	for i := lo + 1; i < hi; i++ {
		d := perpendicularDistance(points[i], points[lo], points[hi])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		return
	}

	keep[maxIdx] = true
	rdpRecurse(points, lo, maxIdx, tolerance, keep)
	rdpRecurse(points, maxIdx, hi, tolerance, keep)
}

func perpendicularDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	length := ab.Length()
	if length < Epsilon {
		return p.DistanceTo(a)
	}
	// |ab x ap| / |ab|
	ap := p.Sub(a)
	return math.Abs(ab.Cross(ap)) / length
}
