package sweep

import (
	"fmt"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// Loft builds a solid by stitching the outer loops of an ordered stack of
// profiles, aligning every ring after the first to the first ring's
// rotation/reversal, then stitching each consecutive pair with a balanced
// strip triangulation. First and last profiles are capped the same way
// Sweep caps its ends.
func Loft(profiles []Profile) (*brep.Solid, error) {
	if len(profiles) < 2 {
		return nil, InsufficientProfiles
	}
	eps := geom.Epsilon
	for _, p := range profiles {
		if p.uniquePointCount(eps) < 3 {
			return nil, DegenerateRing
		}
	}
	resolvable := profiles

	refPlane := resolvable[0].Plane
	ref3D := dedupClosedRing(resolvable[0].Outer, eps)
	ref2D := ref3D.Project(refPlane)

	rings := make([]geom.Polyline3, len(resolvable))
	rings[0] = ref3D

	for i := 1; i < len(resolvable); i++ {
		ring3D := dedupClosedRing(resolvable[i].Outer, eps)
		if len(ring3D) < 3 {
			return nil, DegenerateRing
		}
		resampled3D := resampleRing3(ring3D, len(ref3D))
		resampled2D := resampled3D.Project(refPlane)

		align := geom.AlignLoop(ref2D, resampled2D, true)
		rings[i] = applyAlignment3D(resampled3D, align)
	}

	solid := brep.NewSolid(resolvable[0].Name)
	identity := func(v geom.Vec3) geom.Vec3 { return v }

	first := resolvable[0]
	first.Outer = rings[0]
	if err := addCap(solid, first.Name+"_START", first, identity, true); err != nil {
		return nil, err
	}

	last := resolvable[len(resolvable)-1]
	last.Outer = rings[len(rings)-1]
	if err := addCap(solid, last.Name+"_END", last, identity, false); err != nil {
		return nil, err
	}

	for k := 0; k < len(rings)-1; k++ {
		faceName := fmt.Sprintf("%s_LOFT%d_SW", resolvable[0].Name, k)
		for _, tri := range stitchRings(toVec3Slice(rings[k]), toVec3Slice(rings[k+1])) {
			solid.AddTriangle(faceName, tri[0], tri[1], tri[2])
		}
		solid.SetFaceMetadata(faceName, brep.Sidewall{})
	}

	solid.Visualize()
	solid.FixTriangleWindingsByAdjacency()
	return solid, nil
}

func toVec3Slice(p geom.Polyline3) []geom.Vec3 { return []geom.Vec3(p) }

// applyAlignment3D applies a LoopAlignment computed in 2D (reverse, then
// rotate) to the matching 3D ring, preserving index correspondence with
// the reference ring.
func applyAlignment3D(ring geom.Polyline3, a geom.LoopAlignment) geom.Polyline3 {
	out := ring
	if a.Reversed {
		out = reverseVec3Ring(out)
	}
	return rotateVec3Ring(out, a.Rotation)
}

func reverseVec3Ring(ring geom.Polyline3) geom.Polyline3 {
	n := len(ring)
	out := make(geom.Polyline3, n)
	for i, v := range ring {
		out[n-1-i] = v
	}
	return out
}

func rotateVec3Ring(ring geom.Polyline3, i int) geom.Polyline3 {
	n := len(ring)
	if n == 0 {
		return geom.Polyline3{}
	}
	i = ((i % n) + n) % n
	out := make(geom.Polyline3, n)
	for k := 0; k < n; k++ {
		out[k] = ring[(i+k)%n]
	}
	return out
}

// resampleRing3 is ResampleRing's arc-length resampling, lifted to Vec3
// rings so loft can bring two profile rings to a common vertex count
// before projecting them into the reference plane for alignment.
func resampleRing3(ring geom.Polyline3, target int) geom.Polyline3 {
	n := len(ring)
	if n == 0 || target <= 0 {
		return geom.Polyline3{}
	}
	closed := append(geom.Polyline3{}, ring...)
	closed = append(closed, ring[0])

	var perimeter float64
	for i := 1; i < len(closed); i++ {
		perimeter += closed[i-1].DistanceTo(closed[i])
	}
	if perimeter < geom.Epsilon {
		out := make(geom.Polyline3, target)
		for i := range out {
			out[i] = ring[0]
		}
		return out
	}

	step := perimeter / float64(target)
	out := make(geom.Polyline3, target)
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
		if segLen > geom.Epsilon {
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

// stitchRings triangulates a strip between two (possibly different length)
// rings using a Bresenham-style walk: at each step, advance whichever ring
// has made the least normalized progress around its own loop, so extra
// vertices on the longer ring are distributed evenly rather than bunched
// at one seam.
func stitchRings(a, b []geom.Vec3) [][3]geom.Vec3 {
	na, nb := len(a), len(b)
	if na == 0 || nb == 0 {
		return nil
	}
	var tris [][3]geom.Vec3
	i, j := 0, 0
	for i < na || j < nb {
		if j >= nb || (i < na && float64(i)*float64(nb) <= float64(j)*float64(na)) {
			ni := (i + 1) % na
			tris = append(tris, [3]geom.Vec3{a[i%na], a[ni], b[j%nb]})
			i++
		} else {
			nj := (j + 1) % nb
			tris = append(tris, [3]geom.Vec3{a[i%na], b[j%nb], b[nj]})
			j++
		}
	}
	return tris
}
