package sweep

import "github.com/lignin-cad/core/pkg/geom"

// Profile is a planar face ready to drive Sweep, Revolve, or Loft: an outer
// loop plus any hole loops, all in world space and all lying (to within
// welding tolerance) in Plane.
type Profile struct {
	Name  string
	Outer geom.Polyline3
	Holes []geom.Polyline3
	Plane geom.Plane
}

// dedupClosedRing returns ring as an open loop (no repeated closing point,
// no consecutive duplicates) to within eps.
func dedupClosedRing(ring geom.Polyline3, eps float64) geom.Polyline3 {
	r := ring
	if len(r) >= 2 && r[0].NearlyEqual(r[len(r)-1], eps) {
		r = r[:len(r)-1]
	}
	var out geom.Polyline3
	for _, v := range r {
		if len(out) == 0 || !out[len(out)-1].NearlyEqual(v, eps) {
			out = append(out, v)
		}
	}
	if len(out) >= 2 && out[0].NearlyEqual(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}

// outerRing returns the outer loop as an open, deduplicated ring.
func (p Profile) outerRing(eps float64) geom.Polyline3 {
	return dedupClosedRing(p.Outer, eps)
}

func (p Profile) uniquePointCount(eps float64) int {
	return len(p.outerRing(eps))
}
