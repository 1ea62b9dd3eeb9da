package boolean

import (
	"math"

	"github.com/lignin-cad/core/pkg/geom"
)

// rayDir is a fixed, deliberately non-axis-aligned direction used for the
// point-in-mesh ray cast below. Avoiding axis alignment keeps the ray from
// grazing coplanar triangles edge-on, which would otherwise make the
// parity count unstable for axis-aligned boxes (by far the most common
// input shape here).
var rayDir = geom.Vec3{0.5731, 0.4911, 0.6571}.Normalize()

// insideMesh reports whether p lies inside the closed surface formed by
// tris, using parity of ray-triangle intersections (the standard
// point-in-polyhedron test). distance is the unsigned distance from p to
// the nearest intersected triangle along the cast ray, used by callers
// that need to special-case points sitting right on the surface.
func insideMesh(p geom.Vec3, tris []triangle3) (inside bool, nearestHitDistance float64) {
	count := 0
	nearest := math.Inf(1)
	for _, t := range tris {
		if dist, hit := rayTriangleIntersect(p, rayDir, t.P1, t.P2, t.P3); hit {
			count++
			if dist < nearest {
				nearest = dist
			}
		}
	}
	return count%2 == 1, nearest
}

// rayTriangleIntersect implements the Möller-Trumbore ray-triangle
// intersection test, returning the hit distance along dir from origin.
func rayTriangleIntersect(origin, dir, v0, v1, v2 geom.Vec3) (float64, bool) {
	const eps = 1e-12

	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	h := dir.Cross(e2)
	a := e1.Dot(h)
	if a > -eps && a < eps {
		return 0, false // ray parallel to triangle plane
	}

	f := 1.0 / a
	s := origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := f * e2.Dot(q)
	if t <= eps {
		return 0, false
	}
	return t, true
}

// signedDistanceToPlane is the signed distance from p to the plane
// containing t, positive on the side t's normal points toward. Used to
// implement the "closer surviving surface wins" face-inheritance rule for
// fragments classified as lying on the cutting surface.
func signedDistanceToPlane(p geom.Vec3, t triangle3) float64 {
	n := t.normal()
	return p.Sub(t.P1).Dot(n)
}
