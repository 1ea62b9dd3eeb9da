package boolean

import "github.com/lignin-cad/core/pkg/geom"

// clipTriangleByPlane splits a triangle against the half-spaces of a
// plane (point + normal), Sutherland-Hodgman style. Vertices within eps of
// the plane count as belonging to both sides, so the two output polygons
// share a boundary exactly along the cut. Each output polygon (0, 1 or 2
// triangles after fan triangulation) is convex by construction, since
// clipping a convex polygon by a half-space is always convex.
func clipTriangleByPlane(verts [3]geom.Vec3, planePoint, planeNormal geom.Vec3, eps float64) (front, back [][3]geom.Vec3) {
	poly := verts[:]

	frontPoly := clipPolygonHalfSpace(poly, planePoint, planeNormal, eps, true)
	backPoly := clipPolygonHalfSpace(poly, planePoint, planeNormal, eps, false)

	return fanTriangulate(frontPoly), fanTriangulate(backPoly)
}

func clipPolygonHalfSpace(poly []geom.Vec3, planePoint, planeNormal geom.Vec3, eps float64, keepFront bool) []geom.Vec3 {
	n := len(poly)
	if n == 0 {
		return nil
	}

	dist := func(p geom.Vec3) float64 {
		return p.Sub(planePoint).Dot(planeNormal)
	}
	inside := func(d float64) bool {
		if keepFront {
			return d >= -eps
		}
		return d <= eps
	}

	var out []geom.Vec3
	for i := 0; i < n; i++ {
		cur := poly[i]
		next := poly[(i+1)%n]
		dCur := dist(cur)
		dNext := dist(next)
		curIn := inside(dCur)
		nextIn := inside(dNext)

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			denom := dCur - dNext
			if denom == 0 {
				continue
			}
			t := dCur / denom
			out = append(out, cur.Lerp(next, t))
		}
	}
	return out
}

func fanTriangulate(poly []geom.Vec3) [][3]geom.Vec3 {
	if len(poly) < 3 {
		return nil
	}
	var out [][3]geom.Vec3
	for i := 1; i < len(poly)-1; i++ {
		out = append(out, [3]geom.Vec3{poly[0], poly[i], poly[i+1]})
	}
	return out
}

// splitAgainstCandidates recursively clips tri against the planes of
// candidate opposing triangles, returning the set of fragments small enough
// that each one lies entirely on one side of every candidate plane it was
// compared against. depth caps how many candidate planes are applied so a
// pathological cluster of near-coincident candidates cannot blow up
// fragment count.
func splitAgainstCandidates(tri triangle3, candidates []triangle3, eps float64, maxDepth int) []triangle3 {
	if maxDepth <= 0 || len(candidates) == 0 {
		return []triangle3{tri}
	}

	plane := candidates[0]
	rest := candidates[1:]

	front, back := clipTriangleByPlane([3]geom.Vec3{tri.P1, tri.P2, tri.P3}, plane.P1, plane.normal(), eps)

	if len(front) == 0 && len(back) == 0 {
		return []triangle3{tri}
	}
	// Triangle didn't actually straddle this plane (entirely on one side):
	// move on to the next candidate without spending depth.
	if len(back) == 0 {
		return splitAgainstCandidates(tri, rest, eps, maxDepth)
	}
	if len(front) == 0 {
		return splitAgainstCandidates(tri, rest, eps, maxDepth)
	}

	var out []triangle3
	for _, f := range front {
		out = append(out, splitAgainstCandidates(fragmentOf(tri, f), rest, eps, maxDepth-1)...)
	}
	for _, b := range back {
		out = append(out, splitAgainstCandidates(fragmentOf(tri, b), rest, eps, maxDepth-1)...)
	}
	return out
}

func fragmentOf(source triangle3, verts [3]geom.Vec3) triangle3 {
	return triangle3{
		P1: verts[0], P2: verts[1], P3: verts[2],
		FaceName: source.FaceName,
		Metadata: source.Metadata,
	}
}
