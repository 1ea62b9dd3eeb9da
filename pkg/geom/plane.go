package geom

// Plane is an orthonormal 2D coordinate system embedded in world space.
// Origin is the plane's (0,0); U and V are its unit basis vectors; Normal
// is U cross V. Construction follows the same "first edge is X, cross with
// normal gives Y" recipe used to flatten a polyhedron face into the plane
// before unfolding it (see pkg/sheetmetal), generalized here to sketches,
// sweep profiles, and face-local coordinate frames.
type Plane struct {
	Origin Vec3
	U, V   Vec3
	Normal Vec3
}

// PlaneFromPoints builds an orthonormal plane basis from three
// non-collinear points: origin at p0, U along p0->p1, Normal = (p1-p0) x
// (p2-p0), V = Normal x U. Returns GeometryDegenerate if the points are
// collinear or coincident.
func PlaneFromPoints(p0, p1, p2 Vec3) (Plane, error) {
	e01 := p1.Sub(p0)
	e02 := p2.Sub(p0)

	u := e01.Normalize()
	if u.Length() < Epsilon {
		return Plane{}, GeometryDegenerate
	}

	n := e01.Cross(e02)
	if n.Length() < Epsilon {
		return Plane{}, GeometryDegenerate
	}
	n = n.Normalize()

	v := n.Cross(u).Normalize()

	return Plane{Origin: p0, U: u, V: v, Normal: n}, nil
}

// PlaneFromNormal builds an arbitrary orthonormal basis with the given
// normal and origin. The U axis is chosen deterministically (not picked
// from face data), so two planes built from the same normal always agree,
// which matters when stitching adjacent faces in the flat-pattern export.
func PlaneFromNormal(origin, normal Vec3) (Plane, error) {
	n := normal.Normalize()
	if n.Length() < Epsilon {
		return Plane{}, GeometryDegenerate
	}

	// Pick a helper axis not parallel to n.
	helper := Vec3{0, 0, 1}
	if absf(n.Dot(helper)) > 1-1e-6 {
		helper = Vec3{1, 0, 0}
	}

	u := n.Cross(helper).Normalize()
	v := n.Cross(u).Normalize()

	return Plane{Origin: origin, U: u, V: v, Normal: n}, nil
}

// Project maps a world-space point onto the plane's 2D coordinate system.
func (p Plane) Project(point Vec3) Vec2 {
	d := point.Sub(p.Origin)
	return Vec2{X: d.Dot(p.U), Y: d.Dot(p.V)}
}

// Unproject maps a 2D plane-local point back into world space.
func (p Plane) Unproject(point Vec2) Vec3 {
	return p.Origin.Add(p.U.Scale(point.X)).Add(p.V.Scale(point.Y))
}

// DistanceTo returns the signed distance from point to the plane, positive
// on the side the normal points toward.
func (p Plane) DistanceTo(point Vec3) float64 {
	return point.Sub(p.Origin).Dot(p.Normal)
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
