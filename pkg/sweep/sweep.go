package sweep

import (
	"fmt"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// namedEdge is one boundary edge of a profile ring, carrying the face name
// its sidewall will be emitted under.
type namedEdge struct {
	Name string
	A, B geom.Vec3
}

// profileEdges walks the outer loop then each hole loop, naming every edge
// "<prefix>_E<i>_SW" (outer) or "<prefix>_H<h>E<i>_SW" (hole).
func profileEdges(profile Profile, prefix string, eps float64) []namedEdge {
	var edges []namedEdge
	ring := func(r geom.Polyline3, label string) {
		r = dedupClosedRing(r, eps)
		n := len(r)
		for i := 0; i < n; i++ {
			edges = append(edges, namedEdge{
				Name: fmt.Sprintf("%s_%sE%d_SW", prefix, label, i),
				A:    r[i],
				B:    r[(i+1)%n],
			})
		}
	}
	ring(profile.Outer, "")
	for h, hole := range profile.Holes {
		ring(hole, fmt.Sprintf("H%d", h))
	}
	return edges
}

// capTriangles ear-clips a profile's outer+hole loops in plane-local space
// and lifts the result back to world space.
func capTriangles(profile Profile) ([]geom.Vec3, [][3]int) {
	outer2D := profile.Outer.Project(profile.Plane)
	var holes2D []geom.Polyline2
	for _, h := range profile.Holes {
		holes2D = append(holes2D, h.Project(profile.Plane))
	}
	pts2D, tris := geom.Triangulate(outer2D, holes2D)
	pts3D := make([]geom.Vec3, len(pts2D))
	for i, p := range pts2D {
		pts3D[i] = profile.Plane.Unproject(p)
	}
	return pts3D, tris
}

// addCap triangulates profile's cap, applies offset to every vertex, and
// writes it into solid under faceName. reversed flips the winding, used
// for the START cap so its outward normal points away from the sweep
// direction per convention.
func addCap(solid *brep.Solid, faceName string, profile Profile, offset func(geom.Vec3) geom.Vec3, reversed bool) error {
	verts, tris := capTriangles(profile)
	if len(tris) == 0 {
		return DegenerateRing
	}
	for _, tr := range tris {
		a := offset(verts[tr[0]])
		b := offset(verts[tr[1]])
		c := offset(verts[tr[2]])
		if reversed {
			solid.AddTriangle(faceName, a, c, b)
		} else {
			solid.AddTriangle(faceName, a, b, c)
		}
	}
	solid.SetFaceMetadata(faceName, brep.Planar{Normal: profile.Plane.Normal, Origin: profile.Plane.Origin})
	return nil
}

// Sweep translates profile by d, producing start/end caps and one sidewall
// face per boundary edge. distanceBack > 0 extends the solid backward from
// the profile's own plane by that distance (along -d), giving a symmetric
// sweep when distanceBack equals d's length.
func Sweep(profile Profile, d geom.Vec3, distanceBack float64) (*brep.Solid, error) {
	eps := geom.Epsilon
	if profile.uniquePointCount(eps) < 3 {
		return nil, DegenerateRing
	}

	var startOffset geom.Vec3
	if distanceBack > 0 {
		startOffset = d.Normalize().Scale(-distanceBack)
	}
	endOffset := d

	solid := brep.NewSolid(profile.Name)
	translate := func(off geom.Vec3) func(geom.Vec3) geom.Vec3 {
		return func(v geom.Vec3) geom.Vec3 { return v.Add(off) }
	}

	if err := addCap(solid, profile.Name+"_START", profile, translate(startOffset), true); err != nil {
		return nil, err
	}
	if err := addCap(solid, profile.Name+"_END", profile, translate(endOffset), false); err != nil {
		return nil, err
	}

	for _, e := range profileEdges(profile, profile.Name, eps) {
		a0 := e.A.Add(startOffset)
		b0 := e.B.Add(startOffset)
		a1 := e.A.Add(endOffset)
		b1 := e.B.Add(endOffset)
		solid.AddTriangle(e.Name, a0, b0, b1)
		solid.AddTriangle(e.Name, a0, b1, a1)
		solid.SetFaceMetadata(e.Name, brep.Sidewall{})
	}

	solid.Visualize()
	solid.FixTriangleWindingsByAdjacency()
	return solid, nil
}
