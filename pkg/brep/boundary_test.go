package brep

import (
	"testing"

	"github.com/lignin-cad/core/pkg/geom"
)

// tetrahedron returns a solid with one triangle per face, so every edge is
// shared by exactly two distinctly-named faces.
func tetrahedron() *Solid {
	a := geom.Vec3{0, 0, 0}
	b := geom.Vec3{1, 0, 0}
	c := geom.Vec3{0, 1, 0}
	d := geom.Vec3{0, 0, 1}

	s := NewSolid("tetra")
	s.AddTriangle("F_ABC", a, b, c)
	s.AddTriangle("F_ABD", a, b, d)
	s.AddTriangle("F_ACD", a, c, d)
	s.AddTriangle("F_BCD", b, c, d)
	return s
}

func TestGetBoundaryEdgePolylinesTetrahedron(t *testing.T) {
	s := tetrahedron()
	edges, err := s.GetBoundaryEdgePolylines()
	if err != nil {
		t.Fatalf("GetBoundaryEdgePolylines() error = %v", err)
	}
	// A tetrahedron has 6 edges, each shared by exactly 2 of the 4 faces.
	if len(edges) != 6 {
		t.Fatalf("GetBoundaryEdgePolylines() len = %d, want 6", len(edges))
	}
	for _, e := range edges {
		if len(e.Positions) != 2 {
			t.Errorf("edge %s/%s has %d positions, want 2 for a single shared segment", e.FaceA, e.FaceB, len(e.Positions))
		}
	}
}

func TestGetBoundaryEdgePolylinesNoSharedFaceEdges(t *testing.T) {
	s := NewSolid("single-face-square")
	s.AddTriangle("TOP", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{1, 1, 0})
	s.AddTriangle("TOP", geom.Vec3{0, 0, 0}, geom.Vec3{1, 1, 0}, geom.Vec3{0, 1, 0})

	edges, err := s.GetBoundaryEdgePolylines()
	if err != nil {
		t.Fatalf("GetBoundaryEdgePolylines() error = %v", err)
	}
	if len(edges) != 0 {
		t.Errorf("GetBoundaryEdgePolylines() on a single face = %v, want none", edges)
	}
}

func TestFaceAdjacencyGraphTetrahedron(t *testing.T) {
	s := tetrahedron()
	g, err := s.FaceAdjacencyGraph()
	if err != nil {
		t.Fatalf("FaceAdjacencyGraph() error = %v", err)
	}
	if g.VertexCount() != 4 {
		t.Errorf("VertexCount() = %d, want 4", g.VertexCount())
	}
	// Every face is adjacent to every other face in a tetrahedron.
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", g.EdgeCount())
	}
}
