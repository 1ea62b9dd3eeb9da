package brep

import (
	"testing"

	"github.com/lignin-cad/core/pkg/geom"
)

func TestFixTriangleWindingsByAdjacencyMakesSharedEdgesOpposite(t *testing.T) {
	s := NewSolid("test")
	// Two triangles sharing edge (1,0,0)-(0,1,0), both authored in the
	// same winding direction (so the shared edge runs the same way on
	// both triangles, the inconsistent case).
	s.AddTriangle("A", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})
	s.AddTriangle("B", geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0}, geom.Vec3{1, 1, 0})

	s.FixTriangleWindingsByAdjacency()

	faceA, _ := s.GetFace("A")
	faceB, _ := s.GetFace("B")
	v := s.Vertices()

	shared := sharedDirectedEdge(t, v, faceA[0], faceB[0])
	if shared == 0 {
		t.Fatal("triangles do not share an edge after welding; test fixture is wrong")
	}
	if shared != -1 {
		t.Error("FixTriangleWindingsByAdjacency() left the shared edge traversed in the same direction on both triangles")
	}
}

// sharedDirectedEdge returns -1 if a and b traverse their shared vertex
// pair in opposite directions, +1 if in the same direction, 0 if they
// don't share an edge at all.
func sharedDirectedEdge(t *testing.T, v []geom.Vec3, a, b Triangle) int {
	t.Helper()
	edgesOf := func(tri Triangle) [3][2]int {
		return [3][2]int{{tri.A, tri.B}, {tri.B, tri.C}, {tri.C, tri.A}}
	}
	for _, ea := range edgesOf(a) {
		for _, eb := range edgesOf(b) {
			if ea[0] == eb[0] && ea[1] == eb[1] {
				return 1
			}
			if ea[0] == eb[1] && ea[1] == eb[0] {
				return -1
			}
		}
	}
	return 0
}

func TestFixTriangleWindingsByAdjacencyIdempotent(t *testing.T) {
	s := tetrahedron()
	s.FixTriangleWindingsByAdjacency()
	first := snapshotTriangles(s)

	s.FixTriangleWindingsByAdjacency()
	second := snapshotTriangles(s)

	if len(first) != len(second) {
		t.Fatalf("triangle count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("triangle %d changed on second run: %v -> %v", i, first[i], second[i])
		}
	}
}

func snapshotTriangles(s *Solid) []Triangle {
	var out []Triangle
	for _, name := range s.GetFaceNames() {
		tris, _ := s.GetFace(name)
		out = append(out, tris...)
	}
	return out
}
