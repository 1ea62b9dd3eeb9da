package brep

import (
	"testing"

	"github.com/lignin-cad/core/pkg/geom"
)

func TestAddTriangleCreatesFace(t *testing.T) {
	s := NewSolid("test")
	s.AddTriangle("TOP", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})

	names := s.GetFaceNames()
	if len(names) != 1 || names[0] != "TOP" {
		t.Fatalf("GetFaceNames() = %v, want [TOP]", names)
	}
	tris, ok := s.GetFace("TOP")
	if !ok || len(tris) != 1 {
		t.Fatalf("GetFace(TOP) = %v, %v", tris, ok)
	}
}

func TestVisualizeWeldsSharedVertices(t *testing.T) {
	s := NewSolid("test")
	// Two triangles sharing an edge at (1,0,0)-(1,1,0), authored with
	// independently-specified but numerically identical coordinates.
	s.AddTriangle("A", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{1, 1, 0})
	s.AddTriangle("B", geom.Vec3{1, 0, 0}, geom.Vec3{2, 0, 0}, geom.Vec3{1, 1, 0})

	verts := s.Vertices()
	// 4 distinct corners, not 6 raw points.
	if len(verts) != 4 {
		t.Fatalf("Vertices() len = %d, want 4 after welding", len(verts))
	}
}

func TestVisualizeWeldingRespectsEpsilon(t *testing.T) {
	s := NewSolid("test")
	s.SetEpsilon(1e-3)
	s.AddTriangle("A", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})
	s.AddTriangle("B", geom.Vec3{0, 0, 0}, geom.Vec3{1.0000001, 0, 0}, geom.Vec3{0, 1, 0})

	verts := s.Vertices()
	if len(verts) != 3 {
		t.Fatalf("Vertices() len = %d, want 3 (points within epsilon weld together)", len(verts))
	}
}

func TestRenameFace(t *testing.T) {
	s := NewSolid("test")
	s.AddTriangle("OLD", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})

	if !s.RenameFace("OLD", "NEW") {
		t.Fatal("RenameFace() = false, want true")
	}
	if _, ok := s.GetFace("OLD"); ok {
		t.Error("old face name still resolves after rename")
	}
	if _, ok := s.GetFace("NEW"); !ok {
		t.Error("new face name does not resolve after rename")
	}
}

func TestRenameFaceClashRejected(t *testing.T) {
	s := NewSolid("test")
	s.AddTriangle("A", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})
	s.AddTriangle("B", geom.Vec3{0, 0, 1}, geom.Vec3{1, 0, 1}, geom.Vec3{0, 1, 1})

	if s.RenameFace("A", "B") {
		t.Error("RenameFace() onto an existing name should fail")
	}
}

func TestFaceMetadataRoundTrip(t *testing.T) {
	s := NewSolid("test")
	s.AddTriangle("SIDE", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})

	s.SetFaceMetadata("SIDE", Cylindrical{Axis: geom.Vec3{0, 0, 1}, Radius: 5})
	md, ok := s.GetFaceMetadata("SIDE")
	if !ok {
		t.Fatal("GetFaceMetadata() ok = false")
	}
	cyl, ok := md.(Cylindrical)
	if !ok || cyl.Radius != 5 {
		t.Errorf("GetFaceMetadata() = %#v, want Cylindrical{Radius: 5}", md)
	}
}

func TestNewFaceDefaultsToOpaque(t *testing.T) {
	s := NewSolid("test")
	s.AddTriangle("X", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})
	md, _ := s.GetFaceMetadata("X")
	if _, ok := md.(Opaque); !ok {
		t.Errorf("default metadata = %#v, want Opaque{}", md)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSolid("test")
	s.AddTriangle("A", geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})
	s.SetFaceMetadata("A", Planar{Normal: geom.Vec3{0, 0, 1}})

	clone := s.Clone()
	clone.SetFaceMetadata("A", Opaque{})
	clone.AddTriangle("A", geom.Vec3{2, 2, 2}, geom.Vec3{3, 2, 2}, geom.Vec3{2, 3, 2})

	md, _ := s.GetFaceMetadata("A")
	if _, ok := md.(Planar); !ok {
		t.Error("mutating clone metadata affected source solid")
	}
	tris, _ := s.GetFace("A")
	if len(tris) != 1 {
		t.Error("mutating clone triangles affected source solid")
	}
}
