package scene

import (
	"testing"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

func twoTriangleSlab(name string) *brep.Solid {
	s := brep.NewSolid(name)
	s.AddTriangle("TOP", geom.Vec3{X: 0, Y: 0, Z: 1}, geom.Vec3{X: 10, Y: 0, Z: 1}, geom.Vec3{X: 10, Y: 10, Z: 1})
	s.AddTriangle("TOP", geom.Vec3{X: 0, Y: 0, Z: 1}, geom.Vec3{X: 10, Y: 10, Z: 1}, geom.Vec3{X: 0, Y: 10, Z: 1})
	s.AddTriangle("BOTTOM", geom.Vec3{X: 0, Y: 0, Z: 0}, geom.Vec3{X: 10, Y: 10, Z: 0}, geom.Vec3{X: 10, Y: 0, Z: 0})
	s.AddTriangle("BOTTOM", geom.Vec3{X: 0, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 10, Z: 0}, geom.Vec3{X: 10, Y: 10, Z: 0})
	return s
}

func TestInsertSolidRegistersSolidAndFaces(t *testing.T) {
	sc := New()
	solid := twoTriangleSlab("SLAB")

	root, err := sc.InsertSolid("SLAB", solid, "feat1")
	if err != nil {
		t.Fatalf("InsertSolid() error = %v", err)
	}
	if root.Type != TypeSolid {
		t.Errorf("root.Type = %v, want TypeSolid", root.Type)
	}

	got, ok := sc.GetObjectByName("TOP")
	if !ok {
		t.Fatal("GetObjectByName(\"TOP\") not found")
	}
	if got.Type != TypeFace {
		t.Errorf("TOP object type = %v, want TypeFace", got.Type)
	}
	if got.Parent != root {
		t.Error("TOP object parent is not the SLAB solid object")
	}
}

func TestInsertSolidRejectsDuplicateName(t *testing.T) {
	sc := New()
	solid := twoTriangleSlab("SLAB")
	if _, err := sc.InsertSolid("SLAB", solid, "feat1"); err != nil {
		t.Fatalf("first InsertSolid() error = %v", err)
	}
	if _, err := sc.InsertSolid("SLAB", solid, "feat1"); err == nil {
		t.Error("second InsertSolid() with the same name should have failed")
	}
}

func TestRemoveOwnedByTearsDownFeatureArtifacts(t *testing.T) {
	sc := New()
	solid := twoTriangleSlab("SLAB")
	if _, err := sc.InsertSolid("SLAB", solid, "feat1"); err != nil {
		t.Fatalf("InsertSolid() error = %v", err)
	}

	removed := sc.RemoveOwnedBy("feat1")
	if len(removed) == 0 {
		t.Fatal("RemoveOwnedBy() removed nothing")
	}
	if _, ok := sc.GetObjectByName("SLAB"); ok {
		t.Error("SLAB object still present after RemoveOwnedBy")
	}
	if _, ok := sc.GetObjectByName("TOP"); ok {
		t.Error("TOP face object still present after RemoveOwnedBy")
	}
}

func TestAverageNormalOfFaceObject(t *testing.T) {
	sc := New()
	solid := twoTriangleSlab("SLAB2")
	if _, err := sc.InsertSolid("SLAB2", solid, "feat1"); err != nil {
		t.Fatalf("InsertSolid() error = %v", err)
	}
	top, _ := sc.GetObjectByName("TOP")
	n, ok := top.AverageNormal()
	if !ok {
		t.Fatal("AverageNormal() returned ok=false")
	}
	if n.Z < 0.99 {
		t.Errorf("AverageNormal() = %v, want close to +Z", n)
	}
}

func TestApplyInsertsAndRemoves(t *testing.T) {
	sc := New()
	solid := twoTriangleSlab("SLAB3")
	if err := sc.Apply("feat1", []Artifact{{Name: "SLAB3", Solid: solid}}, nil); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if _, ok := sc.GetObjectByName("SLAB3"); !ok {
		t.Fatal("Apply() did not insert SLAB3")
	}

	solid2 := twoTriangleSlab("SLAB4")
	if err := sc.Apply("feat2", []Artifact{{Name: "SLAB4", Solid: solid2}}, []string{"SLAB3"}); err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	if _, ok := sc.GetObjectByName("SLAB3"); ok {
		t.Error("Apply() should have removed SLAB3")
	}
	if _, ok := sc.GetObjectByName("SLAB4"); !ok {
		t.Error("Apply() did not insert SLAB4")
	}
}

func TestSolidsReturnsOnlyTopLevelSolidObjects(t *testing.T) {
	sc := New()
	if _, err := sc.InsertSolid("SLAB5", twoTriangleSlab("SLAB5"), "feat1"); err != nil {
		t.Fatalf("InsertSolid() error = %v", err)
	}

	solids := sc.Solids()
	if len(solids) != 1 {
		t.Fatalf("Solids() returned %d entries, want 1", len(solids))
	}
	if _, ok := solids["SLAB5"]; !ok {
		t.Error("Solids() missing SLAB5")
	}
	if _, ok := solids["TOP"]; ok {
		t.Error("Solids() should not include FACE objects")
	}
}
