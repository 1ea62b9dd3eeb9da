package sheetmetal

import (
	"errors"
	"testing"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// plate returns a thin rectangular slab, one face per side, named
// "F_<side>", spanning [0,w]x[0,h]x[0,t].
func plate(name string, w, h, t float64) *brep.Solid {
	s := brep.NewSolid(name)

	c := func(x, y, z float64) geom.Vec3 { return geom.Vec3{X: x, Y: y, Z: z} }
	quad := func(face string, a, b, cc, d geom.Vec3) {
		s.AddTriangle(face, a, b, cc)
		s.AddTriangle(face, a, cc, d)
	}

	b000, b100, b010, b110 := c(0, 0, 0), c(w, 0, 0), c(0, h, 0), c(w, h, 0)
	t000, t100, t010, t110 := c(0, 0, t), c(w, 0, t), c(0, h, t), c(w, h, t)

	quad("F_BOTTOM", b000, b010, b110, b100)
	quad("F_TOP", t000, t100, t110, t010)
	quad("F_FRONT", b000, b100, t100, t000)
	quad("F_BACK", b010, t010, t110, b110)
	quad("F_LEFT", b000, t000, t010, b010)
	quad("F_RIGHT", b100, b110, t110, t100)

	s.Visualize()
	return s
}

func TestClassifyFlatPlateFindsAB(t *testing.T) {
	s := plate("PLATE", 10, 6, 1)
	sheet, err := Classify(s, 0)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if sheet.FaceA != "F_BOTTOM" && sheet.FaceB != "F_BOTTOM" {
		t.Errorf("Classify() A/B = %s/%s, want one of them to be F_BOTTOM", sheet.FaceA, sheet.FaceB)
	}
	if sheet.FaceA != "F_TOP" && sheet.FaceB != "F_TOP" {
		t.Errorf("Classify() A/B = %s/%s, want one of them to be F_TOP", sheet.FaceA, sheet.FaceB)
	}
	if got, want := sheet.Thickness, 1.0; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Classify() thickness = %v, want %v", got, want)
	}
	if len(sheet.ThicknessFaces) != 4 {
		t.Errorf("Classify() thickness faces = %v, want 4 side walls", sheet.ThicknessFaces)
	}
}

func TestClassifyDefaultsKFactor(t *testing.T) {
	s := plate("PLATE2", 4, 4, 0.5)
	sheet, err := Classify(s, 0)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if sheet.KFactor != 0.5 {
		t.Errorf("Classify() KFactor = %v, want default 0.5", sheet.KFactor)
	}
}

func TestClassifyCubeIsAmbiguous(t *testing.T) {
	s := plate("CUBE", 4, 4, 4)
	sheet, err := Classify(s, 0)
	if !errors.Is(err, AmbiguousPair) {
		t.Fatalf("Classify() error = %v, want AmbiguousPair (all three face pairs are identical)", err)
	}
	if sheet == nil {
		t.Fatal("Classify() returned no sheet alongside AmbiguousPair")
	}
	if sheet.Thickness != 4 {
		t.Errorf("Classify() thickness = %v, want 4", sheet.Thickness)
	}
}

func TestClassifyReturnsNotSheetMetalOnSingleFaceSolid(t *testing.T) {
	s := brep.NewSolid("DEGENERATE")
	s.AddTriangle("F_ONLY", geom.Vec3{X: 0, Y: 0, Z: 0}, geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	s.Visualize()

	_, err := Classify(s, 0)
	if !errors.Is(err, NotSheetMetal) {
		t.Errorf("Classify() error = %v, want NotSheetMetal", err)
	}
}
