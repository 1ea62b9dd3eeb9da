package sheetmetal

import (
	"math"
	"testing"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/sweep"
)

func TestConvexHull2DSquareIsItself(t *testing.T) {
	pts := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	hull := convexHull2D(pts)
	if len(hull) != 4 {
		t.Fatalf("convexHull2D() of a square returned %d points, want 4", len(hull))
	}
}

func TestConvexHull2DDropsInteriorPoint(t *testing.T) {
	pts := []geom.Vec2{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5},
	}
	hull := convexHull2D(pts)
	for _, p := range hull {
		if p.X == 5 && p.Y == 5 {
			t.Errorf("convexHull2D() kept an interior point %v", p)
		}
	}
	if len(hull) != 4 {
		t.Errorf("convexHull2D() with one interior point returned %d points, want 4", len(hull))
	}
}

func TestConvexHull2DCollinearPointsCollapse(t *testing.T) {
	pts := []geom.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	hull := convexHull2D(pts)
	if len(hull) != 4 {
		t.Errorf("convexHull2D() with a collinear edge point returned %d points, want 4", len(hull))
	}
}

// obliqueCylinder builds a right circular cylinder whose axis is axisDir
// (not necessarily aligned with any face normal of whatever it later cuts),
// centered on origin, via sweep.Sweep: a circular profile lying in the
// plane perpendicular to axisDir, swept halfLength forward and back along
// axisDir.
func obliqueCylinder(name string, origin, axisDir geom.Vec3, radius, halfLength float64, segments int) (*brep.Solid, error) {
	plane, err := geom.PlaneFromNormal(origin, axisDir)
	if err != nil {
		return nil, err
	}

	ring := make(geom.Polyline3, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = plane.Unproject(geom.Vec2{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)})
	}

	profile := sweep.Profile{Name: name, Outer: ring, Plane: plane}
	d := axisDir.Normalize().Scale(halfLength)
	return sweep.Sweep(profile, d, halfLength)
}

// TestCutoutObliqueCylinderProducesPerpendicularWalls: a cutout tool
// entering the sheet at an angle still leaves hole walls perpendicular
// to the sheet, not slanted to match the tool's own angle.
func TestCutoutObliqueCylinderProducesPerpendicularWalls(t *testing.T) {
	plateSolid := plate("OBLIQUE_PLATE", 10, 10, 1)
	sheet, err := Classify(plateSolid, 0)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	aPlane, ok := facePlane(sheet.Solid, sheet.FaceA)
	if !ok {
		t.Fatalf("facePlane(%s) not found", sheet.FaceA)
	}

	axis := geom.Vec3{X: 0.4, Y: 0.1, Z: 1}.Normalize()
	origin := geom.Vec3{X: 5, Y: 5, Z: 0.5}
	tool, err := obliqueCylinder("TOOL", origin, axis, 1.5, 5, 16)
	if err != nil {
		t.Fatalf("obliqueCylinder() error = %v", err)
	}

	out, err := Cutout(sheet, tool)
	if err != nil {
		t.Fatalf("Cutout() error = %v", err)
	}

	original := map[string]bool{
		"F_BOTTOM": true, "F_TOP": true, "F_FRONT": true,
		"F_BACK": true, "F_LEFT": true, "F_RIGHT": true,
	}

	found := 0
	for _, name := range out.GetFaceNames() {
		if original[name] {
			continue
		}
		tris, _ := out.GetFace(name)
		if len(tris) == 0 {
			continue
		}
		var sum geom.Vec3
		for _, tri := range tris {
			a, b, c := out.Positions(tri)
			sum = sum.Add(b.Sub(a).Cross(c.Sub(a)))
		}
		n := sum.Normalize()
		dot := math.Abs(n.Dot(aPlane.Normal))
		if dot > 1e-3 {
			t.Errorf("new wall face %s: |normal . sheet normal| = %v, want <= 1e-3", name, dot)
		}
		found++
	}
	if found == 0 {
		t.Fatal("Cutout() introduced no new wall faces to check")
	}
}

func TestCutoutFallsBackToDirectSubtractWithoutFacePlane(t *testing.T) {
	sheet := &Sheet{Solid: plate("NOFACE", 10, 10, 1), FaceA: "NOT_A_FACE", FaceB: "F_TOP", Thickness: 1}
	tool := plate("TOOL", 2, 2, 5)
	out, err := Cutout(sheet, tool)
	if err != nil {
		t.Fatalf("Cutout() error = %v", err)
	}
	if out == nil {
		t.Fatal("Cutout() returned nil solid")
	}
}
