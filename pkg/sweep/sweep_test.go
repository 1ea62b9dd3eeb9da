package sweep

import (
	"testing"

	"github.com/lignin-cad/core/pkg/geom"
)

func squareProfile(name string, z float64) Profile {
	plane := geom.Plane{
		Origin: geom.Vec3{X: 0, Y: 0, Z: z},
		U:      geom.Vec3{X: 1, Y: 0, Z: 0},
		V:      geom.Vec3{X: 0, Y: 1, Z: 0},
		Normal: geom.Vec3{X: 0, Y: 0, Z: 1},
	}
	outer := geom.Polyline3{
		{X: 0, Y: 0, Z: z},
		{X: 1, Y: 0, Z: z},
		{X: 1, Y: 1, Z: z},
		{X: 0, Y: 1, Z: z},
	}
	return Profile{Name: name, Outer: outer, Plane: plane}
}

func TestSweepSquareProducesCapsAndFourSidewalls(t *testing.T) {
	p := squareProfile("BOARD", 0)
	s, err := Sweep(p, geom.Vec3{X: 0, Y: 0, Z: 2}, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	names := s.GetFaceNames()
	want := map[string]bool{
		"BOARD_START": false, "BOARD_END": false,
		"BOARD_E0_SW": false, "BOARD_E1_SW": false, "BOARD_E2_SW": false, "BOARD_E3_SW": false,
	}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("Sweep() missing expected face %q, got faces %v", n, names)
		}
	}
}

func TestSweepDegenerateProfileFails(t *testing.T) {
	p := Profile{Name: "X", Outer: geom.Polyline3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}}
	if _, err := Sweep(p, geom.Vec3{X: 0, Y: 0, Z: 1}, 0); err != DegenerateRing {
		t.Errorf("Sweep() error = %v, want %v", err, DegenerateRing)
	}
}

func TestSweepWithHoleKeepsCapAreaSmaller(t *testing.T) {
	plane := geom.Plane{
		Origin: geom.Vec3{},
		U:      geom.Vec3{X: 1, Y: 0, Z: 0},
		V:      geom.Vec3{X: 0, Y: 1, Z: 0},
		Normal: geom.Vec3{X: 0, Y: 0, Z: 1},
	}
	outer := geom.Polyline3{
		{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 10, Y: 10, Z: 0}, {X: 0, Y: 10, Z: 0},
	}
	hole := geom.Polyline3{
		{X: 4, Y: 4, Z: 0}, {X: 4, Y: 6, Z: 0}, {X: 6, Y: 6, Z: 0}, {X: 6, Y: 4, Z: 0},
	}
	p := Profile{Name: "PLATE", Outer: outer, Holes: []geom.Polyline3{hole}, Plane: plane}
	s, err := Sweep(p, geom.Vec3{X: 0, Y: 0, Z: 1}, 0)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	endTris, ok := s.GetFace("PLATE_END")
	if !ok || len(endTris) == 0 {
		t.Fatalf("Sweep() missing PLATE_END triangles")
	}
	area := 0.0
	for _, tr := range endTris {
		a, b, c := s.Positions(tr)
		area += b.Sub(a).Cross(c.Sub(a)).Length() / 2
	}
	if area >= 100 {
		t.Errorf("Sweep() PLATE_END area = %v, want less than the 100 of the unholed square", area)
	}
}
