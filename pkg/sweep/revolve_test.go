package sweep

import (
	"math"
	"testing"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// ringProfile builds a 1x2 rectangle profile offset 3 units from the Z
// axis, lying in the XZ plane. Revolved a full turn it makes an annular
// ring with inner radius 3 and outer radius 4.
func ringProfile() Profile {
	plane := geom.Plane{
		Origin: geom.Vec3{X: 3, Y: 0, Z: 0},
		U:      geom.Vec3{X: 0, Y: 0, Z: 1},
		V:      geom.Vec3{X: 1, Y: 0, Z: 0},
		Normal: geom.Vec3{X: 0, Y: 1, Z: 0},
	}
	outer := geom.Polyline3{
		{X: 3, Y: 0, Z: 0},
		{X: 3, Y: 0, Z: 2},
		{X: 4, Y: 0, Z: 2},
		{X: 4, Y: 0, Z: 0},
	}
	return Profile{Name: "RING", Outer: outer, Plane: plane}
}

func TestRevolveFullTurnOmitsCaps(t *testing.T) {
	p := ringProfile()
	s, err := Revolve(p, geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: 1}, 2*math.Pi, 32)
	if err != nil {
		t.Fatalf("Revolve() error = %v", err)
	}
	for _, name := range s.GetFaceNames() {
		if name == p.Name+"_START" || name == p.Name+"_END" {
			t.Errorf("Revolve() full turn emitted cap face %q", name)
		}
	}
}

func TestRevolvePartialTurnEmitsCaps(t *testing.T) {
	p := ringProfile()
	s, err := Revolve(p, geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: 1}, math.Pi, 16)
	if err != nil {
		t.Fatalf("Revolve() error = %v", err)
	}
	names := map[string]bool{}
	for _, n := range s.GetFaceNames() {
		names[n] = true
	}
	if !names[p.Name+"_START"] || !names[p.Name+"_END"] {
		t.Errorf("Revolve() partial turn missing start/end caps, got %v", s.GetFaceNames())
	}
}

func TestRevolveAxisParallelEdgeGetsCylindricalMetadata(t *testing.T) {
	p := ringProfile()
	s, err := Revolve(p, geom.Vec3{}, geom.Vec3{X: 0, Y: 0, Z: 1}, 2*math.Pi, 32)
	if err != nil {
		t.Fatalf("Revolve() error = %v", err)
	}

	foundCylindrical := false
	for _, name := range s.GetFaceNames() {
		md, _ := s.GetFaceMetadata(name)
		if c, ok := md.(brep.Cylindrical); ok {
			foundCylindrical = true
			if c.Radius < 2.9 || c.Radius > 4.1 {
				t.Errorf("Revolve() cylindrical face %q radius = %v, want ~3 or ~4", name, c.Radius)
			}
		}
	}
	if !foundCylindrical {
		t.Errorf("Revolve() produced no Cylindrical-tagged face, got %v", s.GetFaceNames())
	}
}
