package boolean

import "github.com/lignin-cad/core/pkg/geom"

// triangle3 is a free-standing (not vertex-pool-indexed) triangle in world
// space, carrying the face identity it was cut from so fragments can be
// reassembled into a brep.Solid once classification decides which ones
// survive.
type triangle3 struct {
	P1, P2, P3 geom.Vec3
	FaceName   string
	Metadata   interface{} // brep.Metadata, asserted back at the brep boundary
}

func (t triangle3) centroid() geom.Vec3 {
	return geom.Vec3{
		X: (t.P1.X + t.P2.X + t.P3.X) / 3,
		Y: (t.P1.Y + t.P2.Y + t.P3.Y) / 3,
		Z: (t.P1.Z + t.P2.Z + t.P3.Z) / 3,
	}
}

func (t triangle3) normal() geom.Vec3 {
	return t.P2.Sub(t.P1).Cross(t.P3.Sub(t.P1)).Normalize()
}

func (t triangle3) min() geom.Vec3 {
	return geom.Vec3{
		X: minf(t.P1.X, t.P2.X, t.P3.X),
		Y: minf(t.P1.Y, t.P2.Y, t.P3.Y),
		Z: minf(t.P1.Z, t.P2.Z, t.P3.Z),
	}
}

func (t triangle3) max() geom.Vec3 {
	return geom.Vec3{
		X: maxf(t.P1.X, t.P2.X, t.P3.X),
		Y: maxf(t.P1.Y, t.P2.Y, t.P3.Y),
		Z: maxf(t.P1.Z, t.P2.Z, t.P3.Z),
	}
}

func minf(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxf(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
