// Package geom holds the math and 2D/3D topology primitives shared by the
// rest of the modeling pipeline: vectors, matrices, plane bases, polyline
// normalization, simplification, and polygon nesting. Nothing in this
// package depends on brep, boolean, sweep, trace, or sheetmetal; it is the
// leaf layer everything else builds on.
package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or direction in a 2D plane (sketch/profile space).
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2   { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2   { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }
func (a Vec2) Length() float64      { return math.Hypot(a.X, a.Y) }
func (a Vec2) DistanceTo(b Vec2) float64 { return a.Sub(b).Length() }

func (a Vec2) Normalize() Vec2 {
	l := a.Length()
	if l < Epsilon {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

func (a Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", a.X, a.Y)
}

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Dot(b Vec3) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Length() float64          { return math.Sqrt(a.Dot(a)) }
func (a Vec3) DistanceTo(b Vec3) float64 { return a.Sub(b).Length() }

func (a Vec3) Normalize() Vec3 {
	l := a.Length()
	if l < Epsilon {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t, a.Z + (b.Z-a.Z)*t}
}

// To2D drops the Z coordinate. Used when a caller already knows a Vec3 lies
// in the XY plane (e.g. a profile sketched at Z=0 before extrusion).
func (a Vec3) To2D() Vec2 { return Vec2{a.X, a.Y} }

func (a Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}

// Vec3From2D lifts a sketch-space point into world space at Z=z.
func Vec3From2D(v Vec2, z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// NearlyEqual reports whether a and b are within eps of each other,
// componentwise.
func (a Vec3) NearlyEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
