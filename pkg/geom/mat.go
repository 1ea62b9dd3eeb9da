package geom

import "math"

// Mat4 is a 4x4 matrix stored in row-major order: m[row*4+col].
// It composes the same way matrixWorld does on the scene side (pkg/scene):
// child-local coordinates are mapped to parent coordinates by
// parent.Mul(local).
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 returns a matrix that translates by (x, y, z).
func Translate4(x, y, z float64) Mat4 {
	m := Identity4()
	m[3] = x
	m[7] = y
	m[11] = z
	return m
}

// Scale4 returns a matrix that scales each axis independently.
func Scale4(x, y, z float64) Mat4 {
	m := Identity4()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// RotateX4 returns a matrix rotating by angle radians about the X axis.
func RotateX4(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity4()
	m[5], m[6] = c, -s
	m[9], m[10] = s, c
	return m
}

// RotateY4 returns a matrix rotating by angle radians about the Y axis.
func RotateY4(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity4()
	m[0], m[2] = c, s
	m[8], m[10] = -s, c
	return m
}

// RotateZ4 returns a matrix rotating by angle radians about the Z axis.
func RotateZ4(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity4()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// RotateAxis4 returns a matrix rotating by angle radians about an arbitrary
// unit axis through the origin (Rodrigues' rotation formula). Revolve uses
// this to sample a profile around an axis that need not align with X/Y/Z.
func RotateAxis4(axis Vec3, angle float64) Mat4 {
	axis = axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z
	return Mat4{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b (a applied after b, i.e. to transform a point first by b
// then by a, use a.Mul(b).Apply(p)).
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[r*4+k] * b[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Apply transforms a point, including translation.
func (a Mat4) Apply(p Vec3) Vec3 {
	return Vec3{
		X: a[0]*p.X + a[1]*p.Y + a[2]*p.Z + a[3],
		Y: a[4]*p.X + a[5]*p.Y + a[6]*p.Z + a[7],
		Z: a[8]*p.X + a[9]*p.Y + a[10]*p.Z + a[11],
	}
}

// ApplyDirection transforms a direction vector, ignoring translation. Not
// safe for non-uniform scales combined with later normal use; callers
// needing correct normal transforms under non-uniform scale should use the
// inverse-transpose instead (not needed anywhere in this pipeline today,
// since scale features are uniform or axis-aligned boxes).
func (a Mat4) ApplyDirection(v Vec3) Vec3 {
	return Vec3{
		X: a[0]*v.X + a[1]*v.Y + a[2]*v.Z,
		Y: a[4]*v.X + a[5]*v.Y + a[6]*v.Z,
		Z: a[8]*v.X + a[9]*v.Y + a[10]*v.Z,
	}
}

// Transpose returns the transpose of m.
func (a Mat4) Transpose() Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[c*4+r] = a[r*4+c]
		}
	}
	return out
}
