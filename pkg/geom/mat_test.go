package geom

import (
	"math"
	"testing"
)

func TestMat4IdentityApply(t *testing.T) {
	m := Identity4()
	p := Vec3{1, 2, 3}
	if got := m.Apply(p); got != p {
		t.Errorf("Identity().Apply(p) = %v, want %v", got, p)
	}
}

func TestMat4Translate(t *testing.T) {
	m := Translate4(10, 20, 30)
	got := m.Apply(Vec3{1, 1, 1})
	want := Vec3{11, 21, 31}
	if got != want {
		t.Errorf("Translate(10,20,30).Apply({1,1,1}) = %v, want %v", got, want)
	}
}

func TestMat4RotateZ90(t *testing.T) {
	m := RotateZ4(math.Pi / 2)
	got := m.Apply(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	if !got.NearlyEqual(want, 1e-9) {
		t.Errorf("RotateZ(90deg).Apply({1,0,0}) = %v, want %v", got, want)
	}
}

func TestMat4MulComposition(t *testing.T) {
	translate := Translate4(5, 0, 0)
	rotate := RotateZ4(math.Pi / 2)

	combined := translate.Mul(rotate)
	got := combined.Apply(Vec3{1, 0, 0})
	want := Vec3{5, 1, 0}
	if !got.NearlyEqual(want, 1e-9) {
		t.Errorf("(translate*rotate).Apply({1,0,0}) = %v, want %v", got, want)
	}
}

func TestMat4ApplyDirectionIgnoresTranslation(t *testing.T) {
	m := Translate4(100, 200, 300)
	got := m.ApplyDirection(Vec3{1, 0, 0})
	want := Vec3{1, 0, 0}
	if !got.NearlyEqual(want, 1e-9) {
		t.Errorf("ApplyDirection under pure translation = %v, want %v", got, want)
	}
}
