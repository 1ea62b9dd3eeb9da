package sheetmetal

import (
	"math"
	"testing"

	"github.com/lignin-cad/core/pkg/geom"
)

func squareLoop(side float64) geom.Polyline2 {
	return geom.Polyline2{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side, Y: side},
		{X: 0, Y: side},
	}
}

func TestFilletLoopZeroRadiusIsNoop(t *testing.T) {
	loop := squareLoop(10)
	out := FilletLoop(loop, 0, 0)
	if len(out) != len(loop) {
		t.Fatalf("FilletLoop() with zero radius changed vertex count: %d vs %d", len(out), len(loop))
	}
	for i := range loop {
		if out[i] != loop[i] {
			t.Errorf("FilletLoop() with zero radius vertex %d = %v, want %v", i, out[i], loop[i])
		}
	}
}

func TestFilletLoopAddsArcPointsPerCorner(t *testing.T) {
	loop := squareLoop(10)
	segments := 6
	out := FilletLoop(loop, 1, segments)
	want := len(loop) * (segments + 1)
	if len(out) != want {
		t.Errorf("FilletLoop() produced %d points, want %d (4 corners x %d points each)", len(out), want, segments+1)
	}
}

func TestFilletLoopTrimClampedToHalfShorterEdge(t *testing.T) {
	loop := geom.Polyline2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 10},
		{X: 0, Y: 10},
	}
	out := FilletLoop(loop, 100, 4)
	for _, p := range out {
		if p.X < -1e-9 || p.X > 1+1e-9 {
			t.Errorf("FilletLoop() point %v escaped the loop's X bounds under a clamped radius", p)
		}
	}
}

func TestFilletLoopSkipsStraightVertex(t *testing.T) {
	loop := geom.Polyline2{
		{X: 0, Y: 0},
		{X: 5, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
	out := FilletLoop(loop, 1, 8)
	found := false
	for _, p := range out {
		if math.Abs(p.X-5) < 1e-9 && math.Abs(p.Y) < 1e-9 {
			found = true
		}
	}
	if !found {
		t.Errorf("FilletLoop() dropped the collinear midpoint vertex, got %v", out)
	}
}
