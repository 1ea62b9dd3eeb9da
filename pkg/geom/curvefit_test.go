package geom

import "testing"

func TestFitCurvePreservesRightAngleCorner(t *testing.T) {
	// A square traced pixel-by-pixel has many near-collinear points along
	// each side and one sharp 90-degree turn at each corner.
	square := Polyline2{
		{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0},
		{4, 1}, {4, 2}, {4, 3}, {4, 4},
	}
	fitted := FitCurve(square, 0.01, DefaultCornerAngleDegrees)

	found := false
	for _, p := range fitted {
		if p == (Vec2{4, 0}) {
			found = true
		}
	}
	if !found {
		t.Errorf("FitCurve() dropped the sharp corner at (4,0): %v", fitted)
	}
}

func TestFitCurveSmoothsGentleBend(t *testing.T) {
	// Points along a very shallow bend (well under the 70-degree corner
	// threshold) should be free to collapse under a generous tolerance.
	gentle := Polyline2{{0, 0}, {1, 0}, {2, 0.02}, {3, 0.05}, {4, 0.1}}
	fitted := FitCurve(gentle, 1.0, DefaultCornerAngleDegrees)
	if len(fitted) >= len(gentle) {
		t.Errorf("FitCurve() len = %d, want fewer than input %d for a gentle bend", len(fitted), len(gentle))
	}
}

func TestRemoveCollinearDropsMidpointOnStraightEdge(t *testing.T) {
	points := Polyline2{{0, 0}, {1, 0}, {2, 0}, {2, 1}}
	got := RemoveCollinear(points, false, 1e-6)
	for _, p := range got {
		if p == (Vec2{1, 0}) {
			t.Errorf("RemoveCollinear() kept collinear point %v", p)
		}
	}
	if len(got) != 3 {
		t.Errorf("RemoveCollinear() len = %d, want 3", len(got))
	}
}

func TestRemoveCollinearKeepsOpenEndpoints(t *testing.T) {
	points := Polyline2{{0, 0}, {1, 0}, {2, 0}}
	got := RemoveCollinear(points, false, 1e-6)
	if got[0] != points[0] || got[len(got)-1] != points[len(points)-1] {
		t.Error("RemoveCollinear() must keep endpoints of an open chain")
	}
}
