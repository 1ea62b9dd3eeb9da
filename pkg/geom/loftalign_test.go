package geom

import "testing"

// Mirrors S3: two unit squares, the second rotated 90 degrees about its
// center, should align at rotation index 1 with no reversal needed.
func TestAlignLoopRotatedSquare(t *testing.T) {
	reference := Polyline2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	rotatedSquare := Polyline2{{1, 0}, {1, 1}, {0, 1}, {0, 0}}

	alignment := AlignLoop(reference, rotatedSquare, true)
	if alignment.Reversed {
		t.Error("AlignLoop() chose reversal for a pure rotation, want false")
	}
	if alignment.Rotation != 1 {
		t.Errorf("AlignLoop() rotation = %d, want 1", alignment.Rotation)
	}
}

func TestAlignLoopIdentity(t *testing.T) {
	reference := Polyline2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	alignment := AlignLoop(reference, reference, true)
	if alignment.Rotation != 0 || alignment.Reversed {
		t.Errorf("AlignLoop() of identical rings = %+v, want rotation=0 reversed=false", alignment)
	}
	if alignment.Cost != 0 {
		t.Errorf("AlignLoop() cost = %v, want 0", alignment.Cost)
	}
}

func TestAlignLoopPrefersNonReversedOnTie(t *testing.T) {
	// A square is symmetric under reversal, so both directions score
	// identically; the non-reversed alignment must win.
	reference := Polyline2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	alignment := AlignLoop(reference, reference, true)
	if alignment.Reversed {
		t.Error("AlignLoop() chose reversal on a cost tie, want non-reversed")
	}
}

func TestLoopAlignmentApplyRoundTrip(t *testing.T) {
	reference := Polyline2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	rotatedSquare := Polyline2{{1, 0}, {1, 1}, {0, 1}, {0, 0}}

	alignment := AlignLoop(reference, rotatedSquare, true)
	aligned := alignment.Apply(rotatedSquare)
	for i := range reference {
		if aligned[i] != reference[i] {
			t.Errorf("Apply()[%d] = %v, want %v", i, aligned[i], reference[i])
		}
	}
}

func TestResampleRingPreservesVertexCount(t *testing.T) {
	triangle := Polyline2{{0, 0}, {4, 0}, {0, 3}}
	resampled := ResampleRing(triangle, 6)
	if len(resampled) != 6 {
		t.Fatalf("ResampleRing() len = %d, want 6", len(resampled))
	}
}
