package trace

import (
	"image"
	"image/color"
	"testing"

	"github.com/lignin-cad/core/pkg/geom"
)

// filledSquare returns a w x h black image with a filled white square from
// (x0,y0) to (x1,y1) inclusive.
func filledSquare(w, h, x0, y0, x1, y1 int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestTraceSingleSquareYieldsOneOuterLoop(t *testing.T) {
	img := filledSquare(20, 20, 5, 5, 14, 14)
	loops, err := Trace(img, Options{Threshold: 128, Scale: 1})
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(loops) != 1 {
		t.Fatalf("expected 1 loop, got %d", len(loops))
	}
	if loops[0].IsHole {
		t.Fatal("single square should not be a hole")
	}
	if loops[0].Depth != 0 {
		t.Fatalf("expected depth 0, got %d", loops[0].Depth)
	}
}

func TestTraceSquareWithHoleYieldsNestedLoops(t *testing.T) {
	img := filledSquare(40, 40, 5, 5, 34, 34)
	// punch a black hole in the middle
	for y := 15; y <= 24; y++ {
		for x := 15; x <= 24; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
	loops, err := Trace(img, Options{Threshold: 128, Scale: 1})
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(loops) != 2 {
		t.Fatalf("expected 2 loops, got %d", len(loops))
	}
	holes, outers := 0, 0
	for _, l := range loops {
		if l.IsHole {
			holes++
		} else {
			outers++
		}
	}
	if holes != 1 || outers != 1 {
		t.Fatalf("expected 1 hole and 1 outer, got holes=%d outers=%d", holes, outers)
	}
}

func TestTraceBlankImageReturnsEmptyTrace(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	_, err := Trace(img, Options{Threshold: 128, Scale: 1})
	if err != EmptyTrace {
		t.Fatalf("expected EmptyTrace, got %v", err)
	}
}

func TestTraceSpeckleThresholdDropsTinyLoop(t *testing.T) {
	img := filledSquare(30, 30, 3, 3, 4, 3)
	_, err := Trace(img, Options{Threshold: 128, Scale: 1, SpeckleThreshold: 50})
	if err != EmptyTrace {
		t.Fatalf("expected EmptyTrace after speckle filtering, got %v", err)
	}
}

func TestTraceInvertFlipsForegroundSense(t *testing.T) {
	img := filledSquare(20, 20, 5, 5, 14, 14)
	// with invert, the dark background becomes foreground and the bright
	// square becomes a hole in it; both interpretations must succeed.
	loops, err := Trace(img, Options{Threshold: 128, Scale: 1, Invert: true})
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(loops) == 0 {
		t.Fatal("expected at least one loop with inverted threshold")
	}
}

func TestTraceBreakPointInsertsVertex(t *testing.T) {
	img := filledSquare(20, 20, 5, 5, 14, 14)
	loops, err := Trace(img, Options{
		Threshold:   128,
		Scale:       1,
		BreakPoints: []geom.Vec2{{X: 9.5, Y: -5}},
	})
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(loops) != 1 {
		t.Fatalf("expected 1 loop, got %d", len(loops))
	}
}
