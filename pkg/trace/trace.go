package trace

import (
	"image"
	"math"

	"github.com/lignin-cad/core/pkg/geom"
)

// Options controls how an image is turned into a set of nested planar
// loops.
type Options struct {
	// Threshold is the luma cutoff (0-255) separating foreground from
	// background; non-transparent pixels whose luma is at or above
	// Threshold are foreground unless Invert is set.
	Threshold uint8
	Invert    bool

	// Scale converts one pixel to one world unit. Must be positive;
	// defaults to 1 if zero.
	Scale float64

	// SpeckleThreshold drops loops whose raw pixel-grid area (before
	// scaling) falls below it. Zero disables speckle filtering.
	SpeckleThreshold float64

	// FitCurves replaces straight pixel-stair boundaries with fitted arcs
	// and lines (see geom.FitCurve) instead of a plain collinear-point
	// cleanup.
	FitCurves          bool
	CornerAngleDegrees float64 // 0 uses geom.DefaultCornerAngleDegrees
	CurveTolerance     float64 // 0 uses a small default

	// RDPTolerance runs Ramer-Douglas-Peucker simplification in world
	// units after curve fitting. Zero disables it.
	RDPTolerance float64

	// BreakPoints insert an extra vertex at the nearest point on whatever
	// loop edge is closest, letting a caller force a seam at that
	// location (e.g. where a flange fold line must land). Suppressed
	// break points do the opposite: remove an auto-detected corner
	// vertex within SuppressionRadius of the given point.
	BreakPoints           []geom.Vec2
	SuppressedBreakPoints []geom.Vec2
	SuppressionRadius     float64
}

const defaultCurveTolerance = 0.75

// Trace runs the full image-to-loop pipeline: binarize, walk pixel
// boundaries, map to world coordinates, drop speckles, optionally fit
// curves and simplify, sanitize self-intersections, reject cross-loop
// intersections, and classify nesting.
func Trace(img image.Image, opts Options) ([]geom.NestedLoop, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	fg := Binarize(img, opts.Threshold, opts.Invert)
	rawLoops := extractBoundaryLoops(fg)
	if len(rawLoops) == 0 {
		return nil, EmptyTrace
	}

	var loops []geom.Polyline2
	for _, rl := range rawLoops {
		if opts.SpeckleThreshold > 0 && math.Abs(nodeLoopArea(rl)) < opts.SpeckleThreshold {
			continue
		}
		world := toWorldLoop(rl, scale)
		cleaned := cleanLoop(world, opts)
		if len(cleaned) < 3 {
			continue
		}
		loops = append(loops, cleaned)
	}
	if len(loops) == 0 {
		return nil, EmptyTrace
	}

	loops = rejectIntersecting(loops)
	if len(loops) == 0 {
		return nil, EmptyTrace
	}

	loops = applyBreakPoints(loops, opts)

	return geom.ClassifyNesting(loops), nil
}

// toWorldLoop maps grid corner coordinates to world space. Grid y grows
// downward like image rows; negating it after scaling gives a conventional
// math-style y-up world with the boundary-walk orientation (see
// extractBoundaryLoops) coming out right side up: CCW for outer loops, CW
// for holes.
func toWorldLoop(rl []node, scale float64) geom.Polyline2 {
	out := make(geom.Polyline2, len(rl))
	for i, n := range rl {
		out[i] = geom.Vec2{X: float64(n.X) * scale, Y: -float64(n.Y) * scale}
	}
	return out
}

// cleanLoop turns a raw pixel-stair boundary into a simplified polyline,
// falling back a step at a time if a fitting stage introduces a
// self-intersection that wasn't there before it.
func cleanLoop(loop geom.Polyline2, opts Options) geom.Polyline2 {
	cleaned := geom.RemoveCollinear(loop, true, 1.0)

	if opts.FitCurves {
		angle := opts.CornerAngleDegrees
		if angle <= 0 {
			angle = geom.DefaultCornerAngleDegrees
		}
		tol := opts.CurveTolerance
		if tol <= 0 {
			tol = defaultCurveTolerance
		}
		if fitted := geom.FitCurve(cleaned, tol, angle); !geom.PolygonSelfIntersects(fitted) {
			cleaned = fitted
		}
	}

	if opts.RDPTolerance > 0 {
		if simplified := geom.Simplify(cleaned, opts.RDPTolerance); !geom.PolygonSelfIntersects(simplified) {
			cleaned = simplified
		}
	}

	if geom.PolygonSelfIntersects(cleaned) {
		fallback := geom.RemoveCollinear(loop, true, 1.0)
		if geom.PolygonSelfIntersects(fallback) {
			return nil
		}
		cleaned = fallback
	}

	return cleaned
}

func applyBreakPoints(loops []geom.Polyline2, opts Options) []geom.Polyline2 {
	for _, bp := range opts.BreakPoints {
		loops = insertBreakPoint(loops, bp)
	}
	for _, sp := range opts.SuppressedBreakPoints {
		loops = removeSuppressedCorner(loops, sp, opts.SuppressionRadius)
	}
	return loops
}

// insertBreakPoint finds the closest point on any edge of any loop and
// splits that edge there.
func insertBreakPoint(loops []geom.Polyline2, p geom.Vec2) []geom.Polyline2 {
	bestLoop, bestEdge := -1, -1
	bestDist := math.Inf(1)
	bestT := 0.0

	for li, loop := range loops {
		n := len(loop)
		for i := 0; i < n; i++ {
			a, b := loop[i], loop[(i+1)%n]
			t, d := closestPointOnSegment(p, a, b)
			if d < bestDist {
				bestDist, bestLoop, bestEdge, bestT = d, li, i, t
			}
		}
	}
	if bestLoop < 0 {
		return loops
	}

	loop := loops[bestLoop]
	n := len(loop)
	a, b := loop[bestEdge], loop[(bestEdge+1)%n]
	pt := a.Lerp(b, bestT)

	newLoop := make(geom.Polyline2, 0, n+1)
	newLoop = append(newLoop, loop[:bestEdge+1]...)
	newLoop = append(newLoop, pt)
	newLoop = append(newLoop, loop[bestEdge+1:]...)
	loops[bestLoop] = newLoop
	return loops
}

// removeSuppressedCorner drops the vertex nearest p, provided it falls
// within radius and the loop stays a valid polygon afterward.
func removeSuppressedCorner(loops []geom.Polyline2, p geom.Vec2, radius float64) []geom.Polyline2 {
	bestLoop, bestIdx := -1, -1
	bestDist := math.Inf(1)

	for li, loop := range loops {
		for i, v := range loop {
			d := v.DistanceTo(p)
			if d < bestDist {
				bestDist, bestLoop, bestIdx = d, li, i
			}
		}
	}
	if bestLoop < 0 || bestDist > radius {
		return loops
	}

	loop := loops[bestLoop]
	if len(loop) <= 3 {
		return loops
	}
	newLoop := make(geom.Polyline2, 0, len(loop)-1)
	newLoop = append(newLoop, loop[:bestIdx]...)
	newLoop = append(newLoop, loop[bestIdx+1:]...)
	loops[bestLoop] = newLoop
	return loops
}

func closestPointOnSegment(p, a, b geom.Vec2) (t, dist float64) {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < 1e-18 {
		return 0, p.DistanceTo(a)
	}
	t = p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t, p.DistanceTo(a.Lerp(b, t))
}
