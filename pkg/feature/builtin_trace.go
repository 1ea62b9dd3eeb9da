package feature

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/sweep"
	"github.com/lignin-cad/core/pkg/trace"
)

func init() {
	Register(imageTraceClass)
}

// ImageTraceParams is the typed parameter record for the "IMG" feature
// type: a raster file traced into planar loops and extruded in one step.
// Threshold/Invert/PixelScale feed the tracer; Distance/DistanceBack feed
// the sweep, so one feature entry owns the whole image-to-prism pipeline
// and a re-run re-traces the file from scratch.
type ImageTraceParams struct {
	File                  string                `json:"file"`
	Threshold             float64               `json:"threshold"`
	Invert                bool                  `json:"invert"`
	PixelScale            float64               `json:"pixelScale"`
	SpeckleThreshold      float64               `json:"speckleThreshold"`
	FitCurves             bool                  `json:"fitCurves"`
	RDPTolerance          float64               `json:"rdpTolerance"`
	Distance              float64               `json:"distance"`
	DistanceBack          float64               `json:"distanceBack"`
	BreakPoints           [][2]float64          `json:"breakPoints,omitempty"`
	SuppressedBreakPoints [][2]float64          `json:"suppressedBreakPoints,omitempty"`
	SuppressionRadius     float64               `json:"suppressionRadius,omitempty"`
	Boolean               BooleanOperationValue `json:"boolean"`
}

func (ImageTraceParams) paramData() {}

var imageTraceClass = &FeatureClass{
	Type: "IMG",
	Schema: []FieldSchema{
		{Name: "file", Type: FieldFile, Required: true},
		{Name: "threshold", Type: FieldNumber, Default: 128.0},
		{Name: "invert", Type: FieldBoolean, Default: false},
		{Name: "pixelScale", Type: FieldNumber, Default: 1.0},
		{Name: "speckleThreshold", Type: FieldNumber, Default: 0.0},
		{Name: "fitCurves", Type: FieldBoolean, Default: false},
		{Name: "rdpTolerance", Type: FieldNumber, Default: 0.0},
		{Name: "distance", Type: FieldNumber, Default: 10.0, Required: true},
		{Name: "distanceBack", Type: FieldNumber, Default: 0.0},
		{Name: "breakPoints", Type: FieldObject},
		{Name: "suppressedBreakPoints", Type: FieldObject},
		{Name: "suppressionRadius", Type: FieldNumber, Default: 0.0},
		{Name: "boolean", Type: FieldBooleanOperation},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		p := ImageTraceParams{Threshold: 128, PixelScale: 1, Distance: 10}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding IMG params: %w", err)
			}
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(ImageTraceParams)
		if !ok {
			return nil
		}
		return append([]string{}, p.Boolean.Targets...)
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(ImageTraceParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: IMG expects ImageTraceParams, got %T", ctx.Feature.Params)
		}

		img, err := decodeImageFile(p.File)
		if err != nil {
			return Result{}, fmt.Errorf("feature: trace %s: %w", ctx.Feature.ID, err)
		}

		nested, err := trace.Trace(img, traceOptions(p))
		if err != nil {
			// An image with nothing to trace is a no-op, not a history
			// failure: the user fixes the threshold and re-runs.
			log.Printf("feature %s (IMG): %v", ctx.Feature.ID, err)
			return Result{}, nil
		}

		profiles := traceProfiles(ctx.Feature.ID, nested)
		if len(profiles) == 0 {
			log.Printf("feature %s (IMG): trace produced no outer loops", ctx.Feature.ID)
			return Result{}, nil
		}

		if len(profiles) > 1 && p.Boolean.Operation != BooleanNone {
			log.Printf("feature %s (IMG): boolean ignored, trace produced %d regions", ctx.Feature.ID, len(profiles))
			p.Boolean = BooleanOperationValue{}
		}

		dir := geom.Vec3{Z: p.Distance}
		var out Result
		for i, profile := range profiles {
			solid, err := sweep.Sweep(profile, dir, p.DistanceBack)
			if err != nil {
				log.Printf("feature %s (IMG): region %d: %v", ctx.Feature.ID, i, err)
				continue
			}
			if p.Boolean.Operation != BooleanNone {
				return applyBoolean(ctx, solid, p.Boolean)
			}
			out.Added = append(out.Added, ArtifactSpec{Name: profile.Name, Solid: solid})
		}
		return out, nil
	},
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %q: %w", path, err)
	}
	return img, nil
}

func traceOptions(p ImageTraceParams) trace.Options {
	opts := trace.Options{
		Threshold:         uint8(p.Threshold),
		Invert:            p.Invert,
		Scale:             p.PixelScale,
		SpeckleThreshold:  p.SpeckleThreshold,
		FitCurves:         p.FitCurves,
		RDPTolerance:      p.RDPTolerance,
		SuppressionRadius: p.SuppressionRadius,
	}
	for _, bp := range p.BreakPoints {
		opts.BreakPoints = append(opts.BreakPoints, geom.Vec2{X: bp[0], Y: bp[1]})
	}
	for _, sp := range p.SuppressedBreakPoints {
		opts.SuppressedBreakPoints = append(opts.SuppressedBreakPoints, geom.Vec2{X: sp[0], Y: sp[1]})
	}
	return opts
}

// traceProfiles pairs every outer (even-depth) loop with the holes nested
// directly inside it and lifts them onto the z=0 plane. Region names are
// indexed in loop order so a re-run with identical parameters reproduces
// the same solid and face names.
func traceProfiles(featureID string, nested []geom.NestedLoop) []sweep.Profile {
	plane := geom.Plane{
		Origin: geom.Vec3{},
		U:      geom.Vec3{X: 1},
		V:      geom.Vec3{Y: 1},
		Normal: geom.Vec3{Z: 1},
	}

	var profiles []sweep.Profile
	for i, nl := range nested {
		if nl.IsHole {
			continue
		}
		profile := sweep.Profile{
			Name:  fmt.Sprintf("%s:region%d", featureID, i),
			Outer: liftLoop(nl.Loop),
			Plane: plane,
		}
		for _, h := range nested {
			if h.IsHole && h.Parent == i {
				profile.Holes = append(profile.Holes, liftLoop(h.Loop))
			}
		}
		profiles = append(profiles, profile)
	}
	return profiles
}

func liftLoop(loop geom.Polyline2) geom.Polyline3 {
	out := make(geom.Polyline3, len(loop))
	for i, v := range loop {
		out[i] = geom.Vec3From2D(v, 0)
	}
	return out
}
