package feature

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/lignin-cad/core/pkg/boolean"
	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/sweep"
)

func init() {
	Register(extrudeClass)
	Register(revolveClass)
	Register(loftClass)
}

// ExtrudeParams is the typed parameter record for the "E" feature type:
// a profile selection, a distance, an optional back-distance, and an
// optional boolean operation against existing solids.
type ExtrudeParams struct {
	Profile      string                `json:"profile"`
	Distance     float64               `json:"distance"`
	DistanceBack float64               `json:"distanceBack"`
	Boolean      BooleanOperationValue `json:"boolean"`
}

func (ExtrudeParams) paramData() {}

var extrudeClass = &FeatureClass{
	Type: "E",
	Schema: []FieldSchema{
		{Name: "profile", Type: FieldReferenceSelection, SelectionFilter: []string{"FACE", "SKETCH"}, Required: true},
		{Name: "distance", Type: FieldNumber, Default: 10.0, Required: true},
		{Name: "distanceBack", Type: FieldNumber, Default: 0.0},
		{Name: "boolean", Type: FieldBooleanOperation},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		var p ExtrudeParams
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding E params: %w", err)
			}
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(ExtrudeParams)
		if !ok || p.Profile == "" {
			return nil
		}
		names := []string{p.Profile}
		names = append(names, p.Boolean.Targets...)
		return names
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(ExtrudeParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: E expects ExtrudeParams, got %T", ctx.Feature.Params)
		}
		_, profile, err := resolveSolidAndFace(ctx.Scene, p.Profile)
		if err != nil {
			return Result{}, err
		}
		normal := profile.Plane.Normal
		solid, err := sweep.Sweep(profile, normal.Scale(p.Distance), p.DistanceBack)
		if err != nil {
			return Result{}, fmt.Errorf("feature: extrude %s: %w", ctx.Feature.ID, err)
		}
		return applyBoolean(ctx, solid, p.Boolean)
	},
}

// RevolveParams is the typed parameter record for the "R" feature type.
type RevolveParams struct {
	Profile    string                `json:"profile"`
	AxisPoint  [3]float64            `json:"axisPoint"`
	AxisDir    [3]float64            `json:"axisDir"`
	AngleDeg   float64               `json:"angleDeg"`
	Segments   int                   `json:"segments"`
	Boolean    BooleanOperationValue `json:"boolean"`
}

func (RevolveParams) paramData() {}

var revolveClass = &FeatureClass{
	Type: "R",
	Schema: []FieldSchema{
		{Name: "profile", Type: FieldReferenceSelection, SelectionFilter: []string{"FACE", "SKETCH"}, Required: true},
		{Name: "axisPoint", Type: FieldVec3},
		{Name: "axisDir", Type: FieldVec3, Default: [3]float64{0, 1, 0}},
		{Name: "angleDeg", Type: FieldNumber, Default: 360.0, Required: true},
		{Name: "segments", Type: FieldNumber, Default: 32.0},
		{Name: "boolean", Type: FieldBooleanOperation},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		var p RevolveParams
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding R params: %w", err)
			}
		}
		if p.Segments == 0 {
			p.Segments = 32
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(RevolveParams)
		if !ok || p.Profile == "" {
			return nil
		}
		names := []string{p.Profile}
		names = append(names, p.Boolean.Targets...)
		return names
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(RevolveParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: R expects RevolveParams, got %T", ctx.Feature.Params)
		}
		_, profile, err := resolveSolidAndFace(ctx.Scene, p.Profile)
		if err != nil {
			return Result{}, err
		}
		axisPoint := geom.Vec3{X: p.AxisPoint[0], Y: p.AxisPoint[1], Z: p.AxisPoint[2]}
		axisDir := geom.Vec3{X: p.AxisDir[0], Y: p.AxisDir[1], Z: p.AxisDir[2]}
		solid, err := sweep.Revolve(profile, axisPoint, axisDir, degToRad(p.AngleDeg), p.Segments)
		if err != nil {
			return Result{}, fmt.Errorf("feature: revolve %s: %w", ctx.Feature.ID, err)
		}
		return applyBoolean(ctx, solid, p.Boolean)
	},
}

// LoftParams is the typed parameter record for the "LOFT" feature type: an
// ordered list of profile selections lofted in order.
type LoftParams struct {
	Profiles []string              `json:"profiles"`
	Boolean  BooleanOperationValue `json:"boolean"`
}

func (LoftParams) paramData() {}

var loftClass = &FeatureClass{
	Type: "LOFT",
	Schema: []FieldSchema{
		{Name: "profiles", Type: FieldReferenceSelection, SelectionFilter: []string{"FACE", "SKETCH"}, Required: true},
		{Name: "boolean", Type: FieldBooleanOperation},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		var p LoftParams
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding LOFT params: %w", err)
			}
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(LoftParams)
		if !ok {
			return nil
		}
		names := append([]string{}, p.Profiles...)
		return append(names, p.Boolean.Targets...)
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(LoftParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: LOFT expects LoftParams, got %T", ctx.Feature.Params)
		}
		if len(p.Profiles) < 2 {
			return Result{}, fmt.Errorf("feature: loft %s needs at least 2 profiles, got %d", ctx.Feature.ID, len(p.Profiles))
		}
		profiles := make([]sweep.Profile, len(p.Profiles))
		for i, name := range p.Profiles {
			_, profile, err := resolveSolidAndFace(ctx.Scene, name)
			if err != nil {
				return Result{}, err
			}
			profiles[i] = profile
		}
		solid, err := sweep.Loft(profiles)
		if err != nil {
			return Result{}, fmt.Errorf("feature: loft %s: %w", ctx.Feature.ID, err)
		}
		return applyBoolean(ctx, solid, p.Boolean)
	},
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// applyBoolean composes a freshly swept solid against an existing one
// according to the boolean_operation field: NONE leaves the new body standalone,
// otherwise each named target is combined in turn and removed from the
// scene (it is superseded by the combined result).
func applyBoolean(ctx *RunContext, solid *brep.Solid, op BooleanOperationValue) (Result, error) {
	name := fmt.Sprintf("%s:body", ctx.Feature.ID)
	if op.Operation == BooleanNone || len(op.Targets) == 0 {
		return Result{Added: []ArtifactSpec{{Name: name, Solid: solid}}}, nil
	}

	result := solid
	var removed []string
	for _, target := range op.Targets {
		obj, ok := ctx.Scene.GetObjectByName(target)
		if !ok || obj.Solid == nil {
			continue
		}
		var err error
		switch op.Operation {
		case BooleanUnion:
			result, err = boolean.Union(result, obj.Solid)
		case BooleanSubtract:
			result, err = boolean.Subtract(obj.Solid, result)
		case BooleanIntersect:
			result, err = boolean.Intersect(result, obj.Solid)
		}
		if err != nil {
			return Result{}, fmt.Errorf("feature: %s boolean with %q: %w", ctx.Feature.ID, target, err)
		}
		removed = append(removed, target)
	}
	return Result{Added: []ArtifactSpec{{Name: name, Solid: result}}, Removed: removed}, nil
}
