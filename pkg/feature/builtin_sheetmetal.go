package feature

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/scene"
	"github.com/lignin-cad/core/pkg/sheetmetal"
)

func init() {
	Register(smFlangeClass)
	Register(smHemClass)
	Register(smContourFlangeClass)
	Register(smCutoutClass)
}

// edgeEndpoints pulls the two endpoints of an EDGE object's world-space
// boundary polyline out of its userData, the same polylineWorld field
// pkg/scene.Scene.InsertSolid stamps on every synthesized edge.
func edgeEndpoints(o *scene.Object) (a, b geom.Vec3, err error) {
	if o.Type != scene.TypeEdge {
		return geom.Vec3{}, geom.Vec3{}, fmt.Errorf("feature: %q is not an edge object", o.Name)
	}
	raw, ok := o.UserData["polylineWorld"].([]geom.Vec3)
	if !ok || len(raw) < 2 {
		return geom.Vec3{}, geom.Vec3{}, fmt.Errorf("feature: edge %q has no boundary polyline", o.Name)
	}
	return raw[0], raw[len(raw)-1], nil
}

func resolveFace(sc scene.Accessor, name string) (*scene.Object, error) {
	o, ok := sc.GetObjectByName(name)
	if !ok || o.Type != scene.TypeFace {
		return nil, fmt.Errorf("feature: %w: %q", SelectionUnresolved, name)
	}
	return o, nil
}

func resolveEdge(sc scene.Accessor, name string) (*scene.Object, error) {
	o, ok := sc.GetObjectByName(name)
	if !ok || o.Type != scene.TypeEdge {
		return nil, fmt.Errorf("feature: %w: %q", SelectionUnresolved, name)
	}
	return o, nil
}

// FlangeInsetRule mirrors sheetmetal.InsetRule as a JSON-friendly options
// field value.
type FlangeInsetRule string

const (
	InsetMaterialInside  FlangeInsetRule = "MATERIAL_INSIDE"
	InsetMaterialOutside FlangeInsetRule = "MATERIAL_OUTSIDE"
	InsetBendOutside     FlangeInsetRule = "BEND_OUTSIDE"
)

func (r FlangeInsetRule) toSheetmetal() sheetmetal.InsetRule {
	switch r {
	case InsetMaterialOutside:
		return sheetmetal.MaterialOutside
	case InsetBendOutside:
		return sheetmetal.BendOutside
	default:
		return sheetmetal.MaterialInside
	}
}

// SMFlangeParams is the typed parameter record for "SM.FLANGE": a hinge
// edge, the host face that supplies the bend's radial direction, and the
// leg's dimensions.
type SMFlangeParams struct {
	HostFace   string          `json:"hostFace"`
	Edge       string          `json:"edge"`
	LegLength  float64         `json:"legLength"`
	BendRadius float64         `json:"bendRadius"`
	Thickness  float64         `json:"thickness"`
	AngleDeg   float64         `json:"angleDeg"`
	Inset      FlangeInsetRule `json:"inset"`
	KFactor    float64         `json:"kFactor"`
}

func (SMFlangeParams) paramData() {}

var smFlangeClass = &FeatureClass{
	Type: "SM.FLANGE",
	Schema: []FieldSchema{
		{Name: "hostFace", Type: FieldReferenceSelection, SelectionFilter: []string{"FACE"}, Required: true},
		{Name: "edge", Type: FieldReferenceSelection, SelectionFilter: []string{"EDGE"}, Required: true},
		{Name: "legLength", Type: FieldNumber, Default: 10.0, Required: true},
		{Name: "bendRadius", Type: FieldNumber, Default: 1.0},
		{Name: "thickness", Type: FieldNumber, Default: 1.0},
		{Name: "angleDeg", Type: FieldNumber, Default: 90.0},
		{Name: "inset", Type: FieldOptions, Options: []string{"MATERIAL_INSIDE", "MATERIAL_OUTSIDE", "BEND_OUTSIDE"}, Default: string(InsetMaterialInside)},
		{Name: "kFactor", Type: FieldNumber, Default: 0.5},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		p := SMFlangeParams{KFactor: 0.5, AngleDeg: 90}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding SM.FLANGE params: %w", err)
			}
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(SMFlangeParams)
		if !ok {
			return nil
		}
		return []string{p.HostFace, p.Edge}
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(SMFlangeParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: SM.FLANGE expects SMFlangeParams, got %T", ctx.Feature.Params)
		}
		host, err := resolveFace(ctx.Scene, p.HostFace)
		if err != nil {
			return Result{}, err
		}
		edge, err := resolveEdge(ctx.Scene, p.Edge)
		if err != nil {
			return Result{}, err
		}
		normal, ok := host.AverageNormal()
		if !ok {
			return Result{}, fmt.Errorf("feature: host face %q has no normal", p.HostFace)
		}
		a, b, err := edgeEndpoints(edge)
		if err != nil {
			return Result{}, err
		}
		solidObj, ok := solidOwning(ctx.Scene, host)
		if !ok {
			return Result{}, fmt.Errorf("feature: face %q has no owning solid", p.HostFace)
		}
		sheet, err := sheetmetal.Flange(host.Solid, a, b, normal, p.LegLength, p.BendRadius, p.Thickness, degToRad(p.AngleDeg), p.Inset.toSheetmetal(), p.KFactor)
		if err != nil {
			return Result{}, fmt.Errorf("feature: flange %s: %w", ctx.Feature.ID, err)
		}
		return replaceSolid(ctx, solidObj.Name, sheet.Solid), nil
	},
}

// SMHemParams is the typed parameter record for "SM.HEM".
type SMHemParams struct {
	HostFace  string  `json:"hostFace"`
	Edge      string  `json:"edge"`
	Thickness float64 `json:"thickness"`
	KFactor   float64 `json:"kFactor"`
}

func (SMHemParams) paramData() {}

var smHemClass = &FeatureClass{
	Type: "SM.HEM",
	Schema: []FieldSchema{
		{Name: "hostFace", Type: FieldReferenceSelection, SelectionFilter: []string{"FACE"}, Required: true},
		{Name: "edge", Type: FieldReferenceSelection, SelectionFilter: []string{"EDGE"}, Required: true},
		{Name: "thickness", Type: FieldNumber, Default: 1.0},
		{Name: "kFactor", Type: FieldNumber, Default: 0.5},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		p := SMHemParams{KFactor: 0.5}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding SM.HEM params: %w", err)
			}
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(SMHemParams)
		if !ok {
			return nil
		}
		return []string{p.HostFace, p.Edge}
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(SMHemParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: SM.HEM expects SMHemParams, got %T", ctx.Feature.Params)
		}
		host, err := resolveFace(ctx.Scene, p.HostFace)
		if err != nil {
			return Result{}, err
		}
		edge, err := resolveEdge(ctx.Scene, p.Edge)
		if err != nil {
			return Result{}, err
		}
		normal, ok := host.AverageNormal()
		if !ok {
			return Result{}, fmt.Errorf("feature: host face %q has no normal", p.HostFace)
		}
		a, b, err := edgeEndpoints(edge)
		if err != nil {
			return Result{}, err
		}
		solidObj, ok := solidOwning(ctx.Scene, host)
		if !ok {
			return Result{}, fmt.Errorf("feature: face %q has no owning solid", p.HostFace)
		}
		sheet, err := sheetmetal.Hem(host.Solid, a, b, normal, p.Thickness, p.KFactor)
		if err != nil {
			return Result{}, fmt.Errorf("feature: hem %s: %w", ctx.Feature.ID, err)
		}
		return replaceSolid(ctx, solidObj.Name, sheet.Solid), nil
	},
}

// SMContourFlangeParams is the typed parameter record for
// "SM.CONTOURFLANGE": a closed profile extruded and rounded into a
// standalone sheet, rather than hinged off an existing one.
type SMContourFlangeParams struct {
	Profile        string  `json:"profile"`
	BendRadius     float64 `json:"bendRadius"`
	Thickness      float64 `json:"thickness"`
	TowardNormal   bool    `json:"towardNormal"`
	KFactor        float64 `json:"kFactor"`
	FilletSegments int     `json:"filletSegments"`
}

func (SMContourFlangeParams) paramData() {}

var smContourFlangeClass = &FeatureClass{
	Type: "SM.CONTOURFLANGE",
	Schema: []FieldSchema{
		{Name: "profile", Type: FieldReferenceSelection, SelectionFilter: []string{"FACE", "SKETCH"}, Required: true},
		{Name: "bendRadius", Type: FieldNumber, Default: 1.0},
		{Name: "thickness", Type: FieldNumber, Default: 1.0},
		{Name: "towardNormal", Type: FieldBoolean, Default: true},
		{Name: "kFactor", Type: FieldNumber, Default: 0.5},
		{Name: "filletSegments", Type: FieldNumber, Default: 8.0},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		p := SMContourFlangeParams{KFactor: 0.5, TowardNormal: true, FilletSegments: 8}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding SM.CONTOURFLANGE params: %w", err)
			}
		}
		if p.FilletSegments == 0 {
			p.FilletSegments = 8
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(SMContourFlangeParams)
		if !ok || p.Profile == "" {
			return nil
		}
		return []string{p.Profile}
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(SMContourFlangeParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: SM.CONTOURFLANGE expects SMContourFlangeParams, got %T", ctx.Feature.Params)
		}
		_, profile, err := resolveSolidAndFace(ctx.Scene, p.Profile)
		if err != nil {
			return Result{}, err
		}
		outer := profile.Outer.Project(profile.Plane)
		holes := make([]geom.Polyline2, len(profile.Holes))
		for i, h := range profile.Holes {
			holes[i] = h.Project(profile.Plane)
		}
		name := fmt.Sprintf("%s:body", ctx.Feature.ID)
		sheet, err := sheetmetal.ContourFlange(name, profile.Plane, outer, holes, p.BendRadius, p.Thickness, p.TowardNormal, p.KFactor, p.FilletSegments)
		if err != nil {
			return Result{}, fmt.Errorf("feature: contour flange %s: %w", ctx.Feature.ID, err)
		}
		return Result{Added: []ArtifactSpec{{Name: name, Solid: sheet.Solid}}}, nil
	},
}

// SMCutoutParams is the typed parameter record for "SM.CUTOUT": punches a
// tool solid's footprint through a classified sheet.
type SMCutoutParams struct {
	Sheet   string  `json:"sheet"`
	Tool    string  `json:"tool"`
	KFactor float64 `json:"kFactor"`
}

func (SMCutoutParams) paramData() {}

var smCutoutClass = &FeatureClass{
	Type: "SM.CUTOUT",
	Schema: []FieldSchema{
		{Name: "sheet", Type: FieldReferenceSelection, SelectionFilter: []string{"SOLID"}, Required: true},
		{Name: "tool", Type: FieldReferenceSelection, SelectionFilter: []string{"SOLID"}, Required: true},
		{Name: "kFactor", Type: FieldNumber, Default: 0.5},
	},
	DecodeParams: func(raw json.RawMessage) (ParamData, error) {
		p := SMCutoutParams{KFactor: 0.5}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, fmt.Errorf("feature: decoding SM.CUTOUT params: %w", err)
			}
		}
		return p, nil
	},
	Selections: func(pd ParamData) []string {
		p, ok := pd.(SMCutoutParams)
		if !ok {
			return nil
		}
		return []string{p.Sheet, p.Tool}
	},
	Run: func(ctx *RunContext) (Result, error) {
		p, ok := ctx.Feature.Params.(SMCutoutParams)
		if !ok {
			return Result{}, fmt.Errorf("feature: SM.CUTOUT expects SMCutoutParams, got %T", ctx.Feature.Params)
		}
		sheetObj, ok := ctx.Scene.GetObjectByName(p.Sheet)
		if !ok || sheetObj.Solid == nil {
			return Result{}, fmt.Errorf("feature: %w: %q", SelectionUnresolved, p.Sheet)
		}
		toolObj, ok := ctx.Scene.GetObjectByName(p.Tool)
		if !ok || toolObj.Solid == nil {
			return Result{}, fmt.Errorf("feature: %w: %q", SelectionUnresolved, p.Tool)
		}
		sheet, err := sheetmetal.Classify(sheetObj.Solid, p.KFactor)
		if errors.Is(err, sheetmetal.AmbiguousPair) {
			log.Printf("feature %s (SM.CUTOUT): %v", ctx.Feature.ID, err)
		} else if err != nil {
			return Result{}, fmt.Errorf("feature: cutout %s: classifying sheet: %w", ctx.Feature.ID, err)
		}
		result, err := sheetmetal.Cutout(sheet, toolObj.Solid)
		if err != nil {
			return Result{}, fmt.Errorf("feature: cutout %s: %w", ctx.Feature.ID, err)
		}
		return replaceSolid(ctx, sheetObj.Name, result), nil
	},
}

// replaceSolid produces the {added, removed} pair for a feature that
// consumes one existing SOLID and emits a new one in its place, the
// shape every sheet-metal builtin's Run function returns.
func replaceSolid(ctx *RunContext, oldName string, solid *brep.Solid) Result {
	name := fmt.Sprintf("%s:body", ctx.Feature.ID)
	return Result{
		Added:   []ArtifactSpec{{Name: name, Solid: solid}},
		Removed: []string{oldName},
	}
}
