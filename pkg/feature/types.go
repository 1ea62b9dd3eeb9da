package feature

import (
	"encoding/json"

	"github.com/lignin-cad/core/pkg/brep"
)

// FieldType enumerates the feature schema field kinds a dialog can render.
type FieldType int

const (
	FieldString FieldType = iota
	FieldNumber
	FieldBoolean
	FieldOptions
	FieldReferenceSelection
	FieldBooleanOperation
	FieldTransform
	FieldVec3
	FieldFile
	FieldTextarea
	FieldObject
	FieldButton
)

// FieldSchema is one entry of a feature class's static inputParamsSchema:
// field types, default values, selection filters, UI hints.
type FieldSchema struct {
	Name            string
	Type            FieldType
	Default         interface{}
	Options         []string // valid choices, for FieldOptions
	SelectionFilter []string // object types a FieldReferenceSelection accepts: FACE, EDGE, SKETCH, SOLID, PLANE, VERTEX
	Required        bool
}

// BooleanOp is the composite boolean_operation field's operation choice.
type BooleanOp int

const (
	BooleanNone BooleanOp = iota
	BooleanUnion
	BooleanSubtract
	BooleanIntersect
)

// BooleanOperationValue is the value of a boolean_operation field.
type BooleanOperationValue struct {
	Operation BooleanOp `json:"operation"`
	Targets   []string  `json:"targets"`
}

// TransformValue is the value of a transform field.
type TransformValue struct {
	Position      [3]float64 `json:"position"`
	RotationEuler [3]float64 `json:"rotationEuler"` // degrees
	Scale         [3]float64 `json:"scale"`
}

// ParamData is the tagged variant every built-in feature's typed parameter
// record implements, one struct per FeatureClass; the marker method
// restricts implementations to this package.
type ParamData interface {
	paramData()
}

// RawParams is the fallback ParamData for a feature type whose struct this
// package does not model (a user-authored or future feature type):
// inputParams round-trips as an untyped JSON object instead of failing to
// load.
type RawParams struct {
	Fields map[string]json.RawMessage
}

func (RawParams) paramData() {}

// Feature is one entry of the ordered history list.
// Lifecycle: created on insert, mutated only by its owning dialog (outside
// this package's concern), re-executed by RunHistory, destroyed on
// removal.
type Feature struct {
	ID                   string
	Type                 string
	Params               ParamData
	PersistentData       map[string]json.RawMessage
	ConsumeProfileSketch bool
	ProfileSketchName    string

	Added   []string
	Removed []string

	// UnknownFields preserves any JSON object keys this struct does not
	// model verbatim across a decode/encode round trip.
	UnknownFields map[string]json.RawMessage
}

// featureJSON mirrors Feature's on-wire shape for encoding/json, keeping
// InputParams/PersistentData as raw JSON so a feature class's typed Params
// struct round-trips through its own (un)marshaling.
type featureJSON struct {
	FeatureID            string                     `json:"featureID"`
	Type                 string                     `json:"type"`
	InputParams          json.RawMessage            `json:"inputParams"`
	PersistentData       map[string]json.RawMessage `json:"persistentData,omitempty"`
	ConsumeProfileSketch bool                       `json:"consumeProfileSketch,omitempty"`
	ProfileSketchName    string                     `json:"profileSketchName,omitempty"`
	Added                []string                   `json:"added,omitempty"`
	Removed              []string                   `json:"removed,omitempty"`
}

// MarshalJSON encodes the feature entry, round-tripping unknown fields
// merged back into the top-level object.
func (f *Feature) MarshalJSON() ([]byte, error) {
	paramsJSON, err := json.Marshal(f.Params)
	if err != nil {
		return nil, err
	}
	fj := featureJSON{
		FeatureID:            f.ID,
		Type:                 f.Type,
		InputParams:          paramsJSON,
		PersistentData:       f.PersistentData,
		ConsumeProfileSketch: f.ConsumeProfileSketch,
		ProfileSketchName:    f.ProfileSketchName,
		Added:                f.Added,
		Removed:              f.Removed,
	}
	known, err := json.Marshal(fj)
	if err != nil {
		return nil, err
	}
	if len(f.UnknownFields) == 0 {
		return known, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range f.UnknownFields {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes a feature entry, resolving InputParams through the
// type registry (falling back to RawParams for an unregistered type) and
// stashing any object keys this struct does not model in UnknownFields.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var fj featureJSON
	if err := json.Unmarshal(data, &fj); err != nil {
		return err
	}
	f.ID = fj.FeatureID
	f.Type = fj.Type
	f.PersistentData = fj.PersistentData
	f.ConsumeProfileSketch = fj.ConsumeProfileSketch
	f.ProfileSketchName = fj.ProfileSketchName
	f.Added = fj.Added
	f.Removed = fj.Removed

	params, err := decodeParams(fj.Type, fj.InputParams)
	if err != nil {
		return err
	}
	f.Params = params

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	known := map[string]bool{
		"featureID": true, "type": true, "inputParams": true, "persistentData": true,
		"consumeProfileSketch": true, "profileSketchName": true, "added": true, "removed": true,
	}
	for k, v := range all {
		if !known[k] {
			if f.UnknownFields == nil {
				f.UnknownFields = make(map[string]json.RawMessage)
			}
			f.UnknownFields[k] = v
		}
	}
	return nil
}

// Result is what a FeatureClass's Run function returns: the artifacts it
// adds (by name, resolved against the scene by the caller) and the names
// of artifacts it removes.
type Result struct {
	Added   []ArtifactSpec
	Removed []string
}

// ArtifactSpec names a solid a feature produced. Builtins return these
// rather than scene.Artifact directly so that pkg/feature's built-in
// feature files don't each need to import pkg/scene for the sole purpose
// of constructing its Artifact literal.
type ArtifactSpec struct {
	Name  string
	Solid *brep.Solid
}
