package feature

import (
	"encoding/json"
	"fmt"

	"github.com/lignin-cad/core/pkg/scene"
)

// RunContext is everything a FeatureClass's Run function is handed: the
// feature entry itself and read access to the current scene via Accessor.
// A narrow capability is passed rather than the whole mutable engine, so
// a feature's Run can resolve selections but never mutate the scene
// directly.
type RunContext struct {
	Feature *Feature
	Scene   scene.Accessor
}

// FeatureClass is a registered feature type: its static schema (for
// dialog/form generation, out of this package's scope) and its Run
// function.
type FeatureClass struct {
	Type         string
	Schema       []FieldSchema
	DecodeParams func(raw json.RawMessage) (ParamData, error)
	Run          func(ctx *RunContext) (Result, error)

	// Selections extracts the reference_selection names a feature's
	// parameters carry, for Tier 2 validation. Optional: a feature class
	// with no selection fields leaves this nil and skips that tier.
	Selections func(p ParamData) []string
}

var registry = make(map[string]*FeatureClass)

// Register adds a feature class to the global registry. Re-registering the
// same Type overwrites the previous entry, matching how builtin.go's
// init() functions are expected to run exactly once per type.
func Register(class *FeatureClass) {
	registry[class.Type] = class
}

// Lookup returns the registered feature class for a type name.
func Lookup(featureType string) (*FeatureClass, bool) {
	c, ok := registry[featureType]
	return c, ok
}

func decodeParams(featureType string, raw json.RawMessage) (ParamData, error) {
	class, ok := registry[featureType]
	if !ok || class.DecodeParams == nil {
		var fields map[string]json.RawMessage
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, fmt.Errorf("feature: decoding raw params for type %q: %w", featureType, err)
			}
		}
		return RawParams{Fields: fields}, nil
	}
	return class.DecodeParams(raw)
}
