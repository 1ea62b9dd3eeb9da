package feature

import (
	"fmt"

	"github.com/lignin-cad/core/pkg/scene"
)

// ValidationSeverity splits validation findings into two tiers: a
// finding either blocks the run (Error) or is merely informational
// (Warning).
type ValidationSeverity int

const (
	SeverityError ValidationSeverity = iota
	SeverityWarning
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes one blocking or advisory finding against a
// single feature entry.
type ValidationError struct {
	FeatureID string
	Message   string
	Severity  ValidationSeverity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] feature %s: %s", e.Severity, e.FeatureID, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings from all
// tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// ValidateStructural is Tier 1: is the feature's type registered, does it
// carry an ID, did its parameters decode at all. Read-only, never touches
// the scene.
func ValidateStructural(f *Feature) []ValidationError {
	var errs []ValidationError
	if f.ID == "" {
		errs = append(errs, ValidationError{FeatureID: f.ID, Message: "missing feature id", Severity: SeverityError})
	}
	if _, ok := Lookup(f.Type); !ok {
		errs = append(errs, ValidationError{FeatureID: f.ID, Message: fmt.Sprintf("unregistered feature type %q", f.Type), Severity: SeverityError})
		return errs
	}
	if f.Params == nil {
		errs = append(errs, ValidationError{FeatureID: f.ID, Message: "missing input parameters", Severity: SeverityError})
	}
	return errs
}

// ValidateSelections is Tier 2: geometric/reference validation. A feature
// class that needs its reference_selection fields checked registers a
// Selections extractor; feature classes with none skip this tier
// entirely. Unresolved names produce a
// SeverityWarning, not a hard error: a downstream feature whose selection
// no longer resolves fails gracefully with an empty result instead of
// halting the whole run.
func ValidateSelections(ctx *RunContext) []ValidationError {
	class, ok := Lookup(ctx.Feature.Type)
	if !ok || class.Selections == nil {
		return nil
	}
	var warnings []ValidationError
	for _, name := range class.Selections(ctx.Feature.Params) {
		if _, found := ctx.Scene.GetObjectByName(name); !found {
			warnings = append(warnings, ValidationError{
				FeatureID: ctx.Feature.ID,
				Message:   fmt.Sprintf("selection %q does not resolve", name),
				Severity:  SeverityWarning,
			})
		}
	}
	return warnings
}

// ValidateAdjacency is Tier 3: topological validation of EDGE selections.
// An edge object records the two faces it was synthesized between; after
// an upstream re-run those faces can survive by name while the boolean
// rebuilt the solid so that they no longer touch, leaving the edge
// reference resolvable but geometrically meaningless (a Flange hinged on
// it would fold along a seam that no longer exists). Each resolved EDGE
// selection is re-checked against its solid's face-adjacency graph;
// a no-longer-adjacent pair is advisory, like an unresolved name: the
// feature still runs and fails on its own terms.
func ValidateAdjacency(ctx *RunContext) []ValidationError {
	class, ok := Lookup(ctx.Feature.Type)
	if !ok || class.Selections == nil {
		return nil
	}
	var warnings []ValidationError
	for _, name := range class.Selections(ctx.Feature.Params) {
		obj, found := ctx.Scene.GetObjectByName(name)
		if !found || obj.Type != scene.TypeEdge || obj.Solid == nil {
			continue
		}
		if obj.EdgeFaceA == "" || obj.EdgeFaceB == "" {
			continue
		}
		g, err := obj.Solid.FaceAdjacencyGraph()
		if err != nil {
			warnings = append(warnings, ValidationError{
				FeatureID: ctx.Feature.ID,
				Message:   fmt.Sprintf("edge %q: building face adjacency: %v", name, err),
				Severity:  SeverityWarning,
			})
			continue
		}
		if !g.HasEdge(obj.EdgeFaceA, obj.EdgeFaceB) {
			warnings = append(warnings, ValidationError{
				FeatureID: ctx.Feature.ID,
				Message:   fmt.Sprintf("edge %q: faces %q and %q are no longer adjacent", name, obj.EdgeFaceA, obj.EdgeFaceB),
				Severity:  SeverityWarning,
			})
		}
	}
	return warnings
}

// ValidateAll runs every tier and returns the combined result.
func ValidateAll(ctx *RunContext) ValidationResult {
	var result ValidationResult
	for _, e := range ValidateStructural(ctx.Feature) {
		if e.Severity == SeverityError {
			result.Errors = append(result.Errors, e)
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}
	if len(result.Errors) == 0 {
		for _, e := range ValidateSelections(ctx) {
			result.Warnings = append(result.Warnings, e)
		}
		for _, e := range ValidateAdjacency(ctx) {
			result.Warnings = append(result.Warnings, e)
		}
	}
	return result
}
