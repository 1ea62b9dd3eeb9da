// Package feature implements the feature registry and history engine: an
// ordered list of parametric operations that re-run deterministically from
// an edited step, reading parameters and named selections and driving
// pkg/brep/pkg/boolean/pkg/sweep/pkg/sheetmetal to produce {added, removed}
// scene artifacts.
package feature

import "errors"

// TypeUnknown is returned when a Feature's Type names no registered
// FeatureClass.
var TypeUnknown = errors.New("feature: unknown feature type")

// ValidationFailed names a Tier 1 (structural) validation failure. No
// function in this package returns it: RunHistory logs each validation
// error for the feature instead.
var ValidationFailed = errors.New("feature: parameter validation failed")

// SelectionUnresolved is returned when a reference_selection field names an
// object absent from the scene (stale after an upstream edit).
var SelectionUnresolved = errors.New("feature: selection does not resolve")
