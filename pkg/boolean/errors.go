package boolean

import "errors"

// BooleanFailed is returned when a union/intersect/subtract cannot produce
// a valid result (inputs collapse to nothing, or point classification is
// unstable because of degenerate/non-manifold input). The kernel never
// silently drops volume: callers that want a graceful degradation (as
// sheetmetal.Cutout falls back to direct subtraction when intersection
// fails) must handle this explicitly.
var BooleanFailed = errors.New("boolean: operation failed")
