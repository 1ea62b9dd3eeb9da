// Package sheetmetal layers sheet-metal semantics on top of pkg/brep and
// pkg/sweep: classifying a thin solid's faces into A/B/Thickness/Bend,
// computing bend allowance, building ContourFlange/Flange/Hem/Cutout
// features, and unfolding the result into a flat pattern exportable to
// DXF or SVG.
package sheetmetal

import "errors"

// NotSheetMetal is returned when a solid has no pair of large, parallel,
// oppositely-facing planar faces separated by a plausible sheet thickness.
var NotSheetMetal = errors.New("sheetmetal: could not identify A/B face pair")

// AmbiguousPair is returned (as a warning, not a hard failure: callers get
// a result alongside this error) when more than one candidate A/B pair has
// near-equal triangle counts and areas; the pair with the most triangles
// (the larger area on an equal count) is used.
var AmbiguousPair = errors.New("sheetmetal: multiple near-equal A/B candidates")
