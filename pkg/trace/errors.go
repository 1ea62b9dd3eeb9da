// Package trace extracts planar loops from a raster image (binarize, walk
// pixel boundaries, simplify, sanitize, nest) so they can drive Sweep.
package trace

import "errors"

// EmptyTrace is returned when no loop survives the pipeline (binarization
// found nothing, every loop was a speckle, or every loop was rejected for
// self- or cross-intersection).
var EmptyTrace = errors.New("trace: no loops survived")
