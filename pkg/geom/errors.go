package geom

import "errors"

// Epsilon is the default tolerance used by comparisons in this package when
// no caller-supplied tolerance is available. Kernel-facing code should
// prefer an explicit epsilon (see brep.Solid.SetEpsilon) sourced from
// kernel.Config.
const Epsilon = 1e-9

// GeometryDegenerate is returned when an operation is handed input that
// collapses to zero area, zero length, or otherwise carries no well-defined
// geometric meaning (a closed loop with fewer than 3 distinct points, a
// zero-length edge, three collinear points where a plane normal is
// required).
var GeometryDegenerate = errors.New("geom: degenerate geometry")
