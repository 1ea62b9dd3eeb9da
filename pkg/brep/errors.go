package brep

import "errors"

// InconsistentTopology is returned by GetBoundaryEdgePolylines when
// stitching boundary segments into polylines leaves a dangling half-edge
// on a connected component after exhausting the stitching passes.
var InconsistentTopology = errors.New("brep: inconsistent topology")
