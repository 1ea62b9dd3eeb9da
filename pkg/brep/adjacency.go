package brep

import (
	"github.com/katalvlaran/lvlath/core"
)

// FaceAdjacencyGraph builds an undirected, multi-edge graph whose vertices
// are face names and whose edges are boundary polylines shared between two
// faces (one graph edge per BoundaryEdge; a pair of faces meeting along
// more than one disjoint boundary chain (as on a non-convex cut) gets
// more than one edge between them, hence WithMultiEdges). Feature
// validation queries it to check that an edge selection's two faces are
// still adjacent after a re-run.
func (s *Solid) FaceAdjacencyGraph() (*core.Graph, error) {
	boundaries, err := s.GetBoundaryEdgePolylines()
	if err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithMultiEdges())
	for _, name := range s.GetFaceNames() {
		_ = g.AddVertex(name)
	}
	for _, b := range boundaries {
		if _, err := g.AddEdge(b.FaceA, b.FaceB, 0); err != nil {
			return nil, err
		}
	}
	return g, nil
}
