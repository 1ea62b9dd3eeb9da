package brep

import (
	"sort"

	"github.com/lignin-cad/core/pkg/geom"
)

// BoundaryEdge is the ordered boundary polyline shared by two adjacent
// faces, in the order produced by stitching.
type BoundaryEdge struct {
	FaceA, FaceB string
	Positions    []geom.Vec3
}

type edgeKey [2]int

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// GetBoundaryEdgePolylines returns, for every pair of adjacent faces, the
// ordered polyline(s) of vertices shared at their common boundary. A
// triangle edge is a boundary edge iff the two triangles on either side of
// it belong to different named faces; an edge touching only one face is
// interior and is not reported.
func (s *Solid) GetBoundaryEdgePolylines() ([]BoundaryEdge, error) {
	if s.dirty {
		s.Visualize()
	}

	// edgeFaces[edgeKey] = set of distinct face names whose triangles use
	// this vertex-pair edge.
	edgeFaces := make(map[edgeKey]map[string]bool)
	addEdge := func(a, b int, faceName string) {
		k := makeEdgeKey(a, b)
		set, ok := edgeFaces[k]
		if !ok {
			set = make(map[string]bool)
			edgeFaces[k] = set
		}
		set[faceName] = true
	}

	for _, name := range s.faceOrder {
		f := s.faces[name]
		for _, tri := range f.indices {
			addEdge(tri.A, tri.B, name)
			addEdge(tri.B, tri.C, name)
			addEdge(tri.C, tri.A, name)
		}
	}

	// Group boundary segments (edges touching exactly two distinct faces)
	// by the unordered face-name pair.
	type pairKey struct{ a, b string }
	segments := make(map[pairKey][][2]int)
	for ek, faceSet := range edgeFaces {
		if len(faceSet) < 2 {
			continue
		}
		names := make([]string, 0, len(faceSet))
		for n := range faceSet {
			names = append(names, n)
		}
		sort.Strings(names)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				pk := pairKey{names[i], names[j]}
				segments[pk] = append(segments[pk], [2]int{ek[0], ek[1]})
			}
		}
	}

	var out []BoundaryEdge
	for pk, segs := range segments {
		chains, err := stitchSegments(segs)
		if err != nil {
			return nil, err
		}
		for _, chain := range chains {
			positions := make([]geom.Vec3, len(chain))
			for i, vi := range chain {
				positions[i] = s.vertices[vi]
			}
			out = append(out, BoundaryEdge{FaceA: pk.a, FaceB: pk.b, Positions: positions})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].FaceA != out[j].FaceA {
			return out[i].FaceA < out[j].FaceA
		}
		return out[i].FaceB < out[j].FaceB
	})

	return out, nil
}

// stitchSegments greedily joins unordered vertex-index segments into
// polylines by endpoint matching, longest chain first. Each segment is
// consumed exactly once; termination is guaranteed because every
// extension step consumes one previously-unused segment.
func stitchSegments(segments [][2]int) ([][]int, error) {
	n := len(segments)
	used := make([]bool, n)
	adjacency := make(map[int][]int)
	for i, seg := range segments {
		adjacency[seg[0]] = append(adjacency[seg[0]], i)
		adjacency[seg[1]] = append(adjacency[seg[1]], i)
	}

	var chains [][]int
	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []int{segments[i][0], segments[i][1]}

		maxPasses := n + 1
		for pass := 0; pass < maxPasses; pass++ {
			extended := false

			last := chain[len(chain)-1]
			if j, next, ok := findExtension(adjacency[last], segments, used, last); ok {
				chain = append(chain, next)
				used[j] = true
				extended = true
			}

			first := chain[0]
			if j, prev, ok := findExtension(adjacency[first], segments, used, first); ok {
				chain = append([]int{prev}, chain...)
				used[j] = true
				extended = true
			}

			if !extended {
				break
			}
			if pass == maxPasses-1 {
				return nil, InconsistentTopology
			}
		}
		chains = append(chains, chain)
	}

	sort.SliceStable(chains, func(i, j int) bool {
		return len(chains[i]) > len(chains[j])
	})
	return chains, nil
}

func findExtension(candidates []int, segments [][2]int, used []bool, at int) (segIdx, other int, ok bool) {
	for _, j := range candidates {
		if used[j] {
			continue
		}
		s := segments[j]
		switch at {
		case s[0]:
			return j, s[1], true
		case s[1]:
			return j, s[0], true
		}
	}
	return 0, 0, false
}
