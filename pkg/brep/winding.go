package brep

// FixTriangleWindingsByAdjacency repairs triangle winding so that, within
// each connected component of the solid's full triangle-adjacency graph
// (triangles from every face, connectivity by shared edge, regardless of
// face identity), every pair of triangles sharing an edge traverses that
// edge in opposite directions, the standard condition for outward-
// consistent orientation on a manifold patch. A seed triangle in each
// component keeps its orientation; the rest are flipped or left alone by
// propagation from the seed.
func (s *Solid) FixTriangleWindingsByAdjacency() {
	if s.dirty {
		s.Visualize()
	}

	type triRef struct {
		face string
		idx  int
	}
	var tris []Triangle
	var refs []triRef
	for _, name := range s.faceOrder {
		f := s.faces[name]
		for i := range f.indices {
			tris = append(tris, f.indices[i])
			refs = append(refs, triRef{name, i})
		}
	}
	n := len(tris)
	if n == 0 {
		return
	}

	edgeToTris := make(map[edgeKey][]int, n*3)
	for i, t := range tris {
		edgeToTris[makeEdgeKey(t.A, t.B)] = append(edgeToTris[makeEdgeKey(t.A, t.B)], i)
		edgeToTris[makeEdgeKey(t.B, t.C)] = append(edgeToTris[makeEdgeKey(t.B, t.C)], i)
		edgeToTris[makeEdgeKey(t.C, t.A)] = append(edgeToTris[makeEdgeKey(t.C, t.A)], i)
	}

	neighborsOf := func(i int) []int {
		t := tris[i]
		seen := make(map[int]bool)
		var out []int
		for _, k := range []edgeKey{makeEdgeKey(t.A, t.B), makeEdgeKey(t.B, t.C), makeEdgeKey(t.C, t.A)} {
			for _, j := range edgeToTris[k] {
				if j != i && !seen[j] {
					seen[j] = true
					out = append(out, j)
				}
			}
		}
		return out
	}

	directedEdges := func(t Triangle) [3][2]int {
		return [3][2]int{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
	}

	// sharesOpposite reports whether a and b traverse their common vertex
	// pair in opposite directions (the consistent case).
	sharesOpposite := func(a, b Triangle) (shared bool, opposite bool) {
		for _, ea := range directedEdges(a) {
			for _, eb := range directedEdges(b) {
				if makeEdgeKey(ea[0], ea[1]) != makeEdgeKey(eb[0], eb[1]) {
					continue
				}
				shared = true
				if ea[0] == eb[1] && ea[1] == eb[0] {
					opposite = true
				}
				return
			}
		}
		return
	}

	flip := func(i int) {
		t := tris[i]
		tris[i] = Triangle{t.A, t.C, t.B}
	}

	visited := make([]bool, n)
	for seed := 0; seed < n; seed++ {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range neighborsOf(cur) {
				if visited[nb] {
					continue
				}
				if shared, opposite := sharesOpposite(tris[cur], tris[nb]); shared && !opposite {
					flip(nb)
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}

	for i, t := range tris {
		r := refs[i]
		s.faces[r.face].indices[r.idx] = t
	}
}
