package trace

// node is an integer pixel-corner coordinate in grid space (y grows
// downward, matching image coordinates).
type node struct{ X, Y int }

type directedEdge struct{ A, B node }

// extractBoundaryLoops walks the foreground/background boundary of fg and
// returns closed loops of corner nodes. Every foreground pixel contributes
// one directed edge per side that borders background (or the image edge);
// walking a pixel's own four corners in the order
// (x,y)->(x,y+1)->(x+1,y+1)->(x+1,y) (and back to (x,y)) is the orientation
// that, once mapped to world space by (gx,gy)->(gx*s,-gy*s), comes out
// counter-clockwise for an outer boundary and clockwise for a hole boundary
// without any special-casing; both fall out of the same rule. This is
// the standard "emit boundary edges from filled cells, then follow them"
// technique.
func extractBoundaryLoops(fg [][]bool) [][]node {
	h := len(fg)
	if h == 0 {
		return nil
	}
	w := len(fg[0])

	isFG := func(x, y int) bool {
		if y < 0 || y >= h || x < 0 || x >= w {
			return false
		}
		return fg[y][x]
	}

	var edges []directedEdge
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !isFG(x, y) {
				continue
			}
			if !isFG(x-1, y) {
				edges = append(edges, directedEdge{node{x, y}, node{x, y + 1}})
			}
			if !isFG(x, y+1) {
				edges = append(edges, directedEdge{node{x, y + 1}, node{x + 1, y + 1}})
			}
			if !isFG(x+1, y) {
				edges = append(edges, directedEdge{node{x + 1, y + 1}, node{x + 1, y}})
			}
			if !isFG(x, y-1) {
				edges = append(edges, directedEdge{node{x + 1, y}, node{x, y}})
			}
		}
	}

	next := make(map[node][]node, len(edges))
	for _, e := range edges {
		next[e.A] = append(next[e.A], e.B)
	}

	visited := make(map[directedEdge]bool, len(edges))
	var loops [][]node
	for _, start := range edges {
		if visited[start] {
			continue
		}
		var loop []node
		cur := start.A
		first := start.A
		for {
			loop = append(loop, cur)
			outs := next[cur]
			var chosen node
			found := false
			for _, nx := range outs {
				k := directedEdge{cur, nx}
				if !visited[k] {
					chosen = nx
					visited[k] = true
					found = true
					break
				}
			}
			if !found {
				break
			}
			cur = chosen
			if cur == first {
				break
			}
		}
		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// nodeLoopArea is the shoelace area of a loop in raw grid units, used for
// the speckle threshold before any world scaling is applied.
func nodeLoopArea(loop []node) float64 {
	n := len(loop)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a := loop[i]
		b := loop[(i+1)%n]
		sum += float64(a.X*b.Y - b.X*a.Y)
	}
	return sum / 2
}
