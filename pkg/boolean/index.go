package boolean

import (
	"github.com/dhconnelly/rtreego"
)

// indexedTriangle adapts a triangle3 to rtreego.Spatial so the broad phase
// can query candidate opposing triangles by AABB overlap instead of
// testing every triangle pair.
type indexedTriangle struct {
	tri triangle3
	idx int
}

func (it *indexedTriangle) Bounds() *rtreego.Rect {
	min := it.tri.min()
	max := it.tri.max()
	lengths := []float64{
		max.X - min.X,
		max.Y - min.Y,
		max.Z - min.Z,
	}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = 1e-9
		}
	}
	rect, err := rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, lengths)
	if err != nil {
		// Degenerate (zero-volume) triangle bounds; fall back to a tiny
		// cube around the min corner so the tree still accepts the entry.
		rect, _ = rtreego.NewRect(rtreego.Point{min.X, min.Y, min.Z}, []float64{1e-9, 1e-9, 1e-9})
	}
	return rect
}

// buildIndex inserts every triangle into a 3D r-tree at its exact AABB.
// eps is not used here: the padding that lets near-touching (not just
// overlapping) triangles be found is applied at query time by candidates.
func buildIndex(tris []triangle3, eps float64) *rtreego.Rtree {
	tree := rtreego.NewTree(3, 4, 16)
	for i, t := range tris {
		tree.Insert(&indexedTriangle{tri: t, idx: i})
	}
	return tree
}

// candidates returns the indices of triangles in the index whose AABB
// (expanded by eps) overlaps t's AABB.
func candidates(tree *rtreego.Rtree, t triangle3, eps float64) []int {
	min := t.min()
	max := t.max()
	lengths := []float64{
		max.X - min.X + 2*eps,
		max.Y - min.Y + 2*eps,
		max.Z - min.Z + 2*eps,
	}
	for i, l := range lengths {
		if l <= 0 {
			lengths[i] = 2 * eps
			if lengths[i] <= 0 {
				lengths[i] = 1e-6
			}
		}
	}
	origin := rtreego.Point{min.X - eps, min.Y - eps, min.Z - eps}
	rect, err := rtreego.NewRect(origin, lengths)
	if err != nil {
		return nil
	}
	hits := tree.SearchIntersect(rect)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*indexedTriangle).idx)
	}
	return out
}
