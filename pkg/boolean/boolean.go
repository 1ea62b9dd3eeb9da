// Package boolean implements triangle-soup CSG (union/intersect/subtract)
// over brep.Solid values, preserving face identity across the cut: every
// output triangle can be traced back to the input face that contributed
// it. The classify-split-recombine shape here follows the textbook
// polyhedral-CSG approach: classify each input triangle against the other
// solid, split the stragglers along the intersection, keep the correctly
// sided halves, and weld the result.
package boolean

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// maxSplitDepth bounds how many candidate opposing-triangle planes a single
// triangle will be clipped against before giving up further subdivision.
// Chosen generously above what any convex cutting tool needs; a badly
// tessellated, highly concave cutter can still exhaust it, in which case
// the triangle is kept unsplit and classified by centroid alone.
const maxSplitDepth = 24

// onSurfaceFactor scales epsilon to decide when a fragment's centroid sits
// on the other solid's surface rather than cleanly inside or outside, where
// ray-cast parity becomes unreliable.
const onSurfaceFactor = 8

// Union returns a new solid containing the parts of a and b not enclosed
// by the other.
func Union(a, b *brep.Solid) (*brep.Solid, error) {
	return combine(a, b, false, false, false, "Union")
}

// Intersect returns a new solid containing only the parts of a and b that
// both enclose.
func Intersect(a, b *brep.Solid) (*brep.Solid, error) {
	return combine(a, b, true, true, false, "Intersect")
}

// Subtract returns a new solid containing the parts of a not enclosed by
// b, with b's contributed surface reversed to form the new interior wall
// where it cut into a.
func Subtract(a, b *brep.Solid) (*brep.Solid, error) {
	return combine(a, b, false, true, true, "Subtract")
}

func combine(a, b *brep.Solid, keepAInside, keepBInside, reverseB bool, opName string) (*brep.Solid, error) {
	eps := math.Max(a.Epsilon(), b.Epsilon())

	aTris := extractTriangles(a)
	bTris := extractTriangles(b)
	if len(aTris) == 0 || len(bTris) == 0 {
		return nil, BooleanFailed
	}

	bTree := buildIndex(bTris, eps)
	aTree := buildIndex(aTris, eps)

	aKept := classifyAndSplit(aTris, bTris, bTree, eps, keepAInside)
	bKept := classifyAndSplit(bTris, aTris, aTree, eps, keepBInside)
	if reverseB {
		for i := range bKept {
			bKept[i] = reverseTriangle(bKept[i])
		}
	}

	merged := dedupeCoincident(append(aKept, bKept...), eps)
	if len(merged) == 0 {
		return nil, BooleanFailed
	}

	out := brep.NewSolid(a.Name + "_" + opName + "_" + b.Name)
	out.SetEpsilon(eps)
	metadataByFace := make(map[string]brep.Metadata)
	for _, t := range merged {
		out.AddTriangle(t.FaceName, t.P1, t.P2, t.P3)
		if md, ok := t.Metadata.(brep.Metadata); ok {
			if _, seen := metadataByFace[t.FaceName]; !seen {
				metadataByFace[t.FaceName] = md
			}
		}
	}
	out.Visualize()
	for name, md := range metadataByFace {
		out.SetFaceMetadata(name, md)
	}
	out.FixTriangleWindingsByAdjacency()

	return out, nil
}

func extractTriangles(s *brep.Solid) []triangle3 {
	var out []triangle3
	for _, name := range s.GetFaceNames() {
		md, _ := s.GetFaceMetadata(name)
		tris, _ := s.GetFace(name)
		for _, tri := range tris {
			p1, p2, p3 := s.Positions(tri)
			out = append(out, triangle3{P1: p1, P2: p2, P3: p3, FaceName: name, Metadata: md})
		}
	}
	return out
}

// classifyAndSplit clips every triangle in tris against whatever candidate
// opposing triangles the index over otherTris returns, then keeps each
// resulting fragment whose inside/outside classification against otherTris
// matches keepInside. Fragments whose centroid sits right on otherTris's
// surface are always kept; combine's final dedupe pass collapses the
// resulting exact duplicates (e.g. A union A) back down to one copy.
func classifyAndSplit(tris, otherTris []triangle3, otherTree *rtreego.Rtree, eps float64, keepInside bool) []triangle3 {
	var kept []triangle3
	for _, t := range tris {
		idx := candidates(otherTree, t, eps)
		if len(idx) == 0 {
			inside, _ := insideMesh(t.centroid(), otherTris)
			if inside == keepInside {
				kept = append(kept, t)
			}
			continue
		}

		cand := make([]triangle3, len(idx))
		for i, ci := range idx {
			cand[i] = otherTris[ci]
		}

		for _, frag := range splitAgainstCandidates(t, cand, eps, maxSplitDepth) {
			inside, nearest := insideMesh(frag.centroid(), otherTris)
			if nearest <= eps*onSurfaceFactor {
				kept = append(kept, frag)
				continue
			}
			if inside == keepInside {
				kept = append(kept, frag)
			}
		}
	}
	return kept
}

func reverseTriangle(t triangle3) triangle3 {
	t.P2, t.P3 = t.P3, t.P2
	return t
}

// dedupeCoincident collapses fragments that share the same three vertex
// positions (in any rotation). When more than one source solid contributed
// a triangle at the same seam location, the survivor is picked by the
// closer-surviving-surface rule: each tied fragment's centroid is
// projected onto every other tied fragment's plane via
// signedDistanceToPlane, and the fragment with the smaller minimum absolute
// distance (the one whose source surface sits more precisely at the seam)
// wins the face name. A single-entry group (the common case: a seam only
// one solid actually touches) keeps its one entry with no comparison
// needed; a group whose entries all share one face name (A union A
// collapsing back to A) keeps its first entry.
func dedupeCoincident(tris []triangle3, eps float64) []triangle3 {
	type keyed struct {
		t   triangle3
		key [3][3]int64
	}
	quantize := func(v geom.Vec3) [3]int64 {
		scale := 1.0
		if eps > 0 {
			scale = 1.0 / eps
		}
		return [3]int64{
			int64(math.Round(v.X * scale)),
			int64(math.Round(v.Y * scale)),
			int64(math.Round(v.Z * scale)),
		}
	}

	entries := make([]keyed, len(tris))
	for i, t := range tris {
		pts := [3][3]int64{quantize(t.P1), quantize(t.P2), quantize(t.P3)}
		sort.Slice(pts[:], func(a, b int) bool {
			for d := 0; d < 3; d++ {
				if pts[a][d] != pts[b][d] {
					return pts[a][d] < pts[b][d]
				}
			}
			return false
		})
		entries[i] = keyed{t: t, key: pts}
	}

	groups := make(map[[3][3]int64][]triangle3)
	var order [][3][3]int64
	for _, e := range entries {
		if _, seen := groups[e.key]; !seen {
			order = append(order, e.key)
		}
		groups[e.key] = append(groups[e.key], e.t)
	}

	out := make([]triangle3, 0, len(order))
	for _, key := range order {
		out = append(out, closestSurfaceWins(groups[key]))
	}
	return out
}

// closestSurfaceWins picks the survivor among a group of coincident
// fragments: the fragment whose centroid has the smallest
// absolute signed distance to any other fragment's plane in the group.
func closestSurfaceWins(group []triangle3) triangle3 {
	if len(group) == 1 {
		return group[0]
	}

	best := group[0]
	bestDist := math.Inf(1)
	for i, cand := range group {
		d := math.Inf(1)
		for j, other := range group {
			if i == j || other.FaceName == cand.FaceName {
				continue
			}
			if dist := math.Abs(signedDistanceToPlane(cand.centroid(), other)); dist < d {
				d = dist
			}
		}
		if math.IsInf(d, 1) {
			// Every entry shares this one's face name (e.g. A union A):
			// no cross-surface comparison is meaningful, first wins.
			d = 0
		}
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}
