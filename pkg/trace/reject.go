package trace

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/lignin-cad/core/pkg/geom"
)

type indexedLoop struct {
	loop geom.Polyline2
	idx  int
}

func (l *indexedLoop) Bounds() *rtreego.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range l.loop {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	lengths := []float64{maxX - minX, maxY - minY}
	for i, v := range lengths {
		if v <= 0 {
			lengths[i] = 1e-9
		}
	}
	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, lengths)
	if err != nil {
		rect, _ = rtreego.NewRect(rtreego.Point{minX, minY}, []float64{1e-9, 1e-9})
	}
	return rect
}

// rejectIntersecting drops loops that cross any other surviving loop (not
// simply nested; an outer loop containing a hole does not cross it). When
// two loops cross, the smaller-area one is dropped, mirroring the
// larger-area tie-break used elsewhere (sheet-metal A/B pairing) for the
// same kind of "pick the one more likely to be the real shape" ambiguity.
func rejectIntersecting(loops []geom.Polyline2) []geom.Polyline2 {
	tree := rtreego.NewTree(2, 4, 16)
	for i, l := range loops {
		tree.Insert(&indexedLoop{loop: l, idx: i})
	}

	dropped := make([]bool, len(loops))
	for i, a := range loops {
		if dropped[i] {
			continue
		}
		rect := (&indexedLoop{loop: a}).Bounds()
		for _, hit := range tree.SearchIntersect(rect) {
			j := hit.(*indexedLoop).idx
			if j <= i || dropped[j] {
				continue
			}
			b := loops[j]
			if geom.LoopsIntersect(a, b) {
				if math.Abs(a.SignedArea()) >= math.Abs(b.SignedArea()) {
					dropped[j] = true
				} else {
					dropped[i] = true
				}
			}
		}
	}

	var out []geom.Polyline2
	for i, l := range loops {
		if !dropped[i] {
			out = append(out, l)
		}
	}
	return out
}
