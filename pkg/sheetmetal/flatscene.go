package sheetmetal

import (
	"fmt"
	"math"

	"github.com/lignin-cad/core/pkg/geom"
)

// SegmentKind classifies one edge of a flat pattern for export layering.
type SegmentKind int

const (
	// Cut marks an outline edge appearing in exactly one face's outline
	// (no matching reverse edge from a neighbor), i.e. a free boundary.
	Cut SegmentKind = iota
	BendUp
	BendDown
)

// FlatSegment is one line of the flattened drawing.
type FlatSegment struct {
	Kind SegmentKind
	A, B geom.Vec2
}

// BendLabel is placed at a bend centerline's midpoint, rotated tangent to
// the bend, carrying the fold direction and angle for the shop floor.
type BendLabel struct {
	Kind     SegmentKind
	Position geom.Vec2
	Angle    float64 // text rotation, radians, measured from +X
	Text     string
}

// FlatScene is the fully-resolved 2D drawing derived from a FlatPattern,
// ready to hand to a DXF or SVG writer.
type FlatScene struct {
	Segments []FlatSegment
	Labels   []BendLabel
}

type edgeKey struct {
	ax, ay, bx, by int64
}

const gridScale = 1e6

func keyFor(a, b geom.Vec2) edgeKey {
	ka := [2]int64{int64(math.Round(a.X * gridScale)), int64(math.Round(a.Y * gridScale))}
	kb := [2]int64{int64(math.Round(b.X * gridScale)), int64(math.Round(b.Y * gridScale))}
	if ka[0] > kb[0] || (ka[0] == kb[0] && ka[1] > kb[1]) {
		ka, kb = kb, ka
	}
	return edgeKey{ka[0], ka[1], kb[0], kb[1]}
}

// BuildFlatScene folds a FlatPattern's per-face outlines into a single
// drawing: an outline edge shared by two neighboring faces (the split
// seam left behind where a bend face used to join them) is dropped, any
// edge appearing only once is kept as a Cut; every bend additionally
// contributes a centerline segment and label, colored by fold direction.
func BuildFlatScene(pattern *FlatPattern) *FlatScene {
	counts := make(map[edgeKey]int)
	segByKey := make(map[edgeKey]FlatSegment)

	for _, f := range pattern.Faces {
		n := len(f.Outline)
		for i := 0; i < n; i++ {
			a := f.Outline[i]
			b := f.Outline[(i+1)%n]
			k := keyFor(a, b)
			counts[k]++
			if _, ok := segByKey[k]; !ok {
				segByKey[k] = FlatSegment{Kind: Cut, A: a, B: b}
			}
		}
	}

	scene := &FlatScene{}
	for k, seg := range segByKey {
		if counts[k] == 1 {
			scene.Segments = append(scene.Segments, seg)
		}
	}

	for _, b := range pattern.Bends {
		kind := BendUp
		if b.AngleSign < 0 {
			kind = BendDown
		}
		mid := geom.Vec2{
			X: (b.Centerline[0].X + b.Centerline[1].X) / 2,
			Y: (b.Centerline[0].Y + b.Centerline[1].Y) / 2,
		}
		dir := b.Centerline[1].Sub(b.Centerline[0])
		angle := 0.0
		if dir.Length() > geom.Epsilon {
			angle = math.Atan2(dir.Y, dir.X)
		}
		scene.Segments = append(scene.Segments, FlatSegment{Kind: kind, A: b.Centerline[0], B: b.Centerline[1]})
		scene.Labels = append(scene.Labels, BendLabel{
			Kind:     kind,
			Position: mid,
			Angle:    angle,
			Text:     bendLabelText(kind, b.AngleSign),
		})
	}

	return scene
}

func bendLabelText(kind SegmentKind, angleSign float64) string {
	deg := math.Abs(angleSign) * 180 / math.Pi
	dir := "DOWN"
	if kind == BendUp {
		dir = "UP"
	}
	return fmt.Sprintf("%s %.0f", dir, deg)
}
