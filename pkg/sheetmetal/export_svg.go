package sheetmetal

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// ExportSVG writes a flat pattern as an SVG, flipping Y so the drawing
// reads the same way up as the DXF/shop-floor convention (geometry Y grows
// up, SVG Y grows down).
func ExportSVG(scene *FlatScene, w io.Writer, width, height int) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Gtransform(fmt.Sprintf("translate(0,%d) scale(1,-1)", height))

	for _, seg := range scene.Segments {
		style := svgStyleFor(seg.Kind)
		canvas.Line(int(seg.A.X), int(seg.A.Y), int(seg.B.X), int(seg.B.Y), style)
	}
	for _, lbl := range scene.Labels {
		style := "font-size:8px;fill:#0000ff"
		if lbl.Kind == BendDown {
			style = "font-size:8px;fill:#ff00ff"
		}
		// The y-flip group would mirror the glyphs, so each label gets its
		// own transform: into place, tangent to the bend, un-mirrored.
		canvas.TranslateRotate(int(lbl.Position.X), int(lbl.Position.Y), lbl.Angle*180/math.Pi)
		canvas.ScaleXY(1, -1)
		canvas.Text(0, 0, lbl.Text, style)
		canvas.Gend()
		canvas.Gend()
	}

	canvas.Gend()
	canvas.End()
}

func svgStyleFor(kind SegmentKind) string {
	switch kind {
	case BendUp:
		return "stroke:#0000ff;stroke-width:1;stroke-dasharray:4,2"
	case BendDown:
		return "stroke:#ff00ff;stroke-width:1;stroke-dasharray:4,2"
	default:
		return "stroke:#000000;stroke-width:1"
	}
}
