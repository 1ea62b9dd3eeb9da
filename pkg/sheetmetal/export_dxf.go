package sheetmetal

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
)

// ExportDXF writes a flat pattern to a DXF file in millimeters, with
// geometry split across layers the way a shop floor expects: CUT is a
// continuous outline, BEND_UP/BEND_DOWN are dashed (HIDDEN linetype)
// centerlines colored by
// fold direction, and the matching label layers carry the bend call-outs.
func ExportDXF(scene *FlatScene, path string) error {
	d := dxf.NewDrawing()
	d.AddLayer("CUT", color.White, table.LT_CONTINUOUS, true)
	d.AddLayer("BEND_UP", color.Blue, table.LT_HIDDEN, true)
	d.AddLayer("BEND_DOWN", color.Magenta, table.LT_HIDDEN, true)
	d.AddLayer("BEND_LABEL_UP", color.Blue, table.LT_CONTINUOUS, true)
	d.AddLayer("BEND_LABEL_DOWN", color.Magenta, table.LT_CONTINUOUS, true)

	for _, seg := range scene.Segments {
		layer := layerForSegment(seg.Kind)
		d.ChangeLayer(layer)
		d.Line(seg.A.X, seg.A.Y, 0, seg.B.X, seg.B.Y, 0)
	}

	for _, lbl := range scene.Labels {
		layer := "BEND_LABEL_UP"
		if lbl.Kind == BendDown {
			layer = "BEND_LABEL_DOWN"
		}
		d.ChangeLayer(layer)
		d.Text(lbl.Text, lbl.Position.X, lbl.Position.Y, 0, defaultLabelHeight)
	}

	return d.SaveAs(path)
}

const defaultLabelHeight = 2.5

func layerForSegment(kind SegmentKind) string {
	switch kind {
	case BendUp:
		return "BEND_UP"
	case BendDown:
		return "BEND_DOWN"
	default:
		return "CUT"
	}
}
