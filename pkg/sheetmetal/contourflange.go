package sheetmetal

import (
	"errors"

	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/sweep"
)

// ContourFlange builds a sheet from a closed in-plane path: outer is
// rounded by bendRadius (FilletLoop) before being extruded thickness along
// plane.Normal (or its reverse, if towardNormal is false), then the result
// is classified into A/B/Thickness/Bend.
//
// The rounded corners come out as faceted Sidewall strips rather than true
// brep.Cylindrical surfaces (sweep.Sweep's per-edge sidewalls are always
// planar quads), an accepted simplification over building each corner as
// its own sweep.Revolve band the way Flange does for a single hinge edge.
func ContourFlange(name string, plane geom.Plane, outer geom.Polyline2, holes []geom.Polyline2, bendRadius, thickness float64, towardNormal bool, kFactor float64, filletSegments int) (*Sheet, error) {
	filleted := FilletLoop(outer, bendRadius, filletSegments)

	outer3 := toPolyline3(filleted, plane)
	holes3 := make([]geom.Polyline3, len(holes))
	for i, h := range holes {
		holes3[i] = toPolyline3(h, plane)
	}

	profile := sweep.Profile{Name: name, Outer: outer3, Holes: holes3, Plane: plane}

	dir := plane.Normal
	if !towardNormal {
		dir = dir.Scale(-1)
	}

	solid, err := sweep.Sweep(profile, dir.Scale(thickness), 0)
	if err != nil {
		return nil, err
	}
	solid.Name = name

	sheet, err := Classify(solid, kFactor)
	if errors.Is(err, AmbiguousPair) {
		// A thin contour strip's side walls can rival the A/B pair in
		// triangle count; Classify logged the tie and picked the larger
		// pair, which is correct for geometry built here.
		return sheet, nil
	}
	return sheet, err
}

func toPolyline3(loop geom.Polyline2, plane geom.Plane) geom.Polyline3 {
	out := make(geom.Polyline3, len(loop))
	for i, p := range loop {
		out[i] = plane.Unproject(p)
	}
	return out
}
