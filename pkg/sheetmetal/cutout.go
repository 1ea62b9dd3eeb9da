package sheetmetal

import (
	"sort"

	"github.com/lignin-cad/core/pkg/boolean"
	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/sweep"
)

// prismMargin extends a cutout prism beyond the sheet on both sides so the
// subtraction always cuts all the way through regardless of small
// numerical offsets in the sheet's own thickness estimate.
const prismMargin = 1.5

// Cutout removes tool from sheet.Solid. When tool enters the sheet
// obliquely, a plain subtraction would leave slanted cut walls; Cutout
// instead intersects tool with the sheet to find the footprint, projects
// that footprint's vertices onto face A, takes their convex hull as a
// straight-walled prism, and subtracts that prism, giving cut walls
// perpendicular to A/B regardless of the tool's own angle. If the
// intersection itself fails (BooleanFailed), this falls back to a direct
// subtraction, matching the general "feature may fall back to direct
// subtraction when intersection fails" policy.
func Cutout(sheet *Sheet, tool *brep.Solid) (*brep.Solid, error) {
	aPlane, ok := facePlane(sheet.Solid, sheet.FaceA)
	if !ok {
		return directSubtract(sheet.Solid, tool)
	}

	footprint, err := boolean.Intersect(sheet.Solid, tool)
	if err != nil {
		return directSubtract(sheet.Solid, tool)
	}

	pts2D := projectVertices(footprint, aPlane)
	hull := convexHull2D(pts2D)
	if len(hull) < 3 {
		return directSubtract(sheet.Solid, tool)
	}

	prismOuter := toPolyline3(hull, aPlane)
	prismProfile := sweep.Profile{Name: sheet.Solid.Name + "_CUTPRISM", Outer: prismOuter, Plane: aPlane}
	margin := sheet.Thickness * prismMargin
	if margin <= 0 {
		margin = prismMargin
	}
	prism, err := sweep.Sweep(prismProfile, aPlane.Normal.Scale(margin), margin)
	if err != nil {
		return directSubtract(sheet.Solid, tool)
	}

	result, err := boolean.Subtract(sheet.Solid, prism)
	if err != nil {
		return directSubtract(sheet.Solid, tool)
	}
	result.Name = sheet.Solid.Name
	return result, nil
}

func directSubtract(s, tool *brep.Solid) (*brep.Solid, error) {
	result, err := boolean.Subtract(s, tool)
	if err != nil {
		return nil, err
	}
	result.Name = s.Name
	return result, nil
}

func facePlane(s *brep.Solid, name string) (geom.Plane, bool) {
	md, ok := s.GetFaceMetadata(name)
	if !ok {
		return geom.Plane{}, false
	}
	var normal, origin geom.Vec3
	switch m := md.(type) {
	case brep.Planar:
		normal, origin = m.Normal, m.Origin
	case brep.Sheet:
		normal, origin = m.Normal, m.Origin
	default:
		return geom.Plane{}, false
	}
	plane, err := geom.PlaneFromNormal(origin, normal)
	if err != nil {
		return geom.Plane{}, false
	}
	return plane, true
}

func projectVertices(s *brep.Solid, plane geom.Plane) []geom.Vec2 {
	verts := s.Vertices()
	out := make([]geom.Vec2, len(verts))
	for i, v := range verts {
		out[i] = plane.Project(v)
	}
	return out
}

// convexHull2D computes the convex hull of a point set via Andrew's
// monotone chain, returning it as a CCW closed loop: sort by x then y,
// build lower and upper chains with a left-turn test, concatenate
// dropping duplicate endpoints.
func convexHull2D(points []geom.Vec2) geom.Polyline2 {
	pts := append([]geom.Vec2{}, points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	dedup := pts[:0]
	for i, p := range pts {
		if i == 0 || p.DistanceTo(dedup[len(dedup)-1]) > geom.Epsilon {
			dedup = append(dedup, p)
		}
	}
	pts = dedup
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b geom.Vec2) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower []geom.Vec2
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	var upper []geom.Vec2
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}
