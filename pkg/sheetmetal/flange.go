package sheetmetal

import (
	"errors"
	"math"

	"github.com/lignin-cad/core/pkg/boolean"
	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/sweep"
)

// rotateAboutAxis mirrors the unexported helper of the same name in
// pkg/sweep/revolve.go; kept as a tiny local duplicate rather than
// exporting a one-line rotation helper across a package boundary.
func rotateAboutAxis(p, axisPoint, axisDir geom.Vec3, theta float64) geom.Vec3 {
	m := geom.Translate4(axisPoint.X, axisPoint.Y, axisPoint.Z).
		Mul(geom.RotateAxis4(axisDir, theta)).
		Mul(geom.Translate4(-axisPoint.X, -axisPoint.Y, -axisPoint.Z))
	return m.Apply(p)
}

// InsetRule selects how a Flange's bend band is positioned relative to the
// hosting sheet edge.
type InsetRule int

const (
	MaterialInside InsetRule = iota
	MaterialOutside
	BendOutside
)

const defaultBendSegments = 12

// insetDistance returns how far the new leg's bend band starts from the
// hosting edge, along the sheet's own plane, before curving away.
func insetDistance(rule InsetRule, bendRadius, thickness float64) float64 {
	switch rule {
	case MaterialOutside:
		return 0
	case BendOutside:
		return bendRadius
	default: // MaterialInside
		return bendRadius + thickness
	}
}

// Flange builds a new sheet leg hinged along the world-space edge
// (edgeA, edgeB), which must lie in the hosting sheet's plane (hostNormal
// is that sheet's outward face normal, used as the bend's radial
// direction). legLength is measured along the new leg beyond the bend
// band. angleRadians is the fold angle (pi for a Hem).
//
// The bend band itself is built with sweep.Revolve around the hinge edge
// so its inner/outer surfaces come out as genuine brep.Cylindrical faces
// (see revolvedEdgeMetadata in pkg/sweep/revolve.go); the straight run-out
// leg is a plain sweep.Sweep continuing tangent to the bend's end. The
// pieces are unioned with the parent sheet via pkg/boolean so the result
// is a single solid ready for re-classification.
func Flange(parent *brep.Solid, edgeA, edgeB geom.Vec3, hostNormal geom.Vec3, legLength, bendRadius, thickness, angleRadians float64, inset InsetRule, kFactor float64) (*Sheet, error) {
	axisDir := edgeB.Sub(edgeA).Normalize()
	radialDir := hostNormal.Sub(axisDir.Scale(hostNormal.Dot(axisDir))).Normalize()
	edgeLen := edgeB.Sub(edgeA).Length()

	plane := geom.Plane{
		Origin: edgeA,
		U:      axisDir,
		V:      radialDir,
		Normal: axisDir.Cross(radialDir).Normalize(),
	}

	inner := insetDistance(inset, bendRadius, thickness)
	outer := inner + thickness

	rectOuter := geom.Polyline3{
		plane.Unproject(geom.Vec2{X: 0, Y: inner}),
		plane.Unproject(geom.Vec2{X: edgeLen, Y: inner}),
		plane.Unproject(geom.Vec2{X: edgeLen, Y: outer}),
		plane.Unproject(geom.Vec2{X: 0, Y: outer}),
	}
	bendProfile := sweep.Profile{Name: parent.Name + "_BEND", Outer: rectOuter, Plane: plane}

	bendSolid, err := sweep.Revolve(bendProfile, edgeA, axisDir, angleRadians, defaultBendSegments)
	if err != nil {
		return nil, err
	}

	// The straight run-out leg continues tangent to the bend's END cap: the
	// END cap sits at angle=angleRadians, so its own outward normal is the
	// direction the leg extrudes along.
	endNormal := rotateAboutAxis(plane.Normal, edgeA, axisDir, angleRadians)
	legOrigin := rotateAboutAxis(plane.Unproject(geom.Vec2{X: 0, Y: inner}), edgeA, axisDir, angleRadians)
	legPlane := geom.Plane{
		Origin: legOrigin,
		U:      axisDir,
		V:      endNormal.Cross(axisDir).Normalize(),
		Normal: endNormal,
	}
	legOuter := geom.Polyline3{
		legPlane.Unproject(geom.Vec2{X: 0, Y: 0}),
		legPlane.Unproject(geom.Vec2{X: edgeLen, Y: 0}),
		legPlane.Unproject(geom.Vec2{X: edgeLen, Y: thickness}),
		legPlane.Unproject(geom.Vec2{X: 0, Y: thickness}),
	}
	legProfile := sweep.Profile{Name: parent.Name + "_LEG", Outer: legOuter, Plane: legPlane}
	legSolid, err := sweep.Sweep(legProfile, legPlane.Normal.Scale(legLength), 0)
	if err != nil {
		return nil, err
	}

	merged, err := boolean.Union(parent, bendSolid)
	if err != nil {
		return nil, err
	}
	merged, err = boolean.Union(merged, legSolid)
	if err != nil {
		return nil, err
	}
	merged.Name = parent.Name

	sheet, err := Classify(merged, kFactor)
	if errors.Is(err, AmbiguousPair) {
		// Right after a fold the new leg's face pair can rival the base
		// pair; Classify already logged the tie and picked the larger
		// pair, which is the right answer for geometry this function
		// itself just built.
		return sheet, nil
	}
	return sheet, err
}

// Hem is a Flange with the angle locked to a half turn and a small bend
// radius, folding the new leg flat against the parent sheet.
func Hem(parent *brep.Solid, edgeA, edgeB geom.Vec3, hostNormal geom.Vec3, thickness float64, kFactor float64) (*Sheet, error) {
	const hemBendRadius = 1e-4
	return Flange(parent, edgeA, edgeB, hostNormal, thickness, hemBendRadius, thickness, math.Pi, MaterialOutside, kFactor)
}
