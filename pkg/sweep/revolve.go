package sweep

import (
	"math"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// fullTurnEpsilon is how close angle must be to 2π before Revolve treats
// the result as a closed ring and omits start/end caps.
const fullTurnEpsilon = 1e-6

// axisParallelCosine is the minimum |cos| between an edge direction and the
// revolve axis for that edge to be classified Cylindrical rather than
// Sidewall (about 5 degrees of tolerance).
const axisParallelCosine = 0.9962

func rotateAboutAxis(p, axisPoint, axisDir geom.Vec3, theta float64) geom.Vec3 {
	m := geom.Translate4(axisPoint.X, axisPoint.Y, axisPoint.Z).
		Mul(geom.RotateAxis4(axisDir, theta)).
		Mul(geom.Translate4(-axisPoint.X, -axisPoint.Y, -axisPoint.Z))
	return m.Apply(p)
}

// Revolve sweeps profile by angle radians about the line through axisPoint
// in direction axisDir, sampling segments+1 equally spaced positions.
func Revolve(profile Profile, axisPoint, axisDir geom.Vec3, angle float64, segments int) (*brep.Solid, error) {
	eps := geom.Epsilon
	if profile.uniquePointCount(eps) < 3 {
		return nil, DegenerateRing
	}
	if segments < 1 {
		segments = 1
	}
	axisUnit := axisDir.Normalize()

	solid := brep.NewSolid(profile.Name)

	closed := math.Abs(angle-2*math.Pi) < fullTurnEpsilon
	if !closed {
		identity := func(v geom.Vec3) geom.Vec3 { return v }
		atAngle := func(v geom.Vec3) geom.Vec3 { return rotateAboutAxis(v, axisPoint, axisUnit, angle) }
		if err := addCap(solid, profile.Name+"_START", profile, identity, true); err != nil {
			return nil, err
		}
		if err := addCap(solid, profile.Name+"_END", profile, atAngle, false); err != nil {
			return nil, err
		}
	}

	for _, e := range profileEdges(profile, profile.Name, eps) {
		for k := 0; k < segments; k++ {
			theta0 := angle * float64(k) / float64(segments)
			theta1 := angle * float64(k+1) / float64(segments)
			a0 := rotateAboutAxis(e.A, axisPoint, axisUnit, theta0)
			b0 := rotateAboutAxis(e.B, axisPoint, axisUnit, theta0)
			a1 := rotateAboutAxis(e.A, axisPoint, axisUnit, theta1)
			b1 := rotateAboutAxis(e.B, axisPoint, axisUnit, theta1)
			solid.AddTriangle(e.Name, a0, b0, b1)
			solid.AddTriangle(e.Name, a0, b1, a1)
		}
		solid.SetFaceMetadata(e.Name, revolvedEdgeMetadata(e, axisPoint, axisUnit))
	}

	solid.Visualize()
	solid.FixTriangleWindingsByAdjacency()
	return solid, nil
}

func revolvedEdgeMetadata(e namedEdge, axisPoint, axisUnit geom.Vec3) brep.Metadata {
	edgeDir := e.B.Sub(e.A)
	length := edgeDir.Length()
	if length < geom.Epsilon {
		return brep.Sidewall{}
	}
	edgeDir = edgeDir.Scale(1 / length)
	cos := math.Abs(edgeDir.Dot(axisUnit))
	if cos < axisParallelCosine {
		return brep.Sidewall{}
	}

	mid := e.A.Lerp(e.B, 0.5)
	t := mid.Sub(axisPoint).Dot(axisUnit)
	center := axisPoint.Add(axisUnit.Scale(t))
	radius := mid.DistanceTo(center)
	height := math.Abs(e.B.Sub(e.A).Dot(axisUnit))

	return brep.Cylindrical{Axis: axisUnit, Center: center, Radius: radius, Height: height}
}
