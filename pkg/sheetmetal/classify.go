package sheetmetal

import (
	"log"
	"math"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
)

// parallelCosine is how close two face normals must be to opposite (dot
// product near -1) to be considered a candidate A/B pair.
const parallelCosine = 0.995

// areaTieFraction: two candidate pairs whose triangle counts and areas both
// differ by less than this fraction of the larger value are considered
// "near-equal" and reported as AmbiguousPair. Triangle count alone cannot
// discriminate (every box face pair ties at 2+2 triangles); area is the
// quantity that actually separates a sheet's broad faces from its walls.
const areaTieFraction = 0.05

// Sheet is the result of classifying a solid's faces into sheet-metal
// roles.
type Sheet struct {
	Solid          *brep.Solid
	FaceA          string
	FaceB          string
	Thickness      float64
	KFactor        float64 // neutral-axis offset; defaults to 0.5
	ThicknessFaces []string
	BendFaces      []string
}

type faceStats struct {
	name     string
	area     float64
	triCount int
	normal   geom.Vec3
	centroid geom.Vec3
}

func computeFaceStats(s *brep.Solid, name string) faceStats {
	tris, _ := s.GetFace(name)
	stats := faceStats{name: name, triCount: len(tris)}
	var normalSum, centroidSum geom.Vec3
	for _, tri := range tris {
		a, b, c := s.Positions(tri)
		n := b.Sub(a).Cross(c.Sub(a))
		area := n.Length() / 2
		stats.area += area
		normalSum = normalSum.Add(n)
		centroidSum = centroidSum.Add(a.Add(b).Add(c).Scale(area / 3))
	}
	stats.normal = normalSum.Normalize()
	if stats.area > 0 {
		stats.centroid = centroidSum.Scale(1 / stats.area)
	}
	return stats
}

func isPlanarFace(s *brep.Solid, name string) bool {
	md, ok := s.GetFaceMetadata(name)
	if !ok {
		return true // unclassified (Opaque) faces are still candidates
	}
	switch md.(type) {
	case brep.Planar, brep.Opaque, brep.Sidewall:
		return true
	default:
		return false
	}
}

// Classify identifies the A/B face pair, the side walls connecting them
// (Thickness), and cylindrical faces whose axis lies in the sheet plane and
// whose height matches the sheet thickness (Bend). Only the A and B faces
// are tagged with brep.Sheet metadata; Bend faces keep their
// brep.Cylindrical with BendRadius set, and Thickness faces keep whatever
// metadata they already carried.
func Classify(s *brep.Solid, kFactor float64) (*Sheet, error) {
	if kFactor <= 0 {
		kFactor = 0.5
	}

	names := s.GetFaceNames()
	stats := make(map[string]faceStats, len(names))
	var planar []string
	for _, n := range names {
		if isPlanarFace(s, n) {
			st := computeFaceStats(s, n)
			stats[n] = st
			planar = append(planar, n)
		}
	}

	type pair struct {
		a, b      string
		triCount  int
		area      float64
		thickness float64
	}
	var candidates []pair
	for i := 0; i < len(planar); i++ {
		for j := i + 1; j < len(planar); j++ {
			sa, sb := stats[planar[i]], stats[planar[j]]
			if sa.normal.Dot(sb.normal) > -parallelCosine {
				continue
			}
			thickness := math.Abs(sb.centroid.Sub(sa.centroid).Dot(sa.normal))
			if thickness < geom.Epsilon {
				continue
			}
			candidates = append(candidates, pair{
				a: planar[i], b: planar[j],
				triCount:  sa.triCount + sb.triCount,
				area:      sa.area + sb.area,
				thickness: thickness,
			})
		}
	}
	if len(candidates) == 0 {
		return nil, NotSheetMetal
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.triCount > best.triCount || (c.triCount == best.triCount && c.area > best.area) {
			best = c
		}
	}

	var nearTies int
	for _, c := range candidates {
		if c.a == best.a && c.b == best.b {
			continue
		}
		countTie := float64(best.triCount-c.triCount) < areaTieFraction*float64(best.triCount)
		areaTie := best.area-c.area < areaTieFraction*best.area
		if countTie && areaTie {
			nearTies++
		}
	}
	if nearTies > 0 {
		log.Printf("sheetmetal: %d near-equal A/B candidate pair(s) besides %s/%s, picked the larger-area pair", nearTies, best.a, best.b)
	}

	s.SetFaceMetadata(best.a, brep.Sheet{Kind: brep.SheetA, Normal: stats[best.a].normal, Origin: stats[best.a].centroid})
	s.SetFaceMetadata(best.b, brep.Sheet{Kind: brep.SheetB, Normal: stats[best.b].normal, Origin: stats[best.b].centroid})

	// Bend faces keep their Cylindrical metadata (BendRadius populated in
	// place) rather than being replaced by a generic Sheet tag; everything
	// else connecting A to B stays Thickness and keeps whatever Planar or
	// Sidewall metadata it already carried.
	axisUnit := stats[best.a].normal
	var thicknessFaces, bendFaces []string
	for _, n := range names {
		if n == best.a || n == best.b {
			continue
		}
		md, _ := s.GetFaceMetadata(n)
		if cyl, ok := md.(brep.Cylindrical); ok && isBendCylinder(cyl, axisUnit, best.thickness) {
			cyl.BendRadius = cyl.Radius
			s.SetFaceMetadata(n, cyl)
			bendFaces = append(bendFaces, n)
			continue
		}
		thicknessFaces = append(thicknessFaces, n)
	}

	sheet := &Sheet{
		Solid: s, FaceA: best.a, FaceB: best.b, Thickness: best.thickness, KFactor: kFactor,
		ThicknessFaces: thicknessFaces, BendFaces: bendFaces,
	}
	if nearTies > 0 {
		return sheet, AmbiguousPair
	}
	return sheet, nil
}

// isBendCylinder reports whether a cylindrical face's axis lies in the
// sheet plane (perpendicular to the A/B normal) and its height roughly
// equals the sheet thickness.
func isBendCylinder(cyl brep.Cylindrical, sheetNormal geom.Vec3, thickness float64) bool {
	inPlane := math.Abs(cyl.Axis.Dot(sheetNormal)) < 0.1
	heightMatches := math.Abs(cyl.Height-thickness) < thickness*0.5+geom.Epsilon
	return inPlane && heightMatches
}
