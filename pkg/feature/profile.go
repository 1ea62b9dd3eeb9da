package feature

import (
	"fmt"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/scene"
	"github.com/lignin-cad/core/pkg/sweep"
)

// stitchFaceOutline chases a face's boundary segments end-to-end into one
// closed loop, exactly the way pkg/sheetmetal/unfold.go's faceOutline
// does: GetBoundaryEdgePolylines groups segments by face *pair*, so a face
// with several neighbors comes back as several short disjoint chains, not
// one ring, and has to be re-stitched by endpoint distance. Like
// faceOutline, this only produces the single outer ring; a face with an
// internal hole loop (e.g. punched by Cutout) is not supported.
func stitchFaceOutline(name string, boundaries []brep.BoundaryEdge) (geom.Polyline3, bool) {
	var chains []geom.Polyline3
	for _, b := range boundaries {
		switch name {
		case b.FaceA:
			chains = append(chains, append(geom.Polyline3{}, b.Positions...))
		case b.FaceB:
			rev := make(geom.Polyline3, len(b.Positions))
			for i, p := range b.Positions {
				rev[len(rev)-1-i] = p
			}
			chains = append(chains, rev)
		}
	}
	if len(chains) == 0 {
		return nil, false
	}

	used := make([]bool, len(chains))
	used[0] = true
	loop := append(geom.Polyline3{}, chains[0]...)
	for pass := 0; pass < len(chains)+1; pass++ {
		extended := false
		tail := loop[len(loop)-1]
		for i, c := range chains {
			if used[i] || len(c) == 0 {
				continue
			}
			if c[0].DistanceTo(tail) < 1e-6 {
				loop = append(loop, c[1:]...)
				used[i] = true
				extended = true
				break
			}
			if c[len(c)-1].DistanceTo(tail) < 1e-6 {
				for j := len(c) - 2; j >= 0; j-- {
					loop = append(loop, c[j])
				}
				used[i] = true
				extended = true
				break
			}
		}
		if !extended {
			break
		}
	}
	if len(loop) > 1 && loop[0].DistanceTo(loop[len(loop)-1]) < 1e-6 {
		loop = loop[:len(loop)-1]
	}
	return loop, true
}

// profileFromFace builds a sweep.Profile from a FACE object's stitched
// boundary loop, since SetFaceBoundaryLoops is never populated for a
// freshly-built solid and GetBoundaryEdgePolylines is the only source of
// truth for a face's boundary.
func profileFromFace(obj *scene.Object) (sweep.Profile, error) {
	if obj.Type != scene.TypeFace || obj.Solid == nil {
		return sweep.Profile{}, fmt.Errorf("feature: %q is not a face object", obj.Name)
	}
	normal, ok := obj.AverageNormal()
	if !ok {
		return sweep.Profile{}, fmt.Errorf("feature: face %q has no well-defined normal", obj.Name)
	}

	boundaries, err := obj.Solid.GetBoundaryEdgePolylines()
	if err != nil {
		return sweep.Profile{}, fmt.Errorf("feature: face %q boundary: %w", obj.Name, err)
	}

	outer, ok := stitchFaceOutline(obj.FaceName, boundaries)
	if !ok {
		return sweep.Profile{}, fmt.Errorf("feature: face %q has no boundary loop", obj.Name)
	}

	plane, err := geom.PlaneFromNormal(outer[0], normal)
	if err != nil {
		return sweep.Profile{}, fmt.Errorf("feature: face %q plane: %w", obj.Name, err)
	}

	return sweep.Profile{Name: obj.Name, Outer: outer, Plane: plane}, nil
}

// resolveSolidAndFace resolves a face selection name to both its parent
// solid and the profile it drives.
func resolveSolidAndFace(sc scene.Accessor, name string) (*brep.Solid, sweep.Profile, error) {
	obj, ok := sc.GetObjectByName(name)
	if !ok {
		return nil, sweep.Profile{}, fmt.Errorf("feature: %w: %q", SelectionUnresolved, name)
	}
	profile, err := profileFromFace(obj)
	if err != nil {
		return nil, sweep.Profile{}, err
	}
	return obj.Solid, profile, nil
}
