package feature

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lignin-cad/core/pkg/brep"
	"github.com/lignin-cad/core/pkg/geom"
	"github.com/lignin-cad/core/pkg/scene"
)

// box builds a six-faced rectangular solid the same way
// pkg/sheetmetal's classify_test.go plate() helper does, so that every
// face has genuine boundary edges shared with its neighbors and
// profileFromFace has something real to stitch.
func box(name string, w, h, d float64) *brep.Solid {
	s := brep.NewSolid(name)
	c := func(x, y, z float64) geom.Vec3 { return geom.Vec3{X: x, Y: y, Z: z} }
	quad := func(face string, a, b, cc, d geom.Vec3) {
		s.AddTriangle(face, a, b, cc)
		s.AddTriangle(face, a, cc, d)
	}

	b000, b100, b010, b110 := c(0, 0, 0), c(w, 0, 0), c(0, h, 0), c(w, h, 0)
	t000, t100, t010, t110 := c(0, 0, d), c(w, 0, d), c(0, h, d), c(w, h, d)

	quad("F_BOTTOM", b000, b010, b110, b100)
	quad("F_TOP", t000, t100, t110, t010)
	quad("F_FRONT", b000, b100, t100, t000)
	quad("F_BACK", b010, t010, t110, b110)
	quad("F_LEFT", b000, t000, t010, b010)
	quad("F_RIGHT", b100, b110, t110, t100)

	s.Visualize()
	return s
}

// sceneWithBox inserts a fresh box into a new scene under the given name,
// owned by the given feature id, returning the scene ready for a builtin
// to consume via a FACE selection.
func sceneWithBox(name string, w, h, d float64, owner string) *scene.Scene {
	sc := scene.New()
	_, _ = sc.InsertSolid(name, box(name, w, h, d), owner)
	return sc
}

// sceneWithSolid inserts an already-built solid into a fresh scene.
func sceneWithSolid(name string, solid *brep.Solid, owner string) *scene.Scene {
	sc := scene.New()
	_, _ = sc.InsertSolid(name, solid, owner)
	return sc
}

// findEdgeBetween locates the EDGE scene object scene.Scene.InsertSolid
// synthesized for the boundary shared by two named faces, reconstructing
// the same deterministic name format InsertSolid uses.
func findEdgeBetween(t *testing.T, sc *scene.Scene, solid *brep.Solid, faceA, faceB string) *scene.Object {
	t.Helper()
	boundaries, err := solid.GetBoundaryEdgePolylines()
	require.NoError(t, err)

	count := 0
	for _, b := range boundaries {
		if (b.FaceA == faceA && b.FaceB == faceB) || (b.FaceA == faceB && b.FaceB == faceA) {
			name := fmt.Sprintf("%s:%s/%s#%d", solid.Name, b.FaceA, b.FaceB, count)
			if o, ok := sc.GetObjectByName(name); ok {
				return o
			}
			count++
		}
	}
	t.Fatalf("no edge object found between faces %q and %q", faceA, faceB)
	return nil
}
