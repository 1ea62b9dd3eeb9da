package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMFlangeFoldsANewLegOffAHostFace(t *testing.T) {
	solid := box("PLATE1", 10, 10, 1)
	sc := sceneWithSolid("PLATE1", solid, "seed")

	edge := findEdgeBetween(t, sc, solid, "F_RIGHT", "F_TOP")
	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "SM.FLANGE", Params: SMFlangeParams{
			HostFace:   "F_TOP",
			Edge:       edge.Name,
			LegLength:  5,
			BendRadius: 1,
			Thickness:  1,
			AngleDeg:   90,
			Inset:      InsetMaterialInside,
			KFactor:    0.5,
		}},
		Scene: sc,
	}

	result, err := smFlangeClass.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, []string{"PLATE1"}, result.Removed)
}

func TestSMHemFoldsALegFlatAgainstTheParent(t *testing.T) {
	solid := box("PLATE2", 10, 10, 1)
	sc := sceneWithSolid("PLATE2", solid, "seed")

	edge := findEdgeBetween(t, sc, solid, "F_RIGHT", "F_TOP")
	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "SM.HEM", Params: SMHemParams{
			HostFace:  "F_TOP",
			Edge:      edge.Name,
			Thickness: 1,
			KFactor:   0.5,
		}},
		Scene: sc,
	}

	result, err := smHemClass.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, []string{"PLATE2"}, result.Removed)
}

func TestSMCutoutPunchesThroughASheet(t *testing.T) {
	sheetSolid := box("SHEET1", 10, 10, 1)
	toolSolid := box("TOOL1", 2, 2, 5)
	sc := sceneWithSolid("SHEET1", sheetSolid, "seed")
	_, err := sc.InsertSolid("TOOL1", toolSolid, "seed")
	require.NoError(t, err)

	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "SM.CUTOUT", Params: SMCutoutParams{
			Sheet:   "SHEET1",
			Tool:    "TOOL1",
			KFactor: 0.5,
		}},
		Scene: sc,
	}

	result, err := smCutoutClass.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, []string{"SHEET1"}, result.Removed)
}

func TestSMContourFlangeBuildsAStandaloneSheet(t *testing.T) {
	solid := box("PROFILESRC", 10, 6, 1)
	sc := sceneWithSolid("PROFILESRC", solid, "seed")

	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "SM.CONTOURFLANGE", Params: SMContourFlangeParams{
			Profile:        "F_TOP",
			BendRadius:     0.5,
			Thickness:      1,
			TowardNormal:   true,
			KFactor:        0.5,
			FilletSegments: 6,
		}},
		Scene: sc,
	}

	result, err := smContourFlangeClass.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Empty(t, result.Removed)
}

func TestSMFlangeSelectionsIncludesHostFaceAndEdge(t *testing.T) {
	p := SMFlangeParams{HostFace: "F_TOP", Edge: "BOX1:F_TOP/F_RIGHT#0"}
	names := smFlangeClass.Selections(p)
	assert.ElementsMatch(t, []string{"F_TOP", "BOX1:F_TOP/F_RIGHT#0"}, names)
}
