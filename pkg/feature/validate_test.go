package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/lignin-cad/core/pkg/scene"
)

func TestValidateStructuralFlagsMissingID(t *testing.T) {
	f := &Feature{Type: "E", Params: ExtrudeParams{Distance: 10}}
	errs := ValidateStructural(f)
	if assert.Len(t, errs, 1) {
		assert.Equal(t, SeverityError, errs[0].Severity)
	}
}

func TestValidateStructuralFlagsUnregisteredType(t *testing.T) {
	f := &Feature{ID: "f1", Type: "NOT.A.REAL.TYPE", Params: RawParams{}}
	errs := ValidateStructural(f)
	assert.NotEmpty(t, errs)
}

func TestValidateStructuralFlagsNilParams(t *testing.T) {
	f := &Feature{ID: "f1", Type: "E"}
	errs := ValidateStructural(f)
	assert.NotEmpty(t, errs)
}

func TestValidateStructuralPassesWellFormedFeature(t *testing.T) {
	f := &Feature{ID: "f1", Type: "E", Params: ExtrudeParams{Profile: "F_TOP", Distance: 10}}
	assert.Empty(t, ValidateStructural(f))
}

func TestValidateSelectionsWarnsOnStaleReference(t *testing.T) {
	sc := scene.New()
	f := &Feature{ID: "f1", Type: "E", Params: ExtrudeParams{Profile: "GONE", Distance: 10}}
	ctx := &RunContext{Feature: f, Scene: sc}

	warnings := ValidateSelections(ctx)
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, SeverityWarning, warnings[0].Severity)
	}
}

func TestValidateAllSkipsTier2WhenTier1Fails(t *testing.T) {
	sc := scene.New()
	f := &Feature{Type: "E", Params: ExtrudeParams{Profile: "GONE", Distance: 10}}
	ctx := &RunContext{Feature: f, Scene: sc}

	result := ValidateAll(ctx)
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateAllResolvesSelectionAgainstScene(t *testing.T) {
	sc := sceneWithBox("BOX1", 10, 10, 10, "feat0")
	f := &Feature{ID: "f1", Type: "E", Params: ExtrudeParams{Profile: "F_TOP", Distance: 5}}
	ctx := &RunContext{Feature: f, Scene: sc}

	result := ValidateAll(ctx)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateAdjacencyPassesOnIntactEdge(t *testing.T) {
	solid := box("BOX1", 10, 10, 10)
	sc := sceneWithSolid("BOX1", solid, "feat0")
	edge := findEdgeBetween(t, sc, solid, "F_TOP", "F_FRONT")

	f := &Feature{ID: "f1", Type: "SM.FLANGE", Params: SMFlangeParams{HostFace: "F_TOP", Edge: edge.Name}}
	ctx := &RunContext{Feature: f, Scene: sc}

	assert.Empty(t, ValidateAdjacency(ctx))
}

func TestValidateAdjacencyWarnsWhenEdgeFacesNoLongerTouch(t *testing.T) {
	solid := box("BOX1", 10, 10, 10)
	sc := sceneWithSolid("BOX1", solid, "feat0")
	edge := findEdgeBetween(t, sc, solid, "F_TOP", "F_FRONT")

	// An upstream edit rebuilding the solid can keep the edge object's
	// name resolvable while the recorded face pair stops existing.
	// Renaming the face out from under the stale edge reference models
	// exactly that.
	solid.RenameFace("F_TOP", "F_TOP_SPLIT")

	f := &Feature{ID: "f1", Type: "SM.FLANGE", Params: SMFlangeParams{HostFace: "F_TOP_SPLIT", Edge: edge.Name}}
	ctx := &RunContext{Feature: f, Scene: sc}

	warnings := ValidateAdjacency(ctx)
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, SeverityWarning, warnings[0].Severity)
		assert.Contains(t, warnings[0].Message, "no longer adjacent")
	}
}

func TestValidateAdjacencySkipsNonEdgeSelections(t *testing.T) {
	sc := sceneWithBox("BOX1", 10, 10, 10, "feat0")
	f := &Feature{ID: "f1", Type: "E", Params: ExtrudeParams{Profile: "F_TOP", Distance: 5}}
	ctx := &RunContext{Feature: f, Scene: sc}

	assert.Empty(t, ValidateAdjacency(ctx))
}
