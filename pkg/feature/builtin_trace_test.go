package feature

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lignin-cad/core/pkg/scene"
)

// writeTestPNG writes a 16x16 black image with a white 6x6 rectangle
// centered in it and returns the file path.
func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for y := 5; y < 11; y++ {
		for x := 5; x < 11; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "square.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestImageTraceExtrudesAPrism(t *testing.T) {
	path := writeTestPNG(t)
	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "IMG", Params: ImageTraceParams{
			File: path, Threshold: 128, PixelScale: 1, Distance: 4,
		}},
		Scene: scene.New(),
	}

	result, err := imageTraceClass.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 1)

	solid := result.Added[0].Solid
	require.NotNil(t, solid)
	min, max := solid.BoundingBox()
	assert.InDelta(t, 6.0, max.X-min.X, 1e-9)
	assert.InDelta(t, 6.0, max.Y-min.Y, 1e-9)
	assert.InDelta(t, 4.0, max.Z-min.Z, 1e-9)
}

func TestImageTraceCollinearCleanupLeavesFourCorners(t *testing.T) {
	path := writeTestPNG(t)
	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "IMG", Params: ImageTraceParams{
			File: path, Threshold: 128, PixelScale: 1, Distance: 4,
		}},
		Scene: scene.New(),
	}

	result, err := imageTraceClass.Run(ctx)
	require.NoError(t, err)
	require.Len(t, result.Added, 1)

	// a 6x6 axis-aligned rectangle cleans up to 4 corners, so the swept
	// body carries exactly 4 sidewall faces plus the two caps.
	names := result.Added[0].Solid.GetFaceNames()
	assert.Len(t, names, 6)
}

func TestImageTraceMissingFileFails(t *testing.T) {
	ctx := &RunContext{
		Feature: &Feature{ID: "f1", Type: "IMG", Params: ImageTraceParams{
			File: filepath.Join(t.TempDir(), "nope.png"), Threshold: 128, Distance: 4,
		}},
		Scene: scene.New(),
	}
	_, err := imageTraceClass.Run(ctx)
	assert.Error(t, err)
}

func TestImageTraceDecodeParamsDefaults(t *testing.T) {
	pd, err := imageTraceClass.DecodeParams(nil)
	require.NoError(t, err)
	p, ok := pd.(ImageTraceParams)
	require.True(t, ok)
	assert.Equal(t, 128.0, p.Threshold)
	assert.Equal(t, 1.0, p.PixelScale)
	assert.Equal(t, 10.0, p.Distance)
}
