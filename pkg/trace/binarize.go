package trace

import (
	"image"

	"golang.org/x/image/draw"
)

// Binarize samples every pixel of img and returns a foreground grid,
// fg[y][x], true where the pixel counts as foreground. A pixel is
// foreground when its luma reaches threshold and its alpha is non-zero
// (transparent pixels are always background, regardless of luma), unless
// invert flips that sense. Luma conversion goes through x/image/draw's
// Gray drawer rather than hand-rolling the NTSC weighting.
func Binarize(img image.Image, threshold uint8, invert bool) [][]bool {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)

	fg := make([][]bool, h)
	for y := 0; y < h; y++ {
		fg[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			_, _, _, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			transparent := a == 0
			bright := gray.GrayAt(x, y).Y >= threshold
			fg[y][x] = bright && !transparent
			if invert {
				fg[y][x] = !bright && !transparent
			}
		}
	}
	return fg
}
