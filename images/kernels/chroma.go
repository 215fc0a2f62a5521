// Package kernels implements per-pixel and neighborhood operations on RGBA buffers.
package kernels

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
)

// transitionFactor is the width of the fade band as a multiple of the tolerance.
const transitionFactor = 1.5

// RemoveBackground makes pixels close to key transparent, in place.
//
// For each pixel the Euclidean RGB distance d to key is computed (alpha is not
// part of the distance):
//
//	d <= tolerance               alpha = 0
//	d <= 1.5 * tolerance         alpha = round(alpha * (d - tolerance) / (0.5 * tolerance))
//	otherwise                    unchanged
//
// With a tolerance of 0 only exact matches are cleared and there is no fade band.
// The map is per pixel with no cross-pixel dependency, so rows are processed
// concurrently and the result is deterministic.
//
// Arguments:
//   - img: The buffer to modify.
//   - key: The background color; its alpha is ignored.
//   - tolerance: Distance threshold in RGB units.
func RemoveBackground(img *image.NRGBA, key color.RGBA, tolerance uint8) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	t := float32(tolerance)
	band := t * transitionFactor

	parallelRows(h, func(y int) {
		off := y * img.Stride
		for x := 0; x < w; x, off = x+1, off+4 {
			p := img.Pix[off : off+4 : off+4]
			d := distance(p[0], p[1], p[2], key)
			switch {
			case d <= t:
				p[3] = 0
			case tolerance > 0 && d <= band:
				f := math32.Min((d-t)/(band-t), 1)
				p[3] = uint8(math32.Round(float32(p[3]) * f))
			}
		}
	})
}

// distance is the Euclidean distance between (r, g, b) and key in RGB space.
func distance(r, g, b uint8, key color.RGBA) float32 {
	dr := int32(r) - int32(key.R)
	dg := int32(g) - int32(key.G)
	db := int32(b) - int32(key.B)
	return math32.Sqrt(float32(dr*dr + dg*dg + db*db))
}
