package kernels

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var black = color.RGBA{A: 255}

// singlePixel builds a 1x1 NRGBA image.
func singlePixel(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, c)
	return img
}

func TestRemoveBackgroundThresholds(t *testing.T) {
	tests := []struct {
		name      string
		pixel     color.NRGBA
		tolerance uint8
		wantAlpha uint8
	}{
		{"exact match", color.NRGBA{0, 0, 0, 255}, 10, 0},
		{"distance equals tolerance", color.NRGBA{10, 0, 0, 255}, 10, 0},
		{"inside tolerance 3-4-5", color.NRGBA{0, 3, 4, 200}, 10, 0},
		{"distance equals 1.5 tolerance", color.NRGBA{15, 0, 0, 255}, 10, 255},
		{"distance equals 1.5 tolerance partial alpha", color.NRGBA{0, 9, 12, 120}, 10, 120},
		{"middle of band", color.NRGBA{12, 0, 0, 255}, 10, 102},
		{"quarter of band", color.NRGBA{0, 0, 11, 200}, 10, 40},
		{"outside band", color.NRGBA{16, 0, 0, 255}, 10, 255},
		{"far away keeps alpha", color.NRGBA{200, 200, 200, 77}, 10, 77},
		{"zero tolerance exact match", color.NRGBA{0, 0, 0, 255}, 0, 0},
		{"zero tolerance neighbor", color.NRGBA{1, 0, 0, 255}, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := singlePixel(tt.pixel)
			RemoveBackground(img, black, tt.tolerance)

			got := img.NRGBAAt(0, 0)
			assert.Equal(t, tt.wantAlpha, got.A, "alpha")
			assert.Equal(t, tt.pixel.R, got.R, "red must not change")
			assert.Equal(t, tt.pixel.G, got.G, "green must not change")
			assert.Equal(t, tt.pixel.B, got.B, "blue must not change")
		})
	}
}

func TestRemoveBackgroundZeroToleranceOnlyExactMatches(t *testing.T) {
	key := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: 0x34, B: 0x56, A: 255})
		}
	}
	img.SetNRGBA(3, 3, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255})
	before := append([]uint8(nil), img.Pix...)

	RemoveBackground(img, key, 0)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			off := img.PixOffset(x, y)
			if x == 3 && y == 3 {
				assert.Equal(t, uint8(0), img.Pix[off+3])
				continue
			}
			assert.Equal(t, before[off:off+4], img.Pix[off:off+4], "pixel (%d,%d)", x, y)
		}
	}
}

func TestRemoveBackgroundIgnoresKeyAlpha(t *testing.T) {
	img := singlePixel(color.NRGBA{255, 255, 255, 255})
	RemoveBackground(img, color.RGBA{R: 255, G: 255, B: 255, A: 0}, 5)
	assert.Equal(t, uint8(0), img.NRGBAAt(0, 0).A)
}

func TestRemoveBackgroundLargeImageMatchesSerial(t *testing.T) {
	// Tall enough to be split across goroutines.
	const w, h = 37, 300
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8((i * 31) % 251)
	}
	want := append([]uint8(nil), img.Pix...)
	key := color.RGBA{R: 120, G: 60, B: 200, A: 255}

	for off := 0; off < len(want); off += 4 {
		one := singlePixel(color.NRGBA{want[off], want[off+1], want[off+2], want[off+3]})
		RemoveBackground(one, key, 90)
		want[off+3] = one.Pix[3]
	}

	RemoveBackground(img, key, 90)
	require.Equal(t, want, img.Pix)
}
