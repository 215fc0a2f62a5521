package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestImage() *image.NRGBA {
	// Create a simple 100x50 red image.
	img := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	return img
}

// Helper functions to create test data for different formats
func getJPEGBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, getTestImage(), nil)
	require.NoError(t, err)
	return buf.Bytes()
}

func getPNGBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := png.Encode(&buf, getTestImage())
	require.NoError(t, err)
	return buf.Bytes()
}

func getWebPBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	err := webp.Encode(&buf, getTestImage(), &webp.Options{Quality: 80})
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		wantFormat string
	}{
		{"jpeg", getJPEGBytes(t), "jpeg"},
		{"png", getPNGBytes(t), "png"},
		{"webp", getWebPBytes(t), "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := Decode(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())
		})
	}

	_, _, err := Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err, "Decode should error for invalid input")
}

func TestToNRGBAReanchorsBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.SetRGBA(10, 20, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	out := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 3), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, out.NRGBAAt(0, 0))

	same := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	assert.Same(t, same, ToNRGBA(same))
}

func TestResize(t *testing.T) {
	tests := []struct {
		name       string
		opt        ResizeOptions
		wantWidth  int
		wantHeight int
	}{
		{"exact downscale", ResizeOptions{Width: 40, Height: 40}, 40, 40},
		{"exact upscale", ResizeOptions{Width: 300, Height: 120}, 300, 120},
		{"aspect fit", ResizeOptions{Width: 50, Height: 50, PreserveAspect: true}, 50, 25},
		{"aspect no upscale", ResizeOptions{Width: 500, Height: 500, PreserveAspect: true}, 100, 50},
		{"zero bound is a no-op", ResizeOptions{Width: 0, Height: 20}, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resize(getTestImage(), tt.opt)
			require.NotNil(t, out)
			assert.Equal(t, tt.wantWidth, out.Bounds().Dx(), "width")
			assert.Equal(t, tt.wantHeight, out.Bounds().Dy(), "height")
		})
	}
}

func TestResizePreservesColor(t *testing.T) {
	out := Resize(getTestImage(), ResizeOptions{Width: 20, Height: 20})
	c := out.NRGBAAt(10, 10)
	assert.InDelta(t, 255, int(c.R), 2)
	assert.InDelta(t, 0, int(c.G), 2)
	assert.InDelta(t, 255, int(c.A), 1)
}
