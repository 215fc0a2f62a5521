package cmd

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvr-ai/go-imaging/images"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFormatsCommand(t *testing.T) {
	out, err := execute(t, "formats")
	require.NoError(t, err)
	assert.Equal(t, "JPEG\nPNG\nWebP\nBMP\nTIFF\nGIF\n", out)
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 200, 255
	}
	require.NoError(t, images.Save(in, img, images.FormatPNG, images.EncodeOptions{}))

	out := filepath.Join(dir, "nested", "out.jpg")
	_, err := execute(t, "convert", in, out, "--format", "jpeg", "--quality", "60")
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestConvertCommandRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, images.Save(in, image.NewNRGBA(image.Rect(0, 0, 2, 2)), images.FormatPNG, images.EncodeOptions{}))

	_, err := execute(t, "convert", in, filepath.Join(dir, "out.heic"), "--format", "heic")
	require.Error(t, err)
	assert.Equal(t, "conversion failed: unsupported format: heic", err.Error())
}

func TestRemoveBackgroundCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 255, 0, 255})
		}
	}
	require.NoError(t, images.Save(in, img, images.FormatPNG, images.EncodeOptions{}))

	out := filepath.Join(dir, "cut.png")
	_, err := execute(t, "remove-bg", in, out, "--color", "#00FF00", "--tolerance", "10")
	require.NoError(t, err)

	got, err := images.Load(out)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), got.NRGBAAt(1, 1).A)
}
