// Package images - decoding, resizing and encoding of image files.
package images

import (
	"image"
	"io"
	"os"
	"path/filepath"

	// Register decoders with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ErrEmptyImage is returned when a decoded image has no pixels.
var ErrEmptyImage = errors.New("image has zero width or height")

// Info describes an image file on disk.
type Info struct {
	// Name is the base name of the file.
	Name string `json:"nom" yaml:"name"`
	// Path is the path the image was read from.
	Path string `json:"chemin" yaml:"path"`
	// Format is the format declared by the file extension.
	Format Format `json:"format" yaml:"format"`
	// Width of the decoded image in pixels.
	Width int `json:"largeur" yaml:"width"`
	// Height of the decoded image in pixels.
	Height int `json:"hauteur" yaml:"height"`
	// Size of the file in bytes.
	Size int64 `json:"taille_octets" yaml:"size"`
}

// Decode reads an encoded image and returns it as a non-premultiplied RGBA buffer
// with bounds starting at the origin.
//
// Arguments:
// - r: The encoded image stream.
//
// Returns:
// - *image.NRGBA: The decoded pixel buffer.
// - string: The format name reported by the decoder.
// - error: If decoding fails or the image is empty.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, name, errors.Wrap(err, "failed to decode image")
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, name, ErrEmptyImage
	}

	return ToNRGBA(img), name, nil
}

// Load opens and decodes the image at path.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ReadInfo builds an Info from an already decoded image and the file's metadata.
func ReadInfo(path string, img image.Image, size int64) (*Info, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Info{
		Name:   filepath.Base(path),
		Path:   path,
		Format: format,
		Width:  b.Dx(),
		Height: b.Dy(),
		Size:   size,
	}, nil
}

// ToNRGBA returns img as an *image.NRGBA anchored at (0, 0).
// An *image.NRGBA that is already anchored at the origin is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}

	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}
