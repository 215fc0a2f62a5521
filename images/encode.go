package images

import (
	"bufio"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// DefaultQuality is the JPEG quality used when none is requested.
const DefaultQuality = 85

// EncodeOptions tunes the encoder. Formats other than JPEG ignore Quality.
type EncodeOptions struct {
	// Quality in [1, 100]; values outside the range are clamped.
	Quality int `json:"quality" yaml:"quality"`
}

// DefaultEncodeOptions returns options with DefaultQuality.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Quality: DefaultQuality}
}

func (o EncodeOptions) quality() int {
	switch {
	case o.Quality < 1:
		return 1
	case o.Quality > 100:
		return 100
	}
	return o.Quality
}

// Encode serializes img to w in the given format.
//
// Arguments:
//   - w: Destination stream.
//   - img: The pixel buffer to encode.
//   - format: Target format.
//   - opt: Encoder options.
//
// Returns:
//   - error: ErrUnsupportedFormat for an unknown format, or the encoder's error.
func Encode(w io.Writer, img image.Image, format Format, opt EncodeOptions) error {
	var err error
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: opt.quality()})
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		err = enc.Encode(w, img)
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatGIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: 256})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "format %q", string(format))
	}

	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}
	return nil
}

// Save encodes img into a new file at path, truncating any existing file.
// The parent directory must already exist.
func Save(path string, img image.Image, format Format, opt EncodeOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	w := bufio.NewWriter(f)
	if err := Encode(w, img, format, opt); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "failed to close file")
	}
	return nil
}
