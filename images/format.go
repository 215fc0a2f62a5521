package images

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format is the tag of an image container format.
type Format string

// Supported formats, in the order they are advertised to callers.
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG Format = "JPEG"
	// FormatPNG is the PNG image format.
	FormatPNG Format = "PNG"
	// FormatWebP is the WebP image format.
	FormatWebP Format = "WebP"
	// FormatBMP is the BMP image format.
	FormatBMP Format = "BMP"
	// FormatTIFF is the TIFF image format.
	FormatTIFF Format = "TIFF"
	// FormatGIF is the GIF image format.
	FormatGIF Format = "GIF"
)

// AlphaFormat is the only format the pipeline writes transparency to.
const AlphaFormat = FormatPNG

var (
	// ErrUnsupportedFormat is returned when a format name is not one of the supported formats.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrUnrecognizedExtension is returned when a file extension maps to no format.
	ErrUnrecognizedExtension = errors.New("unrecognized extension")
	// ErrUnknownFormat is returned when a path carries no extension at all.
	ErrUnknownFormat = errors.New("cannot determine format")
)

// SupportedFormats returns every format the encoder can write.
func SupportedFormats() []Format {
	return []Format{FormatJPEG, FormatPNG, FormatWebP, FormatBMP, FormatTIFF, FormatGIF}
}

func (f Format) String() string {
	return string(f)
}

// Extension returns the canonical lower-case file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tiff"
	default:
		return "." + strings.ToLower(string(f))
	}
}

// Lossy reports whether the encoder honors a quality setting for the format.
func (f Format) Lossy() bool {
	return f == FormatJPEG
}

// ParseFormat maps a case-insensitive format name to a Format.
//
// Arguments:
// - name: A format name such as "jpeg", "JPG" or "Png".
//
// Returns:
// - The matching Format.
// - ErrUnsupportedFormat wrapped with the offending value.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	case "gif":
		return FormatGIF, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "format %q", name)
}

// FormatFromPath determines the format of a file purely from its extension.
// The decoder's own sniffing is not consulted.
//
// Arguments:
// - path: The file path.
//
// Returns:
// - The Format declared by the extension.
// - ErrUnrecognizedExtension or ErrUnknownFormat.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", ErrUnknownFormat
	}

	switch strings.ToLower(ext) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "bmp":
		return FormatBMP, nil
	case "tiff", "tif":
		return FormatTIFF, nil
	case "gif":
		return FormatGIF, nil
	}
	return "", errors.Wrapf(ErrUnrecognizedExtension, "extension %q", ext)
}
