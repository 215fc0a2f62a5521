package images

import (
	"image"

	"github.com/nfnt/resize"
)

// ResizeOptions bounds a resize operation.
type ResizeOptions struct {
	// Width is the target (or maximum) width in pixels.
	Width uint `json:"width" yaml:"width"`
	// Height is the target (or maximum) height in pixels.
	Height uint `json:"height" yaml:"height"`
	// PreserveAspect fits the image inside Width x Height without distortion
	// and never upscales. When false the image is scaled to exactly Width x Height.
	PreserveAspect bool `json:"preserve_aspect" yaml:"preserve_aspect"`
}

// Resize scales img according to opt.
//
// Arguments:
//   - img: The image to resize.
//   - opt: Target bounds and mode.
//
// Returns:
//   - *image.NRGBA: The resized image, or img itself when no scaling is needed.
func Resize(img *image.NRGBA, opt ResizeOptions) *image.NRGBA {
	if opt.Width == 0 || opt.Height == 0 {
		return img
	}

	var out image.Image
	if opt.PreserveAspect {
		// Thumbnail returns the source untouched when it already fits.
		out = resize.Thumbnail(opt.Width, opt.Height, img, resize.Lanczos3)
	} else {
		out = resize.Resize(opt.Width, opt.Height, img, resize.Lanczos3)
	}

	return ToNRGBA(out)
}
