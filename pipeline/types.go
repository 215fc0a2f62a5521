// Package pipeline exposes the image operations: analysis, format conversion
// with optional resizing, and chroma-key background removal.
package pipeline

import "github.com/nvr-ai/go-imaging/images"

// ConversionOptions configures Convert.
type ConversionOptions struct {
	// Format is the output format name, e.g. "jpeg" or "PNG".
	Format string `json:"format_sortie" yaml:"format"`
	// Quality for lossy formats in [1, 100]. Nil means images.DefaultQuality.
	Quality *int `json:"qualite,omitempty" yaml:"quality,omitempty"`
	// MaxWidth bounds the output width. Ignored unless MaxHeight is also set.
	MaxWidth *uint32 `json:"largeur_max,omitempty" yaml:"max_width,omitempty"`
	// MaxHeight bounds the output height. Ignored unless MaxWidth is also set.
	MaxHeight *uint32 `json:"hauteur_max,omitempty" yaml:"max_height,omitempty"`
	// PreserveAspect fits within the bounds instead of stretching to them.
	PreserveAspect bool `json:"conserver_ratio" yaml:"preserve_aspect"`
}

// resize returns the resize bounds, or false when resizing is skipped.
// Both bounds must be present; a single bound does not trigger a resize.
func (o ConversionOptions) resize() (images.ResizeOptions, bool) {
	if o.MaxWidth == nil || o.MaxHeight == nil {
		return images.ResizeOptions{}, false
	}
	return images.ResizeOptions{
		Width:          uint(*o.MaxWidth),
		Height:         uint(*o.MaxHeight),
		PreserveAspect: o.PreserveAspect,
	}, true
}

func (o ConversionOptions) encode() images.EncodeOptions {
	if o.Quality == nil {
		return images.DefaultEncodeOptions()
	}
	return images.EncodeOptions{Quality: *o.Quality}
}

// BackgroundRemovalOptions configures RemoveBackground.
type BackgroundRemovalOptions struct {
	// KeyColor is the background color as "#RRGGBB".
	KeyColor string `json:"couleur_fond" yaml:"key_color"`
	// Tolerance is the RGB distance below which pixels become transparent.
	Tolerance uint8 `json:"tolerance" yaml:"tolerance"`
	// SoftenEdges enables alpha box-filtering of partially transparent pixels.
	SoftenEdges bool `json:"adoucir_bords" yaml:"soften_edges"`
	// SoftenRadius is the softening window half-size in pixels.
	SoftenRadius uint8 `json:"rayon_adoucissement" yaml:"soften_radius"`
}

// ConversionResult describes a finished Convert or RemoveBackground call.
type ConversionResult struct {
	Success      bool          `json:"succes" yaml:"success"`
	InputPath    string        `json:"fichier_origine" yaml:"input_path"`
	OutputPath   string        `json:"fichier_sortie" yaml:"output_path"`
	InputFormat  images.Format `json:"format_origine" yaml:"input_format"`
	OutputFormat images.Format `json:"format_sortie" yaml:"output_format"`
	SizeBefore   int64         `json:"taille_avant" yaml:"size_before"`
	SizeAfter    int64         `json:"taille_apres" yaml:"size_after"`
	// Reduction is (SizeBefore-SizeAfter)/SizeBefore*100, or 0 for an empty input.
	Reduction float64 `json:"reduction_pourcent" yaml:"reduction"`
	Message   string  `json:"message" yaml:"message"`
}
