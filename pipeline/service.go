package pipeline

import (
	"log"

	"github.com/nvr-ai/go-imaging/images"
	"github.com/nvr-ai/go-imaging/progress"
	"github.com/pkg/errors"
)

// Service runs image operations. It holds no mutable state, so a single
// Service may serve any number of concurrent calls.
type Service struct {
	progress progress.Factory
}

// NewService creates a Service.
//
// Arguments:
// - factory: Creates a fresh progress reporter for each Convert and
// RemoveBackground call. Nil discards progress.
//
// Returns:
// - *Service: The service.
//
// @example
// svc := pipeline.NewService(progress.LogFactory(false))
func NewService(factory progress.Factory) *Service {
	if factory == nil {
		factory = func(string) progress.Reporter { return progress.Nop{} }
	}
	return &Service{progress: factory}
}

// logged runs fn between start and outcome log lines. A failure is collapsed
// into a plain error whose text is prefix followed by the failure message.
func logged[T any](op, prefix string, fn func() (T, *Error)) (T, error) {
	log.Printf("%s: started", op)

	out, err := fn()
	if err != nil {
		log.Printf("%s: %v", op, err)
		var zero T
		return zero, errors.New(prefix + ": " + err.Message)
	}

	log.Printf("%s: ok", op)
	return out, nil
}

// Analyze decodes the image at path and reports its dimensions, declared
// format and size.
func (s *Service) Analyze(path string) (*images.Info, error) {
	return logged("analyze "+path, "failed to analyze image", func() (*images.Info, *Error) {
		return s.analyze(path)
	})
}

// Convert re-encodes the image at in into out using opts.
func (s *Service) Convert(in, out string, opts ConversionOptions) (*ConversionResult, error) {
	return logged("convert "+in+" -> "+out, "conversion failed", func() (*ConversionResult, *Error) {
		return s.convert(in, out, opts)
	})
}

// RemoveBackground clears pixels close to the key color and writes a PNG to out.
// Any extension on out is kept as given; the content is always PNG.
func (s *Service) RemoveBackground(in, out string, opts BackgroundRemovalOptions) (*ConversionResult, error) {
	return logged("remove background "+in+" -> "+out, "background removal failed", func() (*ConversionResult, *Error) {
		return s.removeBackground(in, out, opts)
	})
}

// ListFormats returns the supported format names in a fixed order.
func (s *Service) ListFormats() []string {
	formats := images.SupportedFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}
