package pipeline

import (
	"fmt"

	"github.com/nvr-ai/go-imaging/images"
	"github.com/nvr-ai/go-imaging/images/kernels"
	"github.com/nvr-ai/go-imaging/progress"
)

func (s *Service) removeBackground(in, out string, opts BackgroundRemovalOptions) (*ConversionResult, *Error) {
	tr := progress.Track(s.progress("Background removal"))

	src, e := openSource(tr, in)
	if e != nil {
		return nil, e
	}

	tr.Update(40, "Loading image...")
	img, err := images.Load(in)
	if err != nil {
		tr.Fail("Cannot load image")
		return nil, dataError(err, "cannot load image")
	}

	tr.Update(50, "Parsing background color...")
	key, err := images.ParseHexColor(opts.KeyColor)
	if err != nil {
		tr.Fail("Invalid background color")
		return nil, validationError("%s", err)
	}

	tr.Update(80, "Removing background...")
	kernels.RemoveBackground(img, key, opts.Tolerance)

	if opts.SoftenEdges {
		tr.Update(90, "Softening edges...")
		img = kernels.SoftenEdges(img, opts.SoftenRadius)
	} else {
		tr.Update(90, "Finalizing...")
	}

	tr.Update(100, "Saving transparent PNG...")
	if e := prepareOutput(tr, out); e != nil {
		return nil, e
	}
	size, e := writeOutput(tr, out, img, images.AlphaFormat, images.DefaultEncodeOptions())
	if e != nil {
		return nil, e
	}

	tr.Succeed(fmt.Sprintf("Background removed: %s -> transparent %s (%s)",
		FormatSize(src.size), images.AlphaFormat, FormatSize(size)))

	return &ConversionResult{
		Success:      true,
		InputPath:    in,
		OutputPath:   out,
		InputFormat:  src.format,
		OutputFormat: images.AlphaFormat,
		SizeBefore:   src.size,
		SizeAfter:    size,
		Reduction:    reduction(src.size, size),
		Message:      fmt.Sprintf("Background removed: %s -> transparent %s", src.format, images.AlphaFormat),
	}, nil
}
