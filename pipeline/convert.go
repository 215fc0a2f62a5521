package pipeline

import (
	"fmt"
	"image"

	"github.com/nvr-ai/go-imaging/images"
	"github.com/nvr-ai/go-imaging/progress"
)

func (s *Service) analyze(path string) (*images.Info, *Error) {
	if !fileExists(path) {
		return nil, &Error{Kind: KindData, Message: "image file does not exist: " + path}
	}

	size, err := fileSize(path)
	if err != nil {
		return nil, systemError(err, "cannot read file metadata")
	}

	img, err := images.Load(path)
	if err != nil {
		return nil, dataError(err, "cannot load image")
	}

	info, err := images.ReadInfo(path, img, size)
	if err != nil {
		return nil, wrapError(KindValidation, err, "cannot determine image format")
	}
	return info, nil
}

// source is the checked input of an operation: it exists, its extension names
// a supported format and its size is known.
type source struct {
	path   string
	format images.Format
	size   int64
}

// openSource runs the 20% checkpoint shared by every operation.
func openSource(tr *progress.Tracker, path string) (*source, *Error) {
	tr.Update(20, "Checking file...")

	if !fileExists(path) {
		tr.Fail("Source file not found")
		return nil, validationError("source file does not exist: %s", path)
	}

	format, err := images.FormatFromPath(path)
	if err != nil {
		tr.Fail("Unrecognized source format")
		return nil, wrapError(KindValidation, err, "cannot determine source format")
	}

	size, err := fileSize(path)
	if err != nil {
		tr.Fail("Cannot read file metadata")
		return nil, systemError(err, "cannot read source file")
	}

	return &source{path: path, format: format, size: size}, nil
}

// prepareOutput creates the parent directories of path.
func prepareOutput(tr *progress.Tracker, path string) *Error {
	if err := ensureParentDir(path); err != nil {
		tr.Fail("Cannot create output directory")
		return systemError(err, "cannot create directory")
	}
	return nil
}

// writeOutput encodes img into path and returns the size written. The parent
// directory must already exist.
func writeOutput(tr *progress.Tracker, path string, img *image.NRGBA, format images.Format, opt images.EncodeOptions) (int64, *Error) {
	if err := images.Save(path, img, format, opt); err != nil {
		tr.Fail("Cannot save " + format.String())
		return 0, systemError(err, "cannot save image")
	}

	size, err := fileSize(path)
	if err != nil {
		tr.Fail("Cannot verify output file")
		return 0, systemError(err, "cannot read output file")
	}
	return size, nil
}

func (s *Service) convert(in, out string, opts ConversionOptions) (*ConversionResult, *Error) {
	tr := progress.Track(s.progress("Image conversion"))

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

	if bounds, ok := opts.resize(); ok {
		tr.Update(60, "Resizing...")
		img = images.Resize(img, bounds)
	} else {
		tr.Update(60, "No resize needed")
	}

	tr.Update(70, "Preparing conversion...")
	format, err := images.ParseFormat(opts.Format)
	if err != nil {
		tr.Fail("Unsupported format")
		return nil, validationError("unsupported format: %s", opts.Format)
	}
	if e := prepareOutput(tr, out); e != nil {
		return nil, e
	}

	tr.Update(90, "Saving...")
	size, e := writeOutput(tr, out, img, format, opts.encode())
	if e != nil {
		return nil, e
	}

	tr.Update(100, "Finalizing...")
	red := reduction(src.size, size)
	tr.Succeed(fmt.Sprintf("Conversion finished: %s -> %s (%.1f%% reduction)",
		FormatSize(src.size), FormatSize(size), red))

	return &ConversionResult{
		Success:      true,
		InputPath:    in,
		OutputPath:   out,
		InputFormat:  src.format,
		OutputFormat: format,
		SizeBefore:   src.size,
		SizeAfter:    size,
		Reduction:    red,
		Message:      fmt.Sprintf("Converted %s -> %s (%.1f%% reduction)", src.format, format, red),
	}, nil
}
