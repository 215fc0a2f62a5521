package util

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/nvr-ai/go-imaging/images"
)

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Format is the format declared by the file extension.
	Format images.Format
}

// ListImageFiles lists every file in dir whose extension names a supported format.
// Subdirectories, hidden files and other extensions are skipped.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: The image files, sorted by path.
// - error: Error if the directory cannot be read.
func ListImageFiles(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || IsHidden(entry.Name()) {
			continue
		}

		format, err := images.FormatFromPath(entry.Name())
		if err != nil {
			continue
		}
		files = append(files, ImageFile{
			Path:   filepath.Join(dir, entry.Name()),
			Format: format,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}

// IsHidden reports whether a file name is a dot file.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// OutputPath maps an input file to dir, replacing its extension with format's.
func OutputPath(input, dir string, format images.Format) string {
	base := filepath.Base(input)
	base = base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(dir, base+format.Extension())
}
