package pipeline

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// fileExists reports whether path names an existing file or directory.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// fileSize returns the size of the file at path.
func fileSize(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// ensureParentDir creates every missing directory above path.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("failed to create directory %s: %v", dir, err)
		return err
	}
	return nil
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary units, e.g. "512 B" or "1.5 MB".
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}

	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", n, sizeUnits[unit])
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

// reduction is the percentage by which before shrank to after; 0 when before is 0.
func reduction(before, after int64) float64 {
	if before <= 0 {
		return 0
	}
	return float64(before-after) * 100 / float64(before)
}
