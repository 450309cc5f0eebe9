package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ScanRoot resolves dir to the absolute directory a scan walks. A regular file
// is rejected with a pointer to analyze, which handles single files
func ScanRoot(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("no scan directory given")
	}
	dir = filepath.Clean(dir)

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("scan directory '%s' does not exist", dir)
	case err != nil:
		return "", fmt.Errorf("cannot read scan directory '%s': %w", dir, err)
	case !info.IsDir():
		return "", fmt.Errorf("'%s' is a file, not a directory (use 'guesslex analyze --file %s')", dir, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve scan directory '%s': %w", dir, err)
	}
	return abs, nil
}
