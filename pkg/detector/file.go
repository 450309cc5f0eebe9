package detector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"unicode/utf8"
)

// ErrInvalidUTF8 is reported when a file is not valid UTF-8 text
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// AnalyzeFile reads path and analyzes its contents, using the base name as the
// extension hint. Read failures are reported in the result, never returned
func (d *Detector) AnalyzeFile(p string) Result {
	data, err := os.ReadFile(p)
	return d.analyzeBytes(p, filepath.Base(p), data, err)
}

// AnalyzeFS is AnalyzeFile over an fs.FS
func (d *Detector) AnalyzeFS(fsys fs.FS, name string) Result {
	data, err := fs.ReadFile(fsys, name)
	return d.analyzeBytes(name, path.Base(name), data, err)
}

func (d *Detector) analyzeBytes(p, base string, data []byte, err error) Result {
	if err == nil && !utf8.Valid(data) {
		err = fmt.Errorf("%s: %w", p, ErrInvalidUTF8)
	}
	if err != nil {
		d.log.FileReadFailed(p, err)
		return unknown("Error reading file: " + err.Error())
	}
	return d.AnalyzeCode(string(data), base)
}
