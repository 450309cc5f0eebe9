package scanner

import (
	"bytes"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// skippedDirs are never descended into
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
}

// candidate is a file selected by the walk
type candidate struct {
	path string
	size int64
}

// ignoreMatcher pairs a .gitignore with the directory it lives in
type ignoreMatcher struct {
	base    string
	ignorer gitignore.GitIgnore
}

type walker struct {
	fsys     fs.FS
	opts     Options
	exts     []string
	matchers []ignoreMatcher
	skipped  func(p, reason string)
}

// walk collects the files to analyze in lexical order
func (w *walker) walk() ([]candidate, error) {
	var files []candidate

	err := fs.WalkDir(w.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			w.skipped(p, err.Error())
			return nil
		}

		if d.IsDir() {
			if p == "." {
				w.loadIgnore(p)
				return nil
			}
			if !w.opts.Recursive || skippedDirs[d.Name()] || w.excluded(p, d.Name(), true) {
				return fs.SkipDir
			}
			w.loadIgnore(p)
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if !w.hasExtension(p) {
			return nil
		}
		if w.excluded(p, d.Name(), false) {
			w.skipped(p, "excluded")
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w.skipped(p, err.Error())
			return nil
		}
		files = append(files, candidate{path: p, size: info.Size()})
		return nil
	})

	return files, err
}

func (w *walker) hasExtension(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range w.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// excluded checks exclude globs against the relative path and the base name,
// then the .gitignore files above p
func (w *walker) excluded(p, name string, isDir bool) bool {
	for _, pattern := range w.opts.Exclude {
		if matched, err := doublestar.Match(pattern, p); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	for _, m := range w.matchers {
		rel := p
		if m.base != "." {
			if !strings.HasPrefix(p, m.base+"/") {
				continue
			}
			rel = strings.TrimPrefix(p, m.base+"/")
		}
		if match := m.ignorer.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

func (w *walker) loadIgnore(dir string) {
	if !w.opts.RespectGitignore {
		return
	}
	data, err := fs.ReadFile(w.fsys, path.Join(dir, ".gitignore"))
	if err != nil {
		return
	}
	w.matchers = append(w.matchers, ignoreMatcher{
		base:    dir,
		ignorer: gitignore.New(bytes.NewReader(data), dir, nil),
	})
}

// normalizeExtensions lowercases and dot-prefixes suffixes, dropping blanks and
// duplicates
func normalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	var out []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
