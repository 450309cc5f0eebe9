// Package scanner runs the detector over every matching file below a
// directory and summarizes the results
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"guesslex/pkg/config"
	"guesslex/pkg/detector"
	"guesslex/pkg/logger"
	"guesslex/pkg/util"
)

// Options controls which files a scan visits and which results it keeps
type Options struct {
	Recursive        bool
	MinConfidence    float64
	Extensions       []string
	Exclude          []string
	Workers          int
	MaxFileSize      int64
	RespectGitignore bool

	// Progress is called after each file is analyzed. Calls are serialized
	Progress func(done, total int, file string)
}

// OptionsFromConfig builds scan options from the [scan] config section
func OptionsFromConfig(c config.ScanConfig) Options {
	return Options{
		Recursive:        c.Recursive,
		MinConfidence:    c.MinConfidence,
		Extensions:       append([]string(nil), c.Extensions...),
		Exclude:          append([]string(nil), c.Exclude...),
		Workers:          c.Workers,
		MaxFileSize:      c.MaxFileSize,
		RespectGitignore: c.RespectGitignore,
	}
}

// Entry is one reported file
type Entry struct {
	File       string  `json:"file"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	Framework  string  `json:"framework,omitempty"`
}

// Summary holds scan totals
type Summary struct {
	Directory     string  `json:"directory"`
	FilesFound    int     `json:"files_found"`
	FilesAnalyzed int     `json:"files_analyzed"`
	MinConfidence float64 `json:"min_confidence"`
}

// LanguageCount is one row of the language distribution
type LanguageCount struct {
	Language string  `json:"language"`
	Files    int     `json:"files"`
	Percent  float64 `json:"percent"`
}

// Report is the outcome of a scan
type Report struct {
	Summary      Summary         `json:"summary"`
	Results      []Entry         `json:"results"`
	Distribution []LanguageCount `json:"distribution"`
}

// Scanner analyzes directory trees with a shared Detector
type Scanner struct {
	detector *detector.Detector
	log      *logger.Logger
	opts     Options
}

// New creates a Scanner. A nil logger discards events
func New(d *detector.Detector, opts Options, log *logger.Logger) (*Scanner, error) {
	if log == nil {
		log = logger.Discard()
	}
	if opts.Workers < 1 {
		opts.Workers = config.DefaultWorkers
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = config.DefaultMaxFileSize
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, fmt.Errorf("min confidence must be between 0 and 1, got %v", opts.MinConfidence)
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	opts.Extensions = normalizeExtensions(opts.Extensions)
	if len(opts.Extensions) == 0 {
		opts.Extensions = normalizeExtensions(config.DefaultExtensions)
	}

	return &Scanner{detector: d, log: log, opts: opts}, nil
}

// Scan analyzes files below dir on the local filesystem
func (s *Scanner) Scan(ctx context.Context, dir string) (*Report, error) {
	abs, err := util.ScanRoot(dir)
	if err != nil {
		return nil, err
	}
	return s.ScanFS(ctx, os.DirFS(abs), dir)
}

// ScanFS analyzes files in fsys. label is reported as the scanned directory
func (s *Scanner) ScanFS(ctx context.Context, fsys fs.FS, label string) (*Report, error) {
	start := time.Now()
	s.log.ScanStarted(label, s.opts.Recursive, s.opts.Workers)

	w := &walker{
		fsys:    fsys,
		opts:    s.opts,
		exts:    s.opts.Extensions,
		skipped: s.log.ScanFileSkipped,
	}
	files, err := w.walk()
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", label, err)
	}

	results := make([]*Entry, len(files))
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if f.size > s.opts.MaxFileSize {
				s.log.ScanFileSkipped(f.path, fmt.Sprintf("larger than %d bytes", s.opts.MaxFileSize))
			} else {
				res := s.detector.AnalyzeFS(fsys, f.path)
				results[i] = &Entry{
					File:       f.path,
					Language:   res.Language,
					Confidence: res.Confidence,
					Framework:  res.Framework,
				}
			}

			if s.opts.Progress != nil {
				mu.Lock()
				done++
				s.opts.Progress(done, len(files), f.path)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Summary: Summary{
			Directory:     label,
			FilesFound:    len(files),
			MinConfidence: s.opts.MinConfidence,
		},
		Results: []Entry{},
	}
	for _, r := range results {
		if r != nil && r.Confidence >= s.opts.MinConfidence {
			report.Results = append(report.Results, *r)
		}
	}
	report.Summary.FilesAnalyzed = len(report.Results)
	report.Distribution = distribution(report.Results)

	s.log.ScanCompleted(report.Summary.FilesFound, report.Summary.FilesAnalyzed, time.Since(start))
	return report, nil
}

// distribution counts reported files per language, most common first
func distribution(entries []Entry) []LanguageCount {
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.Language]++
	}

	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{
			Language: lang,
			Files:    n,
			Percent:  float64(n) / float64(len(entries)) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Language < out[j].Language
	})
	return out
}
