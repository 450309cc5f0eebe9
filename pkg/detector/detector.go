// Package detector classifies source text by language and framework using the
// compiled rules of a patterns.Registry
package detector

import (
	"fmt"
	"strings"
	"time"

	"guesslex/pkg/logger"
	"guesslex/pkg/patterns"
	"guesslex/pkg/scorer"
)

// Detector runs the two-stage language then framework decision. It holds no
// mutable state and is safe for concurrent use
type Detector struct {
	registry *patterns.Registry
	log      *logger.Logger
}

// Option configures a Detector
type Option func(*settings)

type settings struct {
	log          *logger.Logger
	matchTimeout time.Duration
}

// WithLogger routes detection events to l
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}

// WithMatchTimeout bounds a single regex evaluation. Only NewDefault compiles
// rules, so New ignores it
func WithMatchTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.matchTimeout = d
	}
}

func collect(opts []Option) settings {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	return s
}

// New creates a Detector over an already compiled registry
func New(registry *patterns.Registry, opts ...Option) *Detector {
	s := collect(opts)
	return &Detector{registry: registry, log: s.log}
}

// NewDefault compiles the built-in rule tables and returns a Detector over them
func NewDefault(opts ...Option) (*Detector, error) {
	s := collect(opts)

	registry, err := patterns.Default(patterns.WithMatchTimeout(s.matchTimeout))
	if err != nil {
		s.log.RegistryInvalid(err)
		return nil, fmt.Errorf("failed to compile pattern tables: %w", err)
	}
	s.log.RegistryLoaded(len(registry.Languages()), len(registry.Frameworks()))

	return &Detector{registry: registry, log: s.log}, nil
}

// candidate is a language or framework that scored above zero
type candidate struct {
	name     string
	score    float64
	evidence []string
}

// AnalyzeCode detects the language and framework of text. filename is only
// used for its extension hint and may be empty
func (d *Detector) AnalyzeCode(text, filename string) Result {
	if strings.TrimSpace(text) == "" {
		return unknown("Empty code")
	}

	src := scorer.NewSource(text)

	cands := d.scoreSets(src, d.registry.Languages(), scorer.LanguageProfile)
	if len(cands) == 0 {
		d.log.AnalysisCompleted(sourceName(filename), Unknown, "", 0)
		return unknown("No patterns matched")
	}

	if filename != "" {
		if hinted, ok := d.registry.LanguageForFilename(filename); ok {
			for i := range cands {
				if cands[i].name == hinted {
					cands[i].score *= HintMultiplier
					cands[i].evidence = append(cands[i].evidence, "File extension hint: "+filename)
				}
			}
		}
	}

	lang := pickBest(cands)
	langConfidence := min(lang.score, 1.0)

	res := Result{
		Language:   lang.name,
		Confidence: langConfidence,
		Evidence:   lang.evidence,
	}

	fws := d.scoreSets(src, d.registry.FrameworksFor(lang.name), scorer.FrameworkProfile)
	if len(fws) > 0 {
		fw := pickBest(fws)
		fwConfidence := clamp(fw.score/FrameworkScale, 0, 1)

		res.Framework = fw.name
		res.Confidence = min(langConfidence+fwConfidence*FusionWeight, 1.0)
		res.Evidence = append(append([]string(nil), lang.evidence...), fw.evidence...)
	}

	d.log.AnalysisCompleted(sourceName(filename), res.Language, res.Framework, res.Confidence)
	return res
}

// scoreSets scores every set against src and keeps those above zero, in
// registry order
func (d *Detector) scoreSets(src scorer.Source, sets []patterns.Set, p scorer.Profile) []candidate {
	var cands []candidate
	for _, set := range sets {
		r := scorer.Score(src, set, p)
		for _, pat := range r.TimedOut {
			d.log.PatternTimedOut(set.Name, pat)
		}
		if r.Score > 0 {
			cands = append(cands, candidate{name: set.Name, score: r.Score, evidence: r.Evidence})
		}
	}
	return cands
}

// SupportedLanguages returns every language name in registry order
func (d *Detector) SupportedLanguages() []string {
	return d.registry.LanguageNames()
}

// SupportedFrameworks returns every framework name in registry order
func (d *Detector) SupportedFrameworks() []string {
	return d.registry.FrameworkNames()
}

// FrameworkLanguage returns the language that owns a framework
func (d *Detector) FrameworkLanguage(name string) (string, bool) {
	set, ok := d.registry.Framework(name)
	if !ok {
		return "", false
	}
	return set.Language, true
}

// pickBest selects the highest scoring candidate; on a tie the earliest wins
func pickBest(cands []candidate) candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return best
}

// clamp constrains a value between lo and hi
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func sourceName(filename string) string {
	if filename == "" {
		return "inline"
	}
	return filename
}
