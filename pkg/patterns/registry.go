// Package patterns holds the hand-curated detection rules and compiles them into
// a read-only Registry.
//
// A Registry is immutable once built and can be shared by any number of
// goroutines. Every regex is compiled case-insensitive with per-line anchors;
// a table with a broken rule never produces a Registry
package patterns

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/multierr"
)

const matchOptions = regexp2.IgnoreCase | regexp2.Multiline

// Rule is one compiled regex together with its source text
type Rule struct {
	Source string
	re     *regexp2.Regexp
}

// Count returns the number of non-overlapping matches of the rule in text. The
// only error is a match timeout
func (r Rule) Count(text string) (int, error) {
	n := 0
	m, err := r.re.FindStringMatch(text)
	for m != nil && err == nil {
		n++
		m, err = r.re.FindNextMatch(m)
	}
	return n, err
}

// Set is a compiled language or framework pattern set. Language is empty for
// language sets
type Set struct {
	Name         string
	Language     string
	Patterns     []Rule
	Keywords     []string
	AntiPatterns []Rule
	Weight       float64
}

// Registry is the compiled, validated form of a Tables value
type Registry struct {
	languages  []Set
	frameworks []Set
	byName     map[string]int
	extensions map[string]string
	extByLang  map[string][]string
}

// Option configures registry compilation
type Option func(*options)

type options struct {
	matchTimeout time.Duration
}

// WithMatchTimeout bounds the time a single regex evaluation may take. Zero
// disables the bound
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.matchTimeout = d
	}
}

// Default compiles the built-in rule tables
func Default(opts ...Option) (*Registry, error) {
	return New(DefaultTables(), opts...)
}

// New compiles and validates the given tables. Every defect found is reported in
// the returned error; no partial registry is returned
func New(t Tables, opts ...Option) (*Registry, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		byName:     make(map[string]int, len(t.Languages)),
		extensions: make(map[string]string),
		extByLang:  make(map[string][]string),
	}

	var errs error
	for _, lr := range t.Languages {
		if _, dup := r.byName[lr.Name]; dup {
			errs = multierr.Append(errs, &RuleError{Set: lr.Name, Err: ErrDuplicateName})
			continue
		}
		set, err := compileSet(lr.Name, "", lr.Patterns, lr.Keywords, lr.AntiPatterns, lr.Weight, o)
		errs = multierr.Append(errs, err)
		r.byName[lr.Name] = len(r.languages)
		r.languages = append(r.languages, set)
	}

	seenFrameworks := make(map[string]bool, len(t.Frameworks))
	for _, fr := range t.Frameworks {
		if seenFrameworks[fr.Name] {
			errs = multierr.Append(errs, &RuleError{Set: fr.Name, Err: ErrDuplicateName})
			continue
		}
		seenFrameworks[fr.Name] = true
		if _, ok := r.byName[fr.Language]; !ok {
			errs = multierr.Append(errs, &RuleError{
				Set: fr.Name,
				Err: fmt.Errorf("%w: %q", ErrUnknownLanguage, fr.Language),
			})
		}
		set, err := compileSet(fr.Name, fr.Language, fr.Patterns, fr.Keywords, nil, fr.Weight, o)
		errs = multierr.Append(errs, err)
		r.frameworks = append(r.frameworks, set)
	}

	for _, er := range t.Extensions {
		if _, ok := r.byName[er.Language]; !ok {
			errs = multierr.Append(errs, &RuleError{
				Set: er.Language,
				Err: fmt.Errorf("%w: extension table entry", ErrUnknownLanguage),
			})
			continue
		}
		for _, ext := range er.Extensions {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				errs = multierr.Append(errs, &RuleError{
					Set: er.Language,
					Err: fmt.Errorf("%w: %q", ErrBadExtension, ext),
				})
				continue
			}
			if owner, taken := r.extensions[ext]; taken {
				errs = multierr.Append(errs, &RuleError{
					Set: er.Language,
					Err: fmt.Errorf("%w: %q already maps to %s", ErrBadExtension, ext, owner),
				})
				continue
			}
			r.extensions[ext] = er.Language
			r.extByLang[er.Language] = append(r.extByLang[er.Language], ext)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return r, nil
}

func compileSet(name, language string, pats, keywords, anti []string, weight float64, o options) (Set, error) {
	var errs error
	if !(weight > 0) {
		errs = multierr.Append(errs, &RuleError{Set: name, Err: fmt.Errorf("%w: %v", ErrBadWeight, weight)})
	}

	compiled, err := compileRules(name, pats, o)
	errs = multierr.Append(errs, err)
	compiledAnti, err := compileRules(name, anti, o)
	errs = multierr.Append(errs, err)

	return Set{
		Name:         name,
		Language:     language,
		Patterns:     compiled,
		Keywords:     append([]string(nil), keywords...),
		AntiPatterns: compiledAnti,
		Weight:       weight,
	}, errs
}

func compileRules(set string, sources []string, o options) ([]Rule, error) {
	var (
		rules []Rule
		errs  error
	)
	for _, src := range sources {
		re, err := regexp2.Compile(src, matchOptions)
		if err != nil {
			errs = multierr.Append(errs, &RuleError{Set: set, Pattern: src, Err: err})
			continue
		}
		if o.matchTimeout > 0 {
			re.MatchTimeout = o.matchTimeout
		}
		rules = append(rules, Rule{Source: src, re: re})
	}
	return rules, errs
}

// Languages returns the language sets in table order
func (r *Registry) Languages() []Set {
	return r.languages
}

// Frameworks returns the framework sets in table order
func (r *Registry) Frameworks() []Set {
	return r.frameworks
}

// FrameworksFor returns the framework sets scoped to language, in table order
func (r *Registry) FrameworksFor(language string) []Set {
	var out []Set
	for _, f := range r.frameworks {
		if f.Language == language {
			out = append(out, f)
		}
	}
	return out
}

// Language looks up a language set by name
func (r *Registry) Language(name string) (Set, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Set{}, false
	}
	return r.languages[i], true
}

// Framework looks up a framework set by name
func (r *Registry) Framework(name string) (Set, bool) {
	for _, f := range r.frameworks {
		if f.Name == name {
			return f, true
		}
	}
	return Set{}, false
}

// LanguageNames returns every language name in table order
func (r *Registry) LanguageNames() []string {
	names := make([]string, 0, len(r.languages))
	for _, l := range r.languages {
		names = append(names, l.Name)
	}
	return names
}

// FrameworkNames returns every framework name in table order
func (r *Registry) FrameworkNames() []string {
	names := make([]string, 0, len(r.frameworks))
	for _, f := range r.frameworks {
		names = append(names, f.Name)
	}
	return names
}

// Extensions returns the suffixes registered for a language
func (r *Registry) Extensions(language string) []string {
	return append([]string(nil), r.extByLang[language]...)
}

// LanguageForFilename maps the lowercase suffix of filename's base name to a
// language. Dot files such as ".bashrc" have no suffix
func (r *Registry) LanguageForFilename(filename string) (string, bool) {
	ext := Suffix(filename)
	if ext == "" {
		return "", false
	}
	lang, ok := r.extensions[ext]
	return lang, ok
}

// Suffix returns the lowercase extension of the base name of path, including
// the leading dot, or "" when there is none
func Suffix(path string) string {
	base := filepath.Base(strings.ToLower(path))
	base = strings.TrimLeft(base, ".")
	return filepath.Ext(base)
}
