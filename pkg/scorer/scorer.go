// Package scorer evaluates one pattern set against one source text
package scorer

import (
	"fmt"
	"strings"

	"guesslex/pkg/patterns"
)

// Profile parameterizes Score. Language and framework scoring are the same
// function run with different profiles
type Profile struct {
	PatternWeight float64
	KeywordWeight float64
	// AntiPatterns enables the negative-evidence step
	AntiPatterns bool
	AntiPenalty  float64

	PatternLabel func(pattern string, count int) string
	KeywordLabel func(keyword string) string
}

// LanguageProfile scores language sets
var LanguageProfile = Profile{
	PatternWeight: 0.6,
	KeywordWeight: 0.4,
	AntiPatterns:  true,
	AntiPenalty:   0.3,
	PatternLabel: func(pattern string, count int) string {
		return fmt.Sprintf("Pattern match: %s (%d times)", pattern, count)
	},
	KeywordLabel: func(keyword string) string {
		return "Keyword found: " + keyword
	},
}

// FrameworkProfile scores framework sets. Frameworks have no anti-patterns
var FrameworkProfile = Profile{
	PatternWeight: 0.7,
	KeywordWeight: 0.3,
	PatternLabel: func(pattern string, _ int) string {
		return "Framework pattern: " + pattern
	},
	KeywordLabel: func(keyword string) string {
		return "Framework keyword: " + keyword
	},
}

// Source is prepared input text. Build it once per analysis and score every set
// against it
type Source struct {
	text  string
	lower string
}

// NewSource prepares text for scoring
func NewSource(text string) Source {
	return Source{text: text, lower: strings.ToLower(text)}
}

// Text returns the original text
func (s Source) Text() string {
	return s.text
}

// Result is the outcome of scoring one set
type Result struct {
	Score          float64
	PatternMatches int
	KeywordMatches int
	AntiMatches    int
	// TimedOut lists patterns whose evaluation hit the match timeout
	TimedOut []string
	Evidence []string
}

// Score evaluates set against src. Evidence is ordered pattern lines, then
// keyword lines, then anti-pattern lines. The score is never negative
func Score(src Source, set patterns.Set, p Profile) Result {
	var res Result

	for _, rule := range set.Patterns {
		n, err := rule.Count(src.text)
		if err != nil {
			res.TimedOut = append(res.TimedOut, rule.Source)
			res.Evidence = append(res.Evidence, "Pattern timed out: "+rule.Source)
			continue
		}
		if n > 0 {
			res.PatternMatches += n
			res.Evidence = append(res.Evidence, p.PatternLabel(rule.Source, n))
		}
	}

	for _, kw := range set.Keywords {
		if strings.Contains(src.lower, strings.ToLower(kw)) {
			res.KeywordMatches++
			res.Evidence = append(res.Evidence, p.KeywordLabel(kw))
		}
	}

	if p.AntiPatterns {
		for _, rule := range set.AntiPatterns {
			n, err := rule.Count(src.text)
			if err != nil {
				res.TimedOut = append(res.TimedOut, rule.Source)
				res.Evidence = append(res.Evidence, "Pattern timed out: "+rule.Source)
				continue
			}
			if n > 0 {
				res.AntiMatches += n
				res.Evidence = append(res.Evidence, fmt.Sprintf("Anti-pattern found: %s (-%d)", rule.Source, n))
			}
		}
	}

	base := (float64(res.PatternMatches)*p.PatternWeight + float64(res.KeywordMatches)*p.KeywordWeight) * set.Weight
	penalty := float64(res.AntiMatches) * p.AntiPenalty
	res.Score = max(0, base-penalty)
	return res
}
