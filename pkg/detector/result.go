package detector

import (
	"fmt"
	"strings"
)

// Unknown is the language reported when nothing could be detected
const Unknown = "unknown"

// Result represents the outcome of one analysis
type Result struct {
	Language   string   `json:"language"`
	Confidence float64  `json:"confidence"`
	Framework  string   `json:"framework,omitempty"`
	Evidence   []string `json:"evidence"`
}

// Known reports whether a language was detected
func (r Result) Known() bool {
	return r.Language != Unknown
}

func unknown(reason string) Result {
	return Result{Language: Unknown, Confidence: 0, Evidence: []string{reason}}
}

// Level interprets a confidence value
func Level(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "very high"
	case confidence >= 0.6:
		return "high"
	case confidence >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

// FormatResult renders a result as plain text with at most DefaultEvidenceLimit
// evidence lines
func FormatResult(r Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n", strings.ToUpper(r.Language))
	fmt.Fprintf(&b, "Confidence: %.1f%%", r.Confidence*100)
	if r.Framework != "" {
		fmt.Fprintf(&b, "\nFramework: %s", strings.ToUpper(r.Framework))
	}

	if len(r.Evidence) > 0 {
		b.WriteString("\n\nEvidence:")
		for i, e := range r.Evidence {
			if i == DefaultEvidenceLimit {
				break
			}
			fmt.Fprintf(&b, "\n  • %s", e)
		}
	}
	return b.String()
}
