package detection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"guesslex/pkg/detector"
	"guesslex/pkg/scanner"
)

var (
	titleStyle       = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	highStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	mediumStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	weakStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	lowStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	resultBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#01FAC6")).
			Padding(1, 2).
			Width(72)
)

var levelDescriptions = map[string]string{
	"very high": "Very High - Highly confident in detection",
	"high":      "High - Good confidence in detection",
	"medium":    "Medium - Moderate confidence",
	"low":       "Low - Low confidence, may need more context",
}

// confidenceStyle colors an analysis confidence
func confidenceStyle(c float64) lipgloss.Style {
	switch {
	case c > 0.7:
		return highStyle
	case c > 0.4:
		return mediumStyle
	default:
		return lowStyle
	}
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case "very high", "high":
		return highStyle
	case "medium":
		return mediumStyle
	default:
		return lowStyle
	}
}

// Render formats an analysis result. At most limit evidence lines are shown;
// a limit of zero hides the evidence
func Render(res detector.Result, source string, limit int) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Detection Results"))
	s.WriteString("  ")
	s.WriteString(mutedStyle.Render(source))
	s.WriteString("\n\n")

	var content strings.Builder
	content.WriteString(focusedStyle.Render("Language:   "))
	content.WriteString(valueStyle.Render(strings.ToUpper(res.Language)))
	content.WriteString("\n")

	content.WriteString(focusedStyle.Render("Confidence: "))
	content.WriteString(confidenceStyle(res.Confidence).Render(fmt.Sprintf("%.1f%%", res.Confidence*100)))

	if res.Framework != "" {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Framework:  "))
		content.WriteString(valueStyle.Render(strings.ToUpper(res.Framework)))
	}

	if limit > 0 && len(res.Evidence) > 0 {
		content.WriteString("\n\n")
		content.WriteString(focusedStyle.Render("Evidence:"))
		for i, e := range res.Evidence {
			if i == limit {
				content.WriteString("\n")
				content.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", len(res.Evidence)-limit)))
				break
			}
			content.WriteString("\n")
			content.WriteString(mutedStyle.Render(fmt.Sprintf("  %2d. ", i+1)))
			content.WriteString(descriptionStyle.Render(e))
		}
	}

	level := detector.Level(res.Confidence)
	content.WriteString("\n\n")
	content.WriteString(focusedStyle.Render("Confidence level: "))
	content.WriteString(levelStyle(level).Render(levelDescriptions[level]))

	s.WriteString(resultBox.Render(content.String()))
	return s.String()
}

// RenderScanEntry formats one scanned file on a single line
func RenderScanEntry(e scanner.Entry) string {
	var icon string
	switch {
	case e.Confidence > 0.7:
		icon = highStyle.Render("●")
	case e.Confidence > 0.5:
		icon = mediumStyle.Render("●")
	default:
		icon = weakStyle.Render("●")
	}

	framework := ""
	if e.Framework != "" {
		framework = " " + descriptionStyle.Render("("+e.Framework+")")
	}

	return fmt.Sprintf("%s %s → %s%s %s",
		icon,
		e.File,
		valueStyle.Render(strings.ToUpper(e.Language)),
		framework,
		mutedStyle.Render(fmt.Sprintf("(%.1f%%)", e.Confidence*100)),
	)
}

// RenderScanSummary formats the totals and language distribution of a scan
func RenderScanSummary(r *scanner.Report) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Scan Summary"))
	s.WriteString("\n\n")
	fmt.Fprintf(&s, "%s %d\n", focusedStyle.Render("Files found:    "), r.Summary.FilesFound)
	fmt.Fprintf(&s, "%s %d\n", focusedStyle.Render("Files analyzed: "), r.Summary.FilesAnalyzed)
	fmt.Fprintf(&s, "%s %.1f%%", focusedStyle.Render("Min confidence: "), r.Summary.MinConfidence*100)

	if len(r.Distribution) > 0 {
		s.WriteString("\n\n")
		s.WriteString(focusedStyle.Render("Language distribution:"))
		for _, d := range r.Distribution {
			fmt.Fprintf(&s, "\n  %s: %d files %s",
				valueStyle.Render(strings.ToUpper(d.Language)),
				d.Files,
				mutedStyle.Render(fmt.Sprintf("(%.1f%%)", d.Percent)),
			)
		}
	}
	return s.String()
}
