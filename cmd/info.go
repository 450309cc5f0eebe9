package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	infoHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	infoValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	infoMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "List supported languages and frameworks",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

type frameworkInfo struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	det, err := newDetector(cfg, log)
	if err != nil {
		return err
	}

	languages := det.SupportedLanguages()
	sort.Strings(languages)

	names := det.SupportedFrameworks()
	sort.Strings(names)
	frameworks := make([]frameworkInfo, 0, len(names))
	for _, name := range names {
		lang, _ := det.FrameworkLanguage(name)
		frameworks = append(frameworks, frameworkInfo{Name: name, Language: lang})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"languages":  languages,
			"frameworks": frameworks,
		})
	}

	fmt.Fprintf(out, "%s\n", infoHeaderStyle.Render(fmt.Sprintf("Supported Languages (%d):", len(languages))))
	fmt.Fprintln(out, infoMutedStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	for i, lang := range languages {
		fmt.Fprintf(out, "%2d. %s\n", i+1, infoValueStyle.Render(strings.ToUpper(lang)))
	}

	fmt.Fprintf(out, "\n%s\n", infoHeaderStyle.Render(fmt.Sprintf("Supported Frameworks (%d):", len(frameworks))))
	fmt.Fprintln(out, infoMutedStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	for i, fw := range frameworks {
		fmt.Fprintf(out, "%2d. %s %s\n", i+1, infoValueStyle.Render(strings.ToUpper(fw.Name)), infoMutedStyle.Render("("+fw.Language+")"))
	}

	fmt.Fprintf(out, "\n%s\n", tipMsgStyle.Render(fmt.Sprintf("Total: %d languages, %d frameworks", len(languages), len(frameworks))))
	return nil
}
