package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"guesslex/pkg/selftest"
)

var (
	testOutputFlag string

	testPassStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	testFailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	testLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	testMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the built-in sample checks against the detector",
	Long: `Run the detector over a fixed set of known samples and report which ones it
classifies correctly. Exits non-zero when any sample fails.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	det, err := newDetector(cfg, log)
	if err != nil {
		return err
	}

	report := selftest.Run(det, selftest.Cases)

	if testOutputFlag != "" {
		if err := report.WriteJSON(testOutputFlag); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for i, o := range report.Results {
			fmt.Fprintf(out, "\n%d. %s\n", i+1, testLabelStyle.Render(o.TestName))
			if o.Passed {
				fmt.Fprintf(out, "   %s - %s\n", testPassStyle.Render("PASSED"), o.DetectedLanguage)
				if o.DetectedFramework != nil {
					fmt.Fprintf(out, "      Framework: %s\n", *o.DetectedFramework)
				}
			} else {
				fmt.Fprintf(out, "   %s\n", testFailStyle.Render("FAILED"))
				fmt.Fprintf(out, "      Expected: %s\n", o.ExpectedLanguage)
				fmt.Fprintf(out, "      Got: %s\n", o.DetectedLanguage)
				if o.ExpectedFramework != nil {
					fmt.Fprintf(out, "      Expected framework: %s\n", *o.ExpectedFramework)
					fmt.Fprintf(out, "      Got framework: %s\n", deref(o.DetectedFramework))
				}
			}
			fmt.Fprintf(out, "      %s\n", testMutedStyle.Render(fmt.Sprintf("Confidence: %.1f%%", o.Confidence*100)))
		}

		fmt.Fprintf(out, "\nTests passed: %d/%d (%.1f%%)\n", report.Passed, report.Total, float64(report.Passed)/float64(report.Total)*100)
		if testOutputFlag != "" {
			fmt.Fprintf(out, "%s\n", testMutedStyle.Render("Report written to "+testOutputFlag))
		}
	}

	if !report.AllPassed() {
		return fmt.Errorf("%d of %d tests failed", report.Total-report.Passed, report.Total)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "none"
	}
	return *s
}

func init() {
	testCmd.Flags().StringVarP(&testOutputFlag, "output", "o", "", "Write a JSON report to this file")
}
