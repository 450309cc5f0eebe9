package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"guesslex/cmd/ui/detection"
	"guesslex/pkg/detector"
)

var (
	analyzeFileFlag     string
	analyzeVerboseFlag  bool
	analyzeFilenameFlag string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [CODE]",
	Short: "Detect the language and framework of a code snippet",
	Long: `Analyze source code and report its language, framework and confidence.

Input is taken from the CODE argument, from --file, or from stdin. When output
is not a terminal a plain-text report with the top evidence is printed instead.

Examples:
  guesslex analyze "def hello(): print('hi')"
  guesslex analyze --file src/app.ts --verbose
  cat main.go | guesslex analyze --filename main.go --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// analyzeOutput is the JSON shape of an analysis
type analyzeOutput struct {
	Source string `json:"source"`
	detector.Result
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFileFlag != "" && len(args) > 0 {
		return errors.New("pass either CODE or --file, not both")
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	det, err := newDetector(cfg, log)
	if err != nil {
		return err
	}

	var (
		res    detector.Result
		source string
	)
	switch {
	case analyzeFileFlag != "":
		if _, err := os.Stat(analyzeFileFlag); err != nil {
			return fmt.Errorf("cannot access file: %w", err)
		}
		res = det.AnalyzeFile(analyzeFileFlag)
		source = "File: " + analyzeFileFlag
	case len(args) == 1:
		res = det.AnalyzeCode(args[0], analyzeFilenameFlag)
		source = "Direct input"
	default:
		if cmd.InOrStdin() == os.Stdin && stdinIsTerminal() {
			return errors.New("no code provided: pass CODE, use --file, or pipe code on stdin")
		}
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return errors.New("no code provided")
		}
		res = det.AnalyzeCode(string(data), analyzeFilenameFlag)
		source = "stdin"
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(analyzeOutput{Source: source, Result: res})
	}

	if !isTerminal() {
		fmt.Fprintf(out, "Source: %s\n%s\n", source, detector.FormatResult(res))
		return nil
	}

	limit := 0
	if analyzeVerboseFlag || cfg.Analyze.Verbose {
		limit = cfg.Analyze.EvidenceLimit
	}

	printLogo()
	fmt.Fprintln(out, detection.Render(res, source, limit))
	if limit == 0 && len(res.Evidence) > 0 {
		fmt.Fprintf(out, "\n%s\n", tipMsgStyle.Render("Tip: Use --verbose to see the evidence behind this result"))
	}
	return nil
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFileFlag, "file", "f", "", "Analyze code from a file")
	analyzeCmd.Flags().BoolVarP(&analyzeVerboseFlag, "verbose", "v", false, "Show the evidence behind the result")
	analyzeCmd.Flags().StringVar(&analyzeFilenameFlag, "filename", "", "Filename hint for CODE or stdin input")
}
