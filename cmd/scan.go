package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"guesslex/cmd/ui/detection"
	"guesslex/cmd/ui/spinner"
	"guesslex/pkg/scanner"
)

var (
	scanRecursiveFlag   bool
	scanMinConfFlag     float64
	scanExtensionsFlag  []string
	scanExcludeFlag     []string
	scanWorkersFlag     int
	scanNoGitignoreFlag bool
)

var scanCmd = &cobra.Command{
	Use:   "scan DIRECTORY",
	Short: "Detect the language of every code file in a directory",
	Long: `Scan a directory and analyze each file whose extension matches.

Files below the minimum confidence are left out of the results. Directories such
as .git and node_modules are never entered.

Examples:
  guesslex scan .
  guesslex scan src -r -c 0.5 -e .py -e .go
  guesslex scan . -r --exclude "**/testdata/**" --json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("recursive") {
		cfg.Scan.Recursive = scanRecursiveFlag
	}
	if flags.Changed("min-confidence") {
		cfg.Scan.MinConfidence = scanMinConfFlag
	}
	if flags.Changed("extensions") {
		cfg.Scan.Extensions = scanExtensionsFlag
	}
	if flags.Changed("exclude") {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, scanExcludeFlag...)
	}
	if flags.Changed("workers") {
		cfg.Scan.Workers = scanWorkersFlag
	}
	if scanNoGitignoreFlag {
		cfg.Scan.RespectGitignore = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	det, err := newDetector(cfg, log)
	if err != nil {
		return err
	}

	opts := scanner.OptionsFromConfig(cfg.Scan)

	interactive := !jsonOutput && isTerminal()
	var spin *spinner.Spinner
	if interactive {
		printLogo()
		spin = spinner.Start("Scanning "+args[0]+"...", os.Stderr)
		opts.Progress = func(done, total int, file string) {
			spin.Update(fmt.Sprintf("Analyzing %d/%d %s", done, total, file))
		}
	}

	s, err := scanner.New(det, opts, log)
	if err != nil {
		if spin != nil {
			spin.Stop()
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := s.Scan(ctx, args[0])
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, e := range report.Results {
		fmt.Fprintln(out, detection.RenderScanEntry(e))
	}
	fmt.Fprintf(out, "\n%s\n", detection.RenderScanSummary(report))
	return nil
}

func init() {
	scanCmd.Flags().BoolVarP(&scanRecursiveFlag, "recursive", "r", false, "Scan subdirectories")
	scanCmd.Flags().Float64VarP(&scanMinConfFlag, "min-confidence", "c", 0.3, "Minimum confidence to report")
	scanCmd.Flags().StringArrayVarP(&scanExtensionsFlag, "extensions", "e", nil, "File extension to include (repeatable)")
	scanCmd.Flags().StringArrayVar(&scanExcludeFlag, "exclude", nil, "Glob of paths to skip (repeatable)")
	scanCmd.Flags().IntVar(&scanWorkersFlag, "workers", 4, "Files analyzed concurrently")
	scanCmd.Flags().BoolVar(&scanNoGitignoreFlag, "no-gitignore", false, "Do not honor .gitignore files")
}
