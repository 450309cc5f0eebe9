package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"guesslex/pkg/config"
	"guesslex/pkg/detector"
	"guesslex/pkg/logger"
)

const Version = "1.0.0"

var (
	jsonOutput bool
	configPath string
	logLevel   string
	noColor    bool

	logoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	tipMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const Logo = `
 ██████╗ ██╗   ██╗███████╗███████╗███████╗██╗     ███████╗██╗  ██╗
██╔════╝ ██║   ██║██╔════╝██╔════╝██╔════╝██║     ██╔════╝╚██╗██╔╝
██║  ███╗██║   ██║█████╗  ███████╗███████╗██║     █████╗   ╚███╔╝
██║   ██║██║   ██║██╔══╝  ╚════██║╚════██║██║     ██╔══╝   ██╔██╗
╚██████╔╝╚██████╔╝███████╗███████║███████║███████╗███████╗██╔╝ ██╗
 ╚═════╝  ╚═════╝ ╚══════╝╚══════╝╚══════╝╚══════╝╚══════╝╚═╝  ╚═╝
`

var rootCmd = &cobra.Command{
	Use:   "guesslex",
	Short: "Guess the language and framework of a piece of source code",
	Long: Logo + `
Guesslex scores source text against hand-curated pattern tables for 17 languages
and 9 frameworks and reports the best match with the evidence behind it.

Analyze a snippet, a file or stdin, scan whole directories, or run the built-in
sample checks.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every analysis command
// shares. The --log-level flag overrides the config file
func setup() (*config.Config, *logger.Logger, error) {
	cfg, fromFile, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}

	var log *logger.Logger
	if jsonOutput {
		log, err = logger.NewJSON(os.Stderr, level)
	} else {
		log, err = logger.New(os.Stderr, level)
	}
	if err != nil {
		return nil, nil, err
	}

	log.ConfigLoaded(resolvedConfigPath(), fromFile)
	return cfg, log, nil
}

func newDetector(cfg *config.Config, log *logger.Logger) (*detector.Detector, error) {
	return detector.NewDefault(
		detector.WithLogger(log),
		detector.WithMatchTimeout(cfg.Engine.MatchTimeout),
	)
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigPath()
}

func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func printLogo() {
	fmt.Printf("%s\n", logoStyle.Render(Logo))
}

func init() {
	rootCmd.SetVersionTemplate("guesslex version {{.Version}}\n")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.guesslex/config.ini)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}
