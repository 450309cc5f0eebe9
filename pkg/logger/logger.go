package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charmbracelet/log with detection domain events
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at the named level ("debug", "info", "warn", "error")
func New(w io.Writer, level string) (*Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "guesslex",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return &Logger{Logger: l}, nil
}

// NewJSON creates a logger emitting JSON lines, for machine-readable runs
func NewJSON(w io.Writer, level string) (*Logger, error) {
	l, err := New(w, level)
	if err != nil {
		return nil, err
	}
	l.SetFormatter(log.JSONFormatter)
	return l, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{Logger: log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})}
}

// Registry Events
func (l *Logger) RegistryLoaded(languages, frameworks int) {
	l.Debug("Pattern registry compiled",
		"event", "registry.loaded",
		"languages", languages,
		"frameworks", frameworks,
	)
}

func (l *Logger) RegistryInvalid(err error) {
	l.Error("Pattern registry rejected",
		"event", "registry.invalid",
		"err", err,
	)
}

// Analysis Events
func (l *Logger) AnalysisCompleted(source, language, framework string, confidence float64) {
	keyvals := []interface{}{
		"event", "analysis.completed",
		"source", source,
		"language", language,
		"confidence", fmt.Sprintf("%.2f", confidence),
	}
	if framework != "" {
		keyvals = append(keyvals, "framework", framework)
	}
	l.Debug("Analysis completed", keyvals...)
}

func (l *Logger) PatternTimedOut(set, pattern string) {
	l.Warn("Pattern evaluation timed out",
		"event", "analysis.pattern_timeout",
		"set", set,
		"pattern", pattern,
	)
}

func (l *Logger) FileReadFailed(path string, err error) {
	l.Warn("Could not read file",
		"event", "analysis.read_failed",
		"path", path,
		"err", err,
	)
}

// Scan Events
func (l *Logger) ScanStarted(dir string, recursive bool, workers int) {
	l.Info("Directory scan started",
		"event", "scan.started",
		"dir", dir,
		"recursive", recursive,
		"workers", workers,
	)
}

func (l *Logger) ScanFileSkipped(path, reason string) {
	l.Debug("File skipped",
		"event", "scan.file_skipped",
		"path", path,
		"reason", reason,
	)
}

func (l *Logger) ScanCompleted(found, analyzed int, elapsed time.Duration) {
	l.Info("Directory scan completed",
		"event", "scan.completed",
		"files_found", found,
		"files_analyzed", analyzed,
		"elapsed", elapsed.Round(time.Millisecond),
	)
}

// Configuration Events
func (l *Logger) ConfigLoaded(path string, fromFile bool) {
	l.Debug("Configuration loaded",
		"event", "config.loaded",
		"path", path,
		"from_file", fromFile,
	)
}
