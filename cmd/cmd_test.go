package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"guesslex/pkg/selftest"
)

// run executes the root command with args and returns what it wrote to stdout.
// Flag state lives in package globals, so it is reset before every run
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CI", "true")
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	jsonOutput, configPath, logLevel, noColor = false, "", "", false
	analyzeFileFlag, analyzeVerboseFlag, analyzeFilenameFlag = "", false, ""
	scanRecursiveFlag, scanMinConfFlag, scanWorkersFlag, scanNoGitignoreFlag = false, 0.3, 4, false
	testOutputFlag = ""
	configInitForce = false

	var clear func(c *cobra.Command)
	clear = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			clear(sub)
		}
	}
	clear(rootCmd)
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	c := selftest.Cases[0]
	out, err := run(t, "", "analyze", c.Code, "--filename", c.Filename, "--json")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var got struct {
		Source     string   `json:"source"`
		Language   string   `json:"language"`
		Confidence float64  `json:"confidence"`
		Evidence   []string `json:"evidence"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Source != "Direct input" {
		t.Errorf("Expected source 'Direct input', got %q", got.Source)
	}
	if got.Language != c.ExpectedLanguage {
		t.Errorf("Expected %s, got %s", c.ExpectedLanguage, got.Language)
	}
	if got.Confidence <= 0 || len(got.Evidence) == 0 {
		t.Errorf("Expected a scored result with evidence, got %+v", got)
	}
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	c := selftest.Cases[5]
	out, err := run(t, c.Code, "analyze", "--filename", c.Filename, "--json")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, `"source": "stdin"`) {
		t.Errorf("Expected stdin source, got:\n%s", out)
	}
	if !strings.Contains(out, `"language": "java"`) {
		t.Errorf("Expected java, got:\n%s", out)
	}
}

func TestAnalyzeCommand_File(t *testing.T) {
	c := selftest.Cases[3]
	path := filepath.Join(t.TempDir(), c.Filename)
	if err := os.WriteFile(path, []byte(c.Code), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "analyze", "--file", path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for _, want := range []string{"Source: File: " + path, "Language: TYPESCRIPT", "Confidence: ", "\n\nEvidence:\n  • "} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "╭") {
		t.Errorf("Expected plain text when stdout is not a terminal, got:\n%s", out)
	}
}

func TestAnalyzeCommand_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"code and file", "", []string{"analyze", "x = 1", "--file", "x.py"}},
		{"missing file", "", []string{"analyze", "--file", "does-not-exist.py"}},
		{"empty stdin", "  \n", []string{"analyze"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.stdin, tt.args...); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestInfoCommand_JSON(t *testing.T) {
	out, err := run(t, "", "info", "--json")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}

	var got struct {
		Languages  []string        `json:"languages"`
		Frameworks []frameworkInfo `json:"frameworks"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got.Languages) != 17 || len(got.Frameworks) != 9 {
		t.Errorf("Expected 17 languages and 9 frameworks, got %d and %d", len(got.Languages), len(got.Frameworks))
	}
	if got.Languages[0] != "c" {
		t.Errorf("Expected sorted languages starting with c, got %v", got.Languages)
	}
	for _, fw := range got.Frameworks {
		if fw.Name == "react" && fw.Language != "javascript" {
			t.Errorf("Expected react to belong to javascript, got %s", fw.Language)
		}
	}
}

func TestInfoCommand_Text(t *testing.T) {
	out, err := run(t, "", "info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"Supported Languages (17):", "PYTHON", "DJANGO", "Total: 17 languages, 9 frameworks"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output", want)
		}
	}
}

func TestTestCommand_WritesReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "results.json")
	out, err := run(t, "", "test", "-o", report)
	if err != nil {
		t.Fatalf("test command failed: %v", err)
	}
	if !strings.Contains(out, "Tests passed: 6/6 (100.0%)") {
		t.Errorf("Expected all cases to pass, got:\n%s", out)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var parsed selftest.Report
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if parsed.Total != 6 || parsed.Passed != 6 {
		t.Errorf("Expected 6/6 in report, got %d/%d", parsed.Passed, parsed.Total)
	}
}

func TestScanCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	for _, c := range selftest.Cases[:2] {
		if err := os.WriteFile(filepath.Join(dir, c.Filename), []byte(c.Code), 0644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := run(t, "", "scan", dir, "--json")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !strings.Contains(out, `"files_found": 2`) {
		t.Errorf("Expected two files found, got:\n%s", out)
	}
}

func TestScanCommand_InvalidConfidence(t *testing.T) {
	if _, err := run(t, "", "scan", t.TempDir(), "-c", "1.5"); err == nil {
		t.Error("Expected an error for confidence above 1")
	}
}

func TestConfigCommand_InitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	if _, err := run(t, "", "config", "init", "--config", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := run(t, "", "config", "init", "--config", path); err == nil {
		t.Error("Expected init to refuse to overwrite")
	}
	if _, err := run(t, "", "config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("Expected --force to overwrite, got: %v", err)
	}

	out, err := run(t, "", "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"[scan]", "min_confidence", "[engine]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}
