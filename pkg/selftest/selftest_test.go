package selftest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"guesslex/pkg/detector"
)

func TestBuiltinCasesPass(t *testing.T) {
	d, err := detector.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() error: %v", err)
	}

	report := Run(d, Cases)
	if report.Total != len(Cases) {
		t.Fatalf("expected %d cases, got %d", len(Cases), report.Total)
	}
	for _, o := range report.Results {
		if !o.Passed {
			t.Errorf("%s: expected %s, got %s", o.TestName, o.ExpectedLanguage, o.DetectedLanguage)
		}
	}
	if !report.AllPassed() {
		t.Errorf("expected all cases to pass, got %d/%d", report.Passed, report.Total)
	}
}

func TestRunComparesFrameworkOnlyWhenExpected(t *testing.T) {
	d, err := detector.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() error: %v", err)
	}

	cases := []Case{
		{Name: "no framework expected", Code: Cases[4].Code, Filename: "models.py", ExpectedLanguage: "python"},
		{Name: "wrong framework", Code: Cases[4].Code, Filename: "models.py", ExpectedLanguage: "python", ExpectedFramework: "flask"},
		{Name: "wrong language", Code: Cases[0].Code, Filename: "test.py", ExpectedLanguage: "ruby"},
	}

	report := Run(d, cases)
	want := []bool{true, false, false}
	for i, o := range report.Results {
		if o.Passed != want[i] {
			t.Errorf("%s: expected passed=%v, got %v", o.TestName, want[i], o.Passed)
		}
	}
	if report.Passed != 1 || report.AllPassed() {
		t.Errorf("expected 1/3 passed, got %d/%d", report.Passed, report.Total)
	}
}

func TestWriteJSON(t *testing.T) {
	d, err := detector.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() error: %v", err)
	}
	report := Run(d, Cases[:1])

	path := filepath.Join(t.TempDir(), "report.json")
	if err := report.WriteJSON(path); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Passed  int              `json:"passed"`
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if len(decoded.Results) != 1 {
		t.Fatalf("expected one result, got %d", len(decoded.Results))
	}
	if v, ok := decoded.Results[0]["expected_framework"]; !ok || v != nil {
		t.Errorf("expected a null expected_framework, got %v (present=%v)", v, ok)
	}
	if decoded.Results[0]["detected_language"] != "python" {
		t.Errorf("expected python, got %v", decoded.Results[0]["detected_language"])
	}
}
