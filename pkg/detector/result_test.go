package detector

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{1.0, "very high"},
		{0.8, "very high"},
		{0.79, "high"},
		{0.6, "high"},
		{0.5, "medium"},
		{0.4, "medium"},
		{0.39, "low"},
		{0, "low"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.confidence), func(t *testing.T) {
			if got := Level(tt.confidence); got != tt.want {
				t.Errorf("Level(%v) = %q, want %q", tt.confidence, got, tt.want)
			}
		})
	}
}

func TestFormatResult(t *testing.T) {
	evidence := make([]string, 12)
	for i := range evidence {
		evidence[i] = fmt.Sprintf("line %d", i+1)
	}

	out := FormatResult(Result{Language: "python", Confidence: 0.876, Framework: "django", Evidence: evidence})

	for _, want := range []string{"Language: PYTHON", "Confidence: 87.6%", "Framework: DJANGO", "line 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "line 11") {
		t.Errorf("expected evidence to stop at %d lines:\n%s", DefaultEvidenceLimit, out)
	}

	plain := FormatResult(unknown("Empty code"))
	if strings.Contains(plain, "Framework") {
		t.Errorf("unexpected framework line:\n%s", plain)
	}
}

func TestResultJSON(t *testing.T) {
	b, err := json.Marshal(Result{Language: "go", Confidence: 1, Evidence: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "framework") {
		t.Errorf("framework must be omitted when empty: %s", b)
	}

	b, err = json.Marshal(Result{Language: "python", Confidence: 1, Framework: "flask", Evidence: []string{"x"}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"framework":"flask"`) {
		t.Errorf("expected framework field: %s", b)
	}
}
