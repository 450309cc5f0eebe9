package detection

import (
	"strings"
	"testing"

	"guesslex/pkg/detector"
	"guesslex/pkg/scanner"
)

func TestRender(t *testing.T) {
	res := detector.Result{
		Language:   "python",
		Confidence: 0.876,
		Framework:  "django",
		Evidence:   []string{"first clue", "second clue", "third clue"},
	}

	tests := []struct {
		name    string
		limit   int
		want    []string
		notWant []string
	}{
		{
			name:    "evidence hidden",
			limit:   0,
			want:    []string{"PYTHON", "87.6%", "DJANGO", "Very High"},
			notWant: []string{"Evidence:", "first clue"},
		},
		{
			name:    "evidence limited",
			limit:   2,
			want:    []string{"Evidence:", "first clue", "second clue", "1 more"},
			notWant: []string{"third clue"},
		},
		{
			name:  "all evidence",
			limit: 15,
			want:  []string{"third clue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(res, "inline", tt.limit)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in output:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("did not expect %q in output:\n%s", w, out)
				}
			}
		})
	}
}

func TestRenderUnknown(t *testing.T) {
	out := Render(detector.Result{Language: detector.Unknown, Evidence: []string{"Empty code"}}, "stdin", 15)
	for _, w := range []string{"UNKNOWN", "0.0%", "Low", "Empty code"} {
		if !strings.Contains(out, w) {
			t.Errorf("expected %q in output:\n%s", w, out)
		}
	}
	if strings.Contains(out, "Framework:") {
		t.Errorf("unexpected framework line:\n%s", out)
	}
}

func TestRenderScan(t *testing.T) {
	line := RenderScanEntry(scanner.Entry{File: "app/models.py", Language: "python", Confidence: 1, Framework: "django"})
	for _, w := range []string{"app/models.py", "PYTHON", "(django)", "100.0%"} {
		if !strings.Contains(line, w) {
			t.Errorf("expected %q in %q", w, line)
		}
	}

	summary := RenderScanSummary(&scanner.Report{
		Summary: scanner.Summary{Directory: ".", FilesFound: 4, FilesAnalyzed: 3, MinConfidence: 0.3},
		Distribution: []scanner.LanguageCount{
			{Language: "go", Files: 2, Percent: 66.66666666666667},
			{Language: "rust", Files: 1, Percent: 33.333333333333336},
		},
	})
	for _, w := range []string{"4", "3", "30.0%", "GO", "2 files", "66.7%", "RUST"} {
		if !strings.Contains(summary, w) {
			t.Errorf("expected %q in summary:\n%s", w, summary)
		}
	}
}
