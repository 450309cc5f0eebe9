package scorer

import (
	"math"
	"testing"
	"time"

	"guesslex/pkg/patterns"
)

func toyRegistry(t *testing.T, opts ...patterns.Option) *patterns.Registry {
	t.Helper()
	r, err := patterns.New(patterns.Tables{
		Languages: []patterns.LanguageRules{
			{
				Name:         "toy",
				Patterns:     []string{`foo`, `qux`},
				Keywords:     []string{"BAR", "missing"},
				AntiPatterns: []string{`baz`},
				Weight:       1.0,
			},
			{
				Name:     "heavy",
				Patterns: []string{`foo`},
				Weight:   2.0,
			},
		},
		Frameworks: []patterns.FrameworkRules{
			{Name: "toyfw", Language: "toy", Patterns: []string{`foo`}, Keywords: []string{"bar"}, Weight: 1.2},
		},
	}, opts...)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return r
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreLanguageProfile(t *testing.T) {
	r := toyRegistry(t)
	set, _ := r.Language("toy")

	tests := []struct {
		name      string
		text      string
		wantScore float64
		wantPat   int
		wantKw    int
		wantAnti  int
	}{
		{"patterns and keyword", "foo foo bar", 2*0.6 + 0.4, 2, 1, 0},
		{"keyword is case-insensitive substring", "foobar", 0.6 + 0.4, 1, 1, 0},
		{"keyword counts presence once", "bar bar bar", 0.4, 0, 1, 0},
		{"anti-pattern penalty", "foo foo bar baz", 2*0.6 + 0.4 - 0.3, 2, 1, 1},
		{"floor at zero", "foo baz baz baz baz", 0, 1, 0, 4},
		{"nothing", "hello world", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(NewSource(tt.text), set, LanguageProfile)
			if !approx(res.Score, tt.wantScore) {
				t.Errorf("expected score %v, got %v", tt.wantScore, res.Score)
			}
			if res.PatternMatches != tt.wantPat || res.KeywordMatches != tt.wantKw || res.AntiMatches != tt.wantAnti {
				t.Errorf("expected counts %d/%d/%d, got %d/%d/%d",
					tt.wantPat, tt.wantKw, tt.wantAnti,
					res.PatternMatches, res.KeywordMatches, res.AntiMatches)
			}
			if res.Score < 0 {
				t.Errorf("score must never be negative, got %v", res.Score)
			}
		})
	}
}

func TestScoreEvidenceOrder(t *testing.T) {
	r := toyRegistry(t)
	set, _ := r.Language("toy")

	res := Score(NewSource("baz qux foo foo bar"), set, LanguageProfile)

	want := []string{
		"Pattern match: foo (2 times)",
		"Pattern match: qux (1 times)",
		"Keyword found: BAR",
		"Anti-pattern found: baz (-1)",
	}
	if len(res.Evidence) != len(want) {
		t.Fatalf("expected evidence %v, got %v", want, res.Evidence)
	}
	for i := range want {
		if res.Evidence[i] != want[i] {
			t.Errorf("evidence[%d]: expected %q, got %q", i, want[i], res.Evidence[i])
		}
	}
}

func TestScoreAppliesSetWeight(t *testing.T) {
	r := toyRegistry(t)
	set, _ := r.Language("heavy")

	res := Score(NewSource("foo foo"), set, LanguageProfile)
	if !approx(res.Score, 2*0.6*2.0) {
		t.Errorf("expected weighted score %v, got %v", 2*0.6*2.0, res.Score)
	}
}

func TestScoreFrameworkProfile(t *testing.T) {
	r := toyRegistry(t)
	set, _ := r.Framework("toyfw")

	res := Score(NewSource("foo bar baz"), set, FrameworkProfile)
	if !approx(res.Score, (0.7+0.3)*1.2) {
		t.Errorf("expected %v, got %v", (0.7+0.3)*1.2, res.Score)
	}
	want := []string{"Framework pattern: foo", "Framework keyword: bar"}
	if len(res.Evidence) != len(want) {
		t.Fatalf("expected evidence %v, got %v", want, res.Evidence)
	}
	for i := range want {
		if res.Evidence[i] != want[i] {
			t.Errorf("evidence[%d]: expected %q, got %q", i, want[i], res.Evidence[i])
		}
	}
}

func TestScoreSkipsAntiPatternsWhenDisabled(t *testing.T) {
	r := toyRegistry(t)
	set, _ := r.Language("toy")

	res := Score(NewSource("foo baz"), set, FrameworkProfile)
	if res.AntiMatches != 0 {
		t.Errorf("expected anti-patterns to be skipped, got %d", res.AntiMatches)
	}
	if !approx(res.Score, 0.7) {
		t.Errorf("expected 0.7, got %v", res.Score)
	}
}

func TestScoreRecordsTimeouts(t *testing.T) {
	r, err := patterns.New(patterns.Tables{
		Languages: []patterns.LanguageRules{
			{Name: "slow", Patterns: []string{`(a+)+$`}, Keywords: []string{"a"}, Weight: 1},
		},
	}, patterns.WithMatchTimeout(time.Millisecond))
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	set, _ := r.Language("slow")

	text := ""
	for i := 0; i < 40; i++ {
		text += "a"
	}
	text += "!"

	res := Score(NewSource(text), set, LanguageProfile)
	if len(res.TimedOut) != 1 {
		t.Fatalf("expected one timed out pattern, got %v", res.TimedOut)
	}
	if res.PatternMatches != 0 {
		t.Errorf("timed out pattern must contribute nothing, got %d", res.PatternMatches)
	}
	if !approx(res.Score, 0.4) {
		t.Errorf("expected keyword-only score 0.4, got %v", res.Score)
	}
}
