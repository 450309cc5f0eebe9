// Package selftest holds a small set of known samples and checks the detector
// against them
package selftest

import (
	"encoding/json"
	"fmt"
	"os"

	"guesslex/pkg/config"
	"guesslex/pkg/detector"
)

// Case is one known sample
type Case struct {
	Name              string
	Code              string
	Filename          string
	ExpectedLanguage  string
	ExpectedFramework string
}

// Cases are the built-in samples
var Cases = []Case{
	{
		Name:             "Python function",
		Code:             "def calculate_sum(a: int, b: int) -> int:\n    return a + b\n\nif __name__ == '__main__':\n    print(calculate_sum(5, 3))",
		Filename:         "test.py",
		ExpectedLanguage: "python",
	},
	{
		Name:             "JavaScript ES6",
		Code:             "const greeting = (name) => {\n    console.log(`Hello, ${name}!`);\n};\n\ngreeting('World');",
		Filename:         "test.js",
		ExpectedLanguage: "javascript",
	},
	{
		Name:              "React Component",
		Code:              "import React, { useState } from 'react';\n\nfunction Counter() {\n    const [count, setCount] = useState(0);\n    return <div onClick={() => setCount(count + 1)}>{count}</div>;\n}",
		Filename:          "Counter.jsx",
		ExpectedLanguage:  "javascript",
		ExpectedFramework: "react",
	},
	{
		Name:             "TypeScript Interface",
		Code:             "interface User {\n    id: number;\n    name: string;\n    email?: string;\n}\n\nfunction getUser(id: number): User {\n    return { id, name: 'John' };\n}",
		Filename:         "user.ts",
		ExpectedLanguage: "typescript",
	},
	{
		Name:              "Django Model",
		Code:              "from django.db import models\nfrom django.contrib.auth.models import User\n\nclass Post(models.Model):\n    title = models.CharField(max_length=200)\n    author = models.ForeignKey(User, on_delete=models.CASCADE)\n    created_at = models.DateTimeField(auto_now_add=True)",
		Filename:          "models.py",
		ExpectedLanguage:  "python",
		ExpectedFramework: "django",
	},
	{
		Name:             "Java Class",
		Code:             "public class Calculator {\n    public static void main(String[] args) {\n        System.out.println(\"Hello World\");\n    }\n    \n    public int add(int a, int b) {\n        return a + b;\n    }\n}",
		Filename:         "Calculator.java",
		ExpectedLanguage: "java",
	},
}

// Outcome is the result of running one case
type Outcome struct {
	TestName          string  `json:"test_name"`
	ExpectedLanguage  string  `json:"expected_language"`
	ExpectedFramework *string `json:"expected_framework"`
	DetectedLanguage  string  `json:"detected_language"`
	DetectedFramework *string `json:"detected_framework"`
	Confidence        float64 `json:"confidence"`
	Passed            bool    `json:"passed"`
}

// Report summarizes a run
type Report struct {
	Passed  int       `json:"passed"`
	Total   int       `json:"total"`
	Results []Outcome `json:"results"`
}

// AllPassed reports whether every case passed
func (r *Report) AllPassed() bool {
	return r.Passed == r.Total
}

// Run checks every case. The framework is only compared when a case expects
// one
func Run(d *detector.Detector, cases []Case) *Report {
	report := &Report{Total: len(cases), Results: make([]Outcome, 0, len(cases))}

	for _, c := range cases {
		res := d.AnalyzeCode(c.Code, c.Filename)

		passed := res.Language == c.ExpectedLanguage
		if c.ExpectedFramework != "" && res.Framework != c.ExpectedFramework {
			passed = false
		}
		if passed {
			report.Passed++
		}

		report.Results = append(report.Results, Outcome{
			TestName:          c.Name,
			ExpectedLanguage:  c.ExpectedLanguage,
			ExpectedFramework: optional(c.ExpectedFramework),
			DetectedLanguage:  res.Language,
			DetectedFramework: optional(res.Framework),
			Confidence:        res.Confidence,
			Passed:            passed,
		})
	}
	return report
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteJSON writes the report to path
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode test report: %w", err)
	}
	if err := os.WriteFile(path, data, config.PermReportFile); err != nil {
		return fmt.Errorf("failed to write test report: %w", err)
	}
	return nil
}
