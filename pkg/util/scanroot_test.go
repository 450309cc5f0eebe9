package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanRoot(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		setupFunc func() string
		errorMsg  string
	}{
		{
			name: "directory",
			setupFunc: func() string {
				dir := filepath.Join(tmpDir, "src")
				os.Mkdir(dir, 0755)
				return dir
			},
		},
		{
			name: "trailing slash",
			setupFunc: func() string {
				dir := filepath.Join(tmpDir, "lib")
				os.Mkdir(dir, 0755)
				return dir + "/"
			},
		},
		{
			name:      "empty argument",
			setupFunc: func() string { return "  " },
			errorMsg:  "no scan directory given",
		},
		{
			name: "missing directory",
			setupFunc: func() string {
				return filepath.Join(tmpDir, "missing")
			},
			errorMsg: "does not exist",
		},
		{
			name: "source file",
			setupFunc: func() string {
				file := filepath.Join(tmpDir, "main.go")
				os.WriteFile(file, []byte("package main"), 0644)
				return file
			},
			errorMsg: "guesslex analyze --file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanRoot(tt.setupFunc())

			if tt.errorMsg != "" {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain '%s', got: %v", tt.errorMsg, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !filepath.IsAbs(result) {
				t.Errorf("Expected absolute path, got: %s", result)
			}
		})
	}
}

func TestScanRootRelative(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, "pkg"), 0755); err != nil {
		t.Fatal(err)
	}
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	result, err := ScanRoot("./pkg/../pkg/.")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "pkg"); result != want {
		t.Errorf("Expected '%s', got '%s'", want, result)
	}
}
