package main

import (
	"bytes"
	"errors"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_RendersPNG(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"batch default", []string{"-scene", "default", "-width", "32", "-height", "18"}},
		{"progressive default", []string{"-scene", "default", "-width", "32", "-height", "18", "-mode", "progressive", "-chunk", "7", "-workers", "2"}},
		{"cornell per-light", []string{"-scene", "cornell", "-width", "32", "-height", "18", "-shadow", "per-light"}},
		{"json scene file", []string{"-scene", "scenes/stripe-room.json", "-width", "32", "-height", "18"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "nested", "render.png")
			var stdout bytes.Buffer

			if err := run(append(tt.args, "-out", out), &stdout); err != nil {
				t.Fatalf("run() error = %v\n%s", err, stdout.String())
			}

			file, err := os.Open(out)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			defer file.Close()

			img, err := png.Decode(file)
			if err != nil {
				t.Fatalf("Invalid PNG: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 18 {
				t.Errorf("Expected 32x18 image, got %dx%d", b.Dx(), b.Dy())
			}
			if !strings.Contains(stdout.String(), "Render saved as "+out) {
				t.Errorf("Expected save message, got:\n%s", stdout.String())
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "nonexistent"}},
		{"missing scene file", []string{"-scene", "scenes/nonexistent.json"}},
		{"unknown mode", []string{"-mode", "sideways"}},
		{"tui without progressive", []string{"-tui"}},
		{"zero chunk", []string{"-mode", "progressive", "-chunk", "0"}},
		{"negative workers", []string{"-workers", "-1"}},
		{"unknown shadow mode", []string{"-shadow", "soft", "-width", "16", "-height", "9"}},
		{"unknown flag", []string{"-samples", "50"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			out := filepath.Join(t.TempDir(), "render.png")
			if err := run(append(tt.args, "-out", out), &stdout); err == nil {
				t.Errorf("Expected error for args %v", tt.args)
			}
			if _, err := os.Stat(out); err == nil {
				t.Errorf("Expected no output file for args %v", tt.args)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout bytes.Buffer
	err := run([]string{"-help"}, &stdout)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}

	for _, want := range []string{"Usage:", "-scene", "default", "cornell", "spheres"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Expected %q in help output", want)
		}
	}
}

func TestOutputDir(t *testing.T) {
	tests := []struct {
		sceneID string
		want    string
	}{
		{"default", filepath.Join("output", "default")},
		{"cornell", filepath.Join("output", "cornell")},
		{"file:stripe-room", filepath.Join("output", "stripe-room")},
		{"scenes/sheared.json", filepath.Join("output", "sheared")},
		{"scenes/subdir/my-scene.json", filepath.Join("output", "my-scene")},
		{"", filepath.Join("output", "scene")},
	}

	for _, tt := range tests {
		t.Run(tt.sceneID, func(t *testing.T) {
			if got := outputDir(tt.sceneID); got != tt.want {
				t.Errorf("outputDir(%q) = %q, want %q", tt.sceneID, got, tt.want)
			}
		})
	}
}
