package main

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/config"
	"github.com/example/retouch/internal/ui"
)

func testRoot() *root {
	return &root{program: "retouch", config: config.New()}
}

func TestEditRunLoadError(t *testing.T) {
	original := loadImageFn
	sentinel := errors.New("boom")
	loadImageFn = func(string) (*image.NRGBA, error) { return nil, sentinel }
	t.Cleanup(func() { loadImageFn = original })

	cmd := &editCmd{file: "missing.png", root: testRoot()}
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to load"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestEditRunClipboardError(t *testing.T) {
	original := readClipboardFn
	sentinel := errors.New("no display")
	readClipboardFn = func() (image.Image, error) { return nil, sentinel }
	t.Cleanup(func() { readClipboardFn = original })

	cmd := &editCmd{fromClipboard: true, root: testRoot()}
	err := cmd.Run()
	if err == nil || !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestEditRunLaunchesUI(t *testing.T) {
	originalLoad := loadImageFn
	loadImageFn = func(string) (*image.NRGBA, error) {
		return imaging.New(10, 10, color.NRGBA{A: 255}), nil
	}
	t.Cleanup(func() { loadImageFn = originalLoad })

	originalRun := runUIFn
	launched := false
	runUIFn = func(u *ui.UI) { launched = true }
	t.Cleanup(func() { runUIFn = originalRun })

	cmd := &editCmd{file: "in.png", root: testRoot()}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !launched {
		t.Fatal("UI was never started")
	}
}

func TestEditRejectsBadBrushColor(t *testing.T) {
	original := loadImageFn
	loadImageFn = func(string) (*image.NRGBA, error) {
		return imaging.New(10, 10, color.NRGBA{A: 255}), nil
	}
	t.Cleanup(func() { loadImageFn = original })

	cmd := &editCmd{file: "in.png", brushColor: "red", root: testRoot()}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for a non-hex brush color")
	}
}

func TestParseEditRejectsConflictingSources(t *testing.T) {
	_, err := parseEditCmd([]string{"-file", "a.png", "-from-clipboard"}, testRoot())
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "cannot be combined"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestApplyRunWritesOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	if err := imaging.Save(imaging.New(100, 50, color.NRGBA{R: 9, A: 255}), src); err != nil {
		t.Fatalf("seed image: %v", err)
	}
	plan := filepath.Join(dir, "plan.yaml")
	doc := "ops:\n  - op: rotate\n  - op: resize\n    width: 50\n"
	if err := os.WriteFile(plan, []byte(doc), 0o644); err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	out := filepath.Join(dir, "out.png")

	cmd := &applyCmd{plan: plan, file: src, output: out, root: testRoot()}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got.Bounds().Dx() != 50 || got.Bounds().Dy() != 25 {
		t.Fatalf("output %v, want 50x25", got.Bounds())
	}
}

func TestApplyRunFailingPlanNamesOp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	if err := imaging.Save(imaging.New(20, 20, color.NRGBA{A: 255}), src); err != nil {
		t.Fatalf("seed image: %v", err)
	}
	plan := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(plan, []byte("ops:\n  - op: sharpen\n"), 0o644); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	cmd := &applyCmd{plan: plan, file: src, output: filepath.Join(dir, "out.png"), root: testRoot()}
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "unknown op"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestApplyRunWithoutSource(t *testing.T) {
	dir := t.TempDir()
	plan := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(plan, []byte("ops:\n  - op: rotate\n"), 0o644); err != nil {
		t.Fatalf("seed plan: %v", err)
	}
	cmd := &applyCmd{plan: plan, root: testRoot()}
	err := cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "no source image") {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestParseApplyRequiresPlan(t *testing.T) {
	_, err := parseApplyCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestExportRunPDF(t *testing.T) {
	original := loadImageFn
	loadImageFn = func(string) (*image.NRGBA, error) {
		return imaging.New(32, 16, color.NRGBA{G: 200, A: 255}), nil
	}
	t.Cleanup(func() { loadImageFn = original })

	out := filepath.Join(t.TempDir(), "artifact.pdf")
	cmd := &exportCmd{file: "in.png", output: out, root: testRoot()}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatal("output is not a PDF stream")
	}
}

func TestExportRunShadowExpandsImage(t *testing.T) {
	original := loadImageFn
	loadImageFn = func(string) (*image.NRGBA, error) {
		return imaging.New(32, 16, color.NRGBA{R: 10, A: 255}), nil
	}
	t.Cleanup(func() { loadImageFn = original })

	out := filepath.Join(t.TempDir(), "shadowed.png")
	cmd := &exportCmd{file: "in.png", output: out, shadow: true, root: testRoot()}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got.Bounds().Dx() <= 32 || got.Bounds().Dy() <= 16 {
		t.Fatalf("expected drop shadow to expand the canvas, got %v", got.Bounds())
	}
}

func TestExportRunDataURL(t *testing.T) {
	original := loadImageFn
	loadImageFn = func(string) (*image.NRGBA, error) {
		return imaging.New(4, 4, color.NRGBA{B: 50, A: 255}), nil
	}
	t.Cleanup(func() { loadImageFn = original })

	cmd := &exportCmd{file: "in.png", dataURL: true, root: testRoot()}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestParseExportRequiresFile(t *testing.T) {
	_, err := parseExportCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "retouched.png"},
		{in: "photo.jpg", want: "photo-retouched.png"},
		{in: "dir/photo.png", want: "dir/photo-retouched.png"},
		{in: "noext", want: "noext-retouched.png"},
	}
	for _, tt := range tests {
		if got := defaultOutput(tt.in); got != tt.want {
			t.Errorf("defaultOutput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
