package config

import (
	"image/color"
	"strings"
	"testing"

	"github.com/example/retouch/internal/render"
)

func TestParse(t *testing.T) {
	input := `
save_dir = /tmp/edits
format = jpg
theme = dark

[brush]
color = #00FF00
size = 8

[text]
size = 48
color = #FFCC00
bold = true
align = center

[notify]
save = true
export = true
copy = false
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.SaveDir != "/tmp/edits" {
		t.Errorf("Expected save_dir '/tmp/edits', got '%s'", cfg.SaveDir)
	}
	if cfg.Format != "jpg" {
		t.Errorf("Expected format 'jpg', got '%s'", cfg.Format)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got '%s'", cfg.Theme)
	}

	if cfg.Brush.Color != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Unexpected brush color: %+v", cfg.Brush.Color)
	}
	if cfg.Brush.Size != 8 {
		t.Errorf("Expected brush size 8, got %g", cfg.Brush.Size)
	}

	if cfg.Text.Size != 48 || !cfg.Text.Bold || cfg.Text.Italic {
		t.Errorf("Unexpected text settings: %+v", cfg.Text)
	}
	if cfg.Text.Color != (color.RGBA{R: 255, G: 204, A: 255}) {
		t.Errorf("Unexpected text color: %+v", cfg.Text.Color)
	}
	if cfg.Text.Align != "center" {
		t.Errorf("Expected align 'center', got '%s'", cfg.Text.Align)
	}

	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing set\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Format != "png" {
		t.Errorf("Expected default format 'png', got '%s'", cfg.Format)
	}
	if cfg.Brush.Size != 4 {
		t.Errorf("Expected default brush size 4, got %g", cfg.Brush.Size)
	}
	if cfg.Text.Size != 32 {
		t.Errorf("Expected default text size 32, got %g", cfg.Text.Size)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []string{
		"format = bmp\n",
		"[brush]\ncolor = red\n",
		"[brush]\nsize = -3\n",
		"[text]\nbold = perhaps\n",
		"[notify]\nsave = sometimes\n",
	}
	for _, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Expected error for input %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `save_dir = /home/user/edits
format = png
theme = dark

[brush]
color = #FF000080
size = 6.5

[text]
size = 40
color = #FFFFFF
bold = true
italic = true
underline = false
align = right

[notify]
save = true
copy = true
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Format != cfg2.Format {
		t.Errorf("Format mismatch: %q vs %q", cfg.Format, cfg2.Format)
	}
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.Brush != cfg2.Brush {
		t.Errorf("Brush mismatch: %+v vs %+v", cfg.Brush, cfg2.Brush)
	}
	if cfg.Text != cfg2.Text {
		t.Errorf("Text mismatch: %+v vs %+v", cfg.Text, cfg2.Text)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
}

func TestStyleConversion(t *testing.T) {
	cfg := New()
	cfg.Text.Align = "center"
	cfg.Text.Bold = true

	style := cfg.TextStyle()
	if style.Align != render.AlignCenter || !style.Bold {
		t.Errorf("Unexpected style: %+v", style)
	}

	brush := cfg.BrushStyle()
	if brush.Size != cfg.Brush.Size || brush.Color != cfg.Brush.Color {
		t.Errorf("Unexpected brush: %+v", brush)
	}
}
