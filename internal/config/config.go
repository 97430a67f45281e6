package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/render"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Export bool
	Copy   bool
}

// Brush holds the startup drawing brush.
type Brush struct {
	Color color.RGBA
	Size  float64
}

// Text holds the startup text style.
type Text struct {
	Size      float64
	Color     color.RGBA
	Bold      bool
	Italic    bool
	Underline bool
	Align     string
}

// Config holds the application configuration.
type Config struct {
	SaveDir string
	Format  string
	Theme   string
	Brush   Brush
	Text    Text
	Notify  Notify
}

// New creates a new Config with defaults.
func New() *Config {
	brush := editor.DefaultBrush()
	text := editor.DefaultTextStyle()
	return &Config{
		Format: "png",
		Brush:  Brush{Color: brush.Color, Size: brush.Size},
		Text: Text{
			Size:  text.Size,
			Color: text.Color,
			Align: string(text.Align),
		},
		Notify: Notify{},
	}
}

// BrushStyle converts the configured brush into the editor's form.
func (c *Config) BrushStyle() editor.BrushStyle {
	return editor.BrushStyle{Color: c.Brush.Color, Size: c.Brush.Size}
}

// TextStyle converts the configured text settings into the editor's form.
func (c *Config) TextStyle() editor.TextStyle {
	return editor.TextStyle{
		Size:      c.Text.Size,
		Color:     c.Text.Color,
		Bold:      c.Text.Bold,
		Italic:    c.Text.Italic,
		Underline: c.Text.Underline,
		Align:     render.ParseAlignment(c.Text.Align),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "format = %s\n", c.Format)
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "color = %s\n", toHex(c.Brush.Color))
	fmt.Fprintf(&sb, "size = %g\n", c.Brush.Size)
	sb.WriteString("\n")

	sb.WriteString("[text]\n")
	fmt.Fprintf(&sb, "size = %g\n", c.Text.Size)
	fmt.Fprintf(&sb, "color = %s\n", toHex(c.Text.Color))
	fmt.Fprintf(&sb, "bold = %v\n", c.Text.Bold)
	fmt.Fprintf(&sb, "italic = %v\n", c.Text.Italic)
	fmt.Fprintf(&sb, "underline = %v\n", c.Text.Underline)
	fmt.Fprintf(&sb, "align = %s\n", c.Text.Align)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	return sb.String()
}

func toHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
