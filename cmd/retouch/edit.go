package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/imgio"
	"github.com/example/retouch/internal/script"
	"github.com/example/retouch/internal/theme"
	"github.com/example/retouch/internal/ui"
)

// Seams for tests.
var (
	loadImageFn     = imgio.Load
	readClipboardFn = clipboard.ReadImage
	runUIFn         = func(u *ui.UI) { u.Run() }
)

// editCmd opens an image in the windowed editor.
type editCmd struct {
	file          string
	fromClipboard bool
	output        string
	brushColor    string
	brushSize     float64
	textSize      float64
	theme         string
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.file, "file", "", "image file or data URL to edit")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "edit the image currently on the clipboard")
	fs.StringVar(&e.output, "output", "", "output file path (defaults next to the source)")
	fs.StringVar(&e.brushColor, "brush-color", "", "starting brush color, #RRGGBB")
	fs.Float64Var(&e.brushSize, "brush-size", 0, "starting brush size in pixels")
	fs.Float64Var(&e.textSize, "text-size", 0, "starting text size in points")
	fs.StringVar(&e.theme, "theme", "", "chrome theme name or .theme file")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file != "" && e.fromClipboard {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be combined")
	}
	return e, nil
}

func (e *editCmd) Run() error {
	var (
		src image.Image
		err error
	)
	switch {
	case e.fromClipboard:
		src, err = readClipboardFn()
		if err != nil {
			return fmt.Errorf("failed to read clipboard: %w", err)
		}
	case e.file != "":
		src, err = loadImageFn(e.file)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", e.file, err)
		}
	default:
		return &UsageError{of: e}
	}

	brush := e.config.BrushStyle()
	if e.brushColor != "" {
		col, perr := script.ParseColor(e.brushColor)
		if perr != nil {
			return perr
		}
		brush.Color = col
	}
	if e.brushSize > 0 {
		brush.Size = e.brushSize
	}
	style := e.config.TextStyle()
	if e.textSize > 0 {
		style.Size = e.textSize
	}

	sess := editor.NewSession(
		editor.WithBrush(brush),
		editor.WithTextStyle(style),
	)
	if err := sess.Open(src); err != nil {
		return err
	}

	output := e.output
	if output == "" {
		output = defaultOutput(e.file)
	}
	runUIFn(ui.New(sess,
		ui.WithOutput(output),
		ui.WithNotifier(e.notifier),
		ui.WithTheme(e.loadTheme()),
	))
	return nil
}

// loadTheme resolves the chrome theme. Precedence: flag, then the
// RETOUCH_THEME environment variable, then the config file.
func (e *editCmd) loadTheme() *theme.Theme {
	name := e.theme
	if name == "" {
		name = os.Getenv("RETOUCH_THEME")
	}
	if name == "" {
		name = e.config.Theme
	}
	th, err := theme.NewLoader().Load(name)
	if err != nil {
		log.Printf("Warning: %v, using default theme", err)
		return theme.Default()
	}
	return th
}
