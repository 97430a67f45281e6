package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/export"
	"github.com/example/retouch/internal/imgio"
	"github.com/example/retouch/internal/render"
)

// exportCmd converts a saved artifact to another delivery format: a PDF
// page, a re-encoded raster, or a base64 data URL for embedding hosts.
type exportCmd struct {
	file    string
	output  string
	pdf     bool
	dataURL bool
	copy    bool
	shadow  bool
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.StringVar(&e.file, "file", "", "image file or data URL to export")
	fs.StringVar(&e.output, "output", "", "output file path")
	fs.BoolVar(&e.pdf, "pdf", false, "write a single-page PDF")
	fs.BoolVar(&e.dataURL, "data-url", false, "emit a base64 PNG data URL instead of a file")
	fs.BoolVar(&e.copy, "copy", false, "with -data-url, copy the URL to the clipboard instead of printing it")
	fs.BoolVar(&e.shadow, "shadow", false, "composite a drop shadow behind the image")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.file == "" {
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	img, err := loadImageFn(e.file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", e.file, err)
	}
	if e.shadow {
		img = render.Shadow(img, render.DefaultShadowOptions())
	}

	if e.dataURL {
		url, err := imgio.DataURL(img)
		if err != nil {
			return err
		}
		if e.copy {
			if err := clipboard.WriteText(url); err != nil {
				return fmt.Errorf("failed to copy: %w", err)
			}
			if e.notifier != nil {
				e.notifier.Copy("data URL")
			}
			return nil
		}
		fmt.Println(url)
		return nil
	}

	output := e.output
	if output == "" {
		return &UsageError{of: e}
	}

	if e.pdf || strings.EqualFold(filepath.Ext(output), ".pdf") {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		if err := export.PDF(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else {
		if err := imgio.Save(output, img); err != nil {
			return err
		}
	}
	if e.notifier != nil {
		e.notifier.Export(output)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", output)
	return nil
}
