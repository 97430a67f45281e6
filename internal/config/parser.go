package config

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/example/retouch/internal/render"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch currentSection {
		case "":
			err = setRootField(cfg, key, value)
		case "brush":
			err = setBrushField(&cfg.Brush, key, value)
		case "text":
			err = setTextField(&cfg.Text, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "save_dir":
		cfg.SaveDir = value
	case "format":
		v := strings.ToLower(value)
		if v != "png" && v != "jpg" && v != "jpeg" {
			return fmt.Errorf("unknown format %q", value)
		}
		cfg.Format = v
	case "theme":
		cfg.Theme = value
	}
	return nil
}

func setBrushField(b *Brush, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		b.Color = col
	case "size":
		size, err := strconv.ParseFloat(value, 64)
		if err != nil || size <= 0 {
			return fmt.Errorf("invalid size %q", value)
		}
		b.Size = size
	}
	return nil
}

func setTextField(t *Text, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		col, err := parseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		t.Color = col
	case "size":
		size, err := strconv.ParseFloat(value, 64)
		if err != nil || size <= 0 {
			return fmt.Errorf("invalid size %q", value)
		}
		t.Size = size
	case "bold", "italic", "underline":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for key %s: %w", key, err)
		}
		switch strings.ToLower(key) {
		case "bold":
			t.Bold = v
		case "italic":
			t.Italic = v
		case "underline":
			t.Underline = v
		}
	case "align":
		t.Align = string(render.ParseAlignment(value))
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

// parseColor parses a hex color string.
func parseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color must start with #")
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		// #RRGGBB
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	} else if len(hex) == 8 {
		// #RRGGBBAA
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}
