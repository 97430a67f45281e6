package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader creates a new Loader with standard paths.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "retouch", "themes"),
		SystemDir: "/usr/share/retouch/themes",
	}
}

// Load attempts to load a theme by name or path.
// Order:
// 1. Built-in theme names.
// 2. If it's a file path that exists, load it.
// 3. Check ConfigDir.
// 4. Check SystemDir.
func (l *Loader) Load(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default(), nil
	case "dark":
		return Dark(), nil
	}

	// File path
	if _, err := os.Stat(name); err == nil {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	// Normalize name (ensure .theme extension for lookup if missing)
	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}

	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return Parse(f)
	}

	return nil, fmt.Errorf("theme '%s' not found", name)
}
