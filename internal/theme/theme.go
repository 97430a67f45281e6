// Package theme defines the color palette for the editor chrome. Themes
// are flat key/color files so users can restyle the window without a
// rebuild.
package theme

import (
	"image/color"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// Window chrome
	ChromeBackground color.RGBA // Title and status bars
	ChromeText       color.RGBA
	Accent           color.RGBA // Flash messages

	// Tool buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonSelected        color.RGBA
	ButtonText            color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		ChromeBackground:      color.RGBA{40, 40, 40, 255},
		ChromeText:            color.RGBA{255, 255, 255, 255},
		Accent:                color.RGBA{255, 220, 120, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonSelected:        color.RGBA{150, 170, 210, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}

// Dark returns the built-in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                  "Dark",
		ChromeBackground:      color.RGBA{24, 24, 24, 255},
		ChromeText:            color.RGBA{230, 230, 230, 255},
		Accent:                color.RGBA{255, 200, 80, 255},
		ButtonBackground:      color.RGBA{60, 60, 60, 255},
		ButtonBackgroundHover: color.RGBA{80, 80, 80, 255},
		ButtonBackgroundPress: color.RGBA{100, 100, 100, 255},
		ButtonSelected:        color.RGBA{70, 95, 140, 255},
		ButtonText:            color.RGBA{230, 230, 230, 255},
		CheckerLight:          color.RGBA{58, 58, 58, 255},
		CheckerDark:           color.RGBA{46, 46, 46, 255},
	}
}
