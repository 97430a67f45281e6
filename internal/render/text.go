package render

import "image/color"

// Alignment anchors a text label horizontally around its position.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ParseAlignment maps a configuration value onto an Alignment, falling back
// to AlignLeft for anything unrecognised.
func ParseAlignment(v string) Alignment {
	switch Alignment(v) {
	case AlignCenter:
		return AlignCenter
	case AlignRight:
		return AlignRight
	default:
		return AlignLeft
	}
}

// TextLabel is a positioned, styled text overlay. X and Y are percentages
// (0-100) of the image's bounding box so a label keeps its relative position
// regardless of the raster's resolution. Size is the font size at the
// reference width; the compositor scales it with the output raster.
type TextLabel struct {
	Text      string
	X, Y      float64
	Size      float64
	Color     color.RGBA
	Bold      bool
	Italic    bool
	Underline bool
	Align     Alignment
}
