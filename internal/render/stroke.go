package render

import "image/color"

// Point is a coordinate in the raster's own pixel space. Stroke points are
// captured at canvas resolution, never in display pixels, so a stroke stays
// aligned with the pixels underneath it no matter how the image is zoomed
// on screen.
type Point struct {
	X, Y float64
}

// StrokeKind selects how a stroke's points are interpreted.
type StrokeKind int

const (
	// StrokeFree connects every captured point in order.
	StrokeFree StrokeKind = iota
	// StrokeLine connects exactly a start and an end point.
	StrokeLine
)

// Stroke is a single drawn ink path. A stroke is immutable once committed;
// the brush color and size are baked in at creation time.
type Stroke struct {
	Kind   StrokeKind
	Color  color.RGBA
	Size   float64
	Points []Point
}

// Start returns the first captured point.
func (s Stroke) Start() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[0]
}

// End returns the last captured point.
func (s Stroke) End() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	return s.Points[len(s.Points)-1]
}
