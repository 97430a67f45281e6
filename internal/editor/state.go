// Package editor implements an embeddable, non-destructive raster image
// editor: an immutable snapshot history with undo/redo, per-tool
// controllers for rotate, filter, resize, crop, freehand/line drawing and
// text overlays, and a save path that flattens everything into one image.
package editor

import (
	"image"

	"github.com/example/retouch/internal/render"
)

// Mode records which geometric operation produced a snapshot. Diagnostic
// only; nothing branches on it.
type Mode string

const (
	ModeResize Mode = "resize"
	ModeCrop   Mode = "crop"
)

// State is one immutable editor snapshot, the unit of undo and redo.
// Snapshots are derived by value copy; the Drawings slice is shared
// structurally between snapshots and never mutated in place.
type State struct {
	// Rotation in clockwise degrees: 0, 90, 180 or 270.
	Rotation int
	Filter   render.Filter
	// Drawings in insertion order, which is also paint order.
	Drawings []render.Stroke
	// Width and Height are the current raster dimensions; zero until the
	// source image has been loaded.
	Width  int
	Height int
	Mode   Mode
	// Image carries the raster backing this snapshot when a crop replaced
	// the underlying pixels. Nil means the pixels are inherited from the
	// session's source image.
	Image *image.NRGBA
}

// withStroke derives a snapshot with one more stroke. The receiver's
// Drawings slice is capped so the append always copies rather than sharing
// backing storage with a sibling snapshot.
func (s State) withStroke(stroke render.Stroke) State {
	next := s
	next.Mode = ""
	next.Drawings = append(s.Drawings[:len(s.Drawings):len(s.Drawings)], stroke)
	return next
}

// withRotation derives a snapshot rotated a further quarter turn.
func (s State) withRotation() State {
	next := s
	next.Mode = ""
	next.Rotation = (s.Rotation + 90) % 360
	return next
}

// withFilter derives a snapshot carrying the given filter.
func (s State) withFilter(f render.Filter) State {
	next := s
	next.Mode = ""
	next.Filter = f
	return next
}
