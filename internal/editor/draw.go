package editor

import (
	"github.com/example/retouch/internal/render"
)

// DrawTool captures pointer gestures as strokes. Pointer positions arrive
// in display pixels and are rescaled by the canvas-to-display factor at
// capture time, so stored points are always in the raster's own pixel
// space regardless of on-screen zoom.
type DrawTool struct {
	sess   *Session
	active bool
	kind   render.StrokeKind

	// display-to-canvas scale, applied at capture
	scaleX, scaleY float64

	// freehand stroke being drawn, already visible via Live
	pending *render.Stroke
	// line-mode start point; nothing renders until pointer-up
	lineStart *render.Point
}

// Active reports whether the draw tool is engaged.
func (d *DrawTool) Active() bool { return d.active }

// Kind returns the current stroke mode.
func (d *DrawTool) Kind() render.StrokeKind { return d.kind }

// Activate engages the tool in the given stroke mode.
func (d *DrawTool) Activate(kind render.StrokeKind) {
	d.abort()
	d.kind = kind
	d.active = true
}

// Deactivate disengages the tool, discarding any in-progress gesture.
func (d *DrawTool) Deactivate() {
	d.abort()
	d.active = false
}

func (d *DrawTool) abort() {
	d.pending = nil
	d.lineStart = nil
}

// SetScale records the canvas/display pixel ratio used to convert pointer
// positions into raster coordinates.
func (d *DrawTool) SetScale(sx, sy float64) {
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	d.scaleX = sx
	d.scaleY = sy
}

func (d *DrawTool) capture(x, y float64) render.Point {
	return render.Point{X: x * d.scaleX, Y: y * d.scaleY}
}

// PointerDown starts a gesture at the given display position. In freehand
// mode the new stroke becomes visible immediately through Live; in line
// mode only the start point is recorded.
func (d *DrawTool) PointerDown(x, y float64) {
	if !d.active || !d.sess.open {
		return
	}
	p := d.capture(x, y)
	brush := d.sess.brush
	switch d.kind {
	case render.StrokeFree:
		d.pending = &render.Stroke{
			Kind:   render.StrokeFree,
			Color:  brush.Color,
			Size:   brush.Size,
			Points: []render.Point{p},
		}
	case render.StrokeLine:
		d.lineStart = &p
	}
}

// PointerMove extends an in-progress freehand stroke. Line mode records
// nothing mid-drag.
func (d *DrawTool) PointerMove(x, y float64) {
	if d.pending == nil {
		return
	}
	d.pending.Points = append(d.pending.Points, d.capture(x, y))
}

// PointerUp finishes the gesture and commits exactly one snapshot: the
// completed freehand stroke, or an atomically created line stroke.
func (d *DrawTool) PointerUp(x, y float64) {
	switch {
	case d.pending != nil:
		stroke := *d.pending
		d.pending = nil
		d.sess.push(d.sess.Current().withStroke(stroke))
	case d.lineStart != nil:
		start := *d.lineStart
		d.lineStart = nil
		stroke := render.Stroke{
			Kind:   render.StrokeLine,
			Color:  d.sess.brush.Color,
			Size:   d.sess.brush.Size,
			Points: []render.Point{start, d.capture(x, y)},
		}
		d.sess.push(d.sess.Current().withStroke(stroke))
	}
}

// Live returns the committed strokes plus any freehand stroke still being
// drawn, in paint order, for rendering the overlay surface.
func (d *DrawTool) Live() []render.Stroke {
	committed := d.sess.Current().Drawings
	if d.pending == nil {
		return committed
	}
	out := make([]render.Stroke, 0, len(committed)+1)
	out = append(out, committed...)
	out = append(out, *d.pending)
	return out
}
