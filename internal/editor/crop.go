package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrBoxTooSmall is returned when a custom crop box is under 1% per
	// axis or resolves to fewer than 10x10 pixels.
	ErrBoxTooSmall = errors.New("editor: crop box too small")
	// ErrNoCropBox is returned when a custom-ratio apply runs before any
	// box was drawn.
	ErrNoCropBox = errors.New("editor: no crop box")
)

// minBoxPercent is the smallest box size per axis enforced while dragging a
// resize handle, so a handle can never invert or collapse the box.
const minBoxPercent = 5.0

// minCropPixels is the smallest pixel rectangle a crop may materialize.
const minCropPixels = 10

// Ratio selects the crop tool's operating mode: a fixed preset aspect
// ratio, or a free-form user-drawn box.
type Ratio string

const (
	RatioCustom Ratio = "custom"
	RatioSquare Ratio = "square"
	Ratio3x2    Ratio = "3:2"
	Ratio4x3    Ratio = "4:3"
	Ratio5x4    Ratio = "5:4"
	Ratio7x5    Ratio = "7:5"
	Ratio16x9   Ratio = "16:9"
)

// Ratios returns the selectable crop ratios in display order.
func Ratios() []Ratio {
	return []Ratio{RatioCustom, RatioSquare, Ratio3x2, Ratio4x3, Ratio5x4, Ratio7x5, Ratio16x9}
}

func (r Ratio) value() (float64, bool) {
	switch r {
	case RatioSquare:
		return 1, true
	case Ratio3x2:
		return 3.0 / 2, true
	case Ratio4x3:
		return 4.0 / 3, true
	case Ratio5x4:
		return 5.0 / 4, true
	case Ratio7x5:
		return 7.0 / 5, true
	case Ratio16x9:
		return 16.0 / 9, true
	default:
		return 0, false
	}
}

// CropBox is the transient user-drawn crop rectangle, in percentages of
// the displayed image box. It is only meaningful while the crop tool is in
// custom mode and is never versioned into history.
type CropBox struct {
	Left, Top, Width, Height float64
}

func (b CropBox) right() float64  { return b.Left + b.Width }
func (b CropBox) bottom() float64 { return b.Top + b.Height }

// Handle names one crop-box interaction: moving the whole box, dragging
// one of the eight resize handles, or creating a new box.
type Handle int

const (
	HandleNone Handle = iota
	HandleCreate
	HandleMove
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// DragSession records a pointer drag over the crop box: the interaction
// kind, the pointer-down origin and the box as it was at drag start. Every
// update is computed by subtracting the origin from the current pointer,
// never by accumulating intermediate moves, so a drag cannot drift.
type DragSession struct {
	Kind             Handle
	OriginX, OriginY float64
	Start            CropBox
}

// CropTool controls both preset-ratio and custom crops. Pointer
// coordinates are percentages of the displayed image box.
type CropTool struct {
	sess   *Session
	active bool
	ratio  Ratio
	box    *CropBox
	drag   *DragSession
}

// Active reports whether the crop tool is engaged.
func (c *CropTool) Active() bool { return c.active }

// Ratio returns the selected crop ratio.
func (c *CropTool) Ratio() Ratio { return c.ratio }

// Box returns the current custom crop box, if one has been drawn.
func (c *CropTool) Box() (CropBox, bool) {
	if c.box == nil {
		return CropBox{}, false
	}
	return *c.box, true
}

// Dragging reports whether a pointer drag is in progress.
func (c *CropTool) Dragging() bool { return c.drag != nil }

// Activate engages the crop tool with the given ratio. Switching ratios
// while active discards any drawn box.
func (c *CropTool) Activate(r Ratio) error {
	if !c.sess.open {
		return ErrNotOpen
	}
	if _, ok := r.value(); !ok && r != RatioCustom {
		return fmt.Errorf("editor: unknown crop ratio %q", r)
	}
	c.ratio = r
	c.box = nil
	c.drag = nil
	c.active = true
	return nil
}

// Deactivate disengages the tool and clears all transient state.
func (c *CropTool) Deactivate() {
	c.active = false
	c.box = nil
	c.drag = nil
}

// HandleAt hit-tests (x, y) against the current box. tol is the grab
// distance in percent. Points inside the box that miss every handle report
// HandleMove; points elsewhere report HandleCreate.
func (c *CropTool) HandleAt(x, y, tol float64) Handle {
	if c.box == nil {
		return HandleCreate
	}
	b := *c.box
	cx := b.Left + b.Width/2
	cy := b.Top + b.Height/2
	near := func(px, py float64) bool {
		return math.Abs(x-px) <= tol && math.Abs(y-py) <= tol
	}
	switch {
	case near(b.Left, b.Top):
		return HandleTopLeft
	case near(cx, b.Top):
		return HandleTop
	case near(b.right(), b.Top):
		return HandleTopRight
	case near(b.right(), cy):
		return HandleRight
	case near(b.right(), b.bottom()):
		return HandleBottomRight
	case near(cx, b.bottom()):
		return HandleBottom
	case near(b.Left, b.bottom()):
		return HandleBottomLeft
	case near(b.Left, cy):
		return HandleLeft
	}
	if x >= b.Left && x <= b.right() && y >= b.Top && y <= b.bottom() {
		return HandleMove
	}
	return HandleCreate
}

// BeginDrag starts a drag of the given kind at (x, y) percent. Custom mode
// only; preset ratios have no box to drag.
func (c *CropTool) BeginDrag(kind Handle, x, y float64) {
	if !c.active || c.ratio != RatioCustom || kind == HandleNone {
		return
	}
	x = clampPercent(x)
	y = clampPercent(y)
	start := CropBox{Left: x, Top: y}
	if c.box != nil && kind != HandleCreate {
		start = *c.box
	} else {
		kind = HandleCreate
		c.box = &start
	}
	c.drag = &DragSession{Kind: kind, OriginX: x, OriginY: y, Start: start}
}

// DragTo recomputes the box from the drag origin and the current pointer.
func (c *CropTool) DragTo(x, y float64) {
	if c.drag == nil {
		return
	}
	x = clampPercent(x)
	y = clampPercent(y)
	d := c.drag
	dx := x - d.OriginX
	dy := y - d.OriginY
	b := d.Start

	switch d.Kind {
	case HandleCreate:
		left := math.Min(d.OriginX, x)
		top := math.Min(d.OriginY, y)
		b = CropBox{Left: left, Top: top, Width: math.Abs(dx), Height: math.Abs(dy)}
	case HandleMove:
		b.Left = clampTo(d.Start.Left+dx, 0, 100-b.Width)
		b.Top = clampTo(d.Start.Top+dy, 0, 100-b.Height)
	default:
		b = resizeBox(d.Start, d.Kind, dx, dy)
	}
	c.box = &b
}

// EndDrag finishes the pointer drag, leaving the box in place for further
// adjustment or apply.
func (c *CropTool) EndDrag() {
	c.drag = nil
}

// resizeBox adjusts exactly the edges named by the handle, keeping every
// edge inside [0,100] and the box at least minBoxPercent per axis.
func resizeBox(start CropBox, kind Handle, dx, dy float64) CropBox {
	left := start.Left
	top := start.Top
	right := start.right()
	bottom := start.bottom()

	switch kind {
	case HandleTopLeft:
		left = clampTo(start.Left+dx, 0, right-minBoxPercent)
		top = clampTo(start.Top+dy, 0, bottom-minBoxPercent)
	case HandleTop:
		top = clampTo(start.Top+dy, 0, bottom-minBoxPercent)
	case HandleTopRight:
		right = clampTo(start.right()+dx, left+minBoxPercent, 100)
		top = clampTo(start.Top+dy, 0, bottom-minBoxPercent)
	case HandleRight:
		right = clampTo(start.right()+dx, left+minBoxPercent, 100)
	case HandleBottomRight:
		right = clampTo(start.right()+dx, left+minBoxPercent, 100)
		bottom = clampTo(start.bottom()+dy, top+minBoxPercent, 100)
	case HandleBottom:
		bottom = clampTo(start.bottom()+dy, top+minBoxPercent, 100)
	case HandleBottomLeft:
		left = clampTo(start.Left+dx, 0, right-minBoxPercent)
		bottom = clampTo(start.bottom()+dy, top+minBoxPercent, 100)
	case HandleLeft:
		left = clampTo(start.Left+dx, 0, right-minBoxPercent)
	}
	return CropBox{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// PresetRect computes the largest centred rectangle of the target aspect
// ratio that fits inside a w x h raster.
func PresetRect(w, h int, target float64) image.Rectangle {
	cw := w
	ch := h
	if float64(w)/float64(h) > target {
		// Width overshoots the target ratio; bind to height.
		cw = int(math.Round(float64(h) * target))
	} else {
		ch = int(math.Round(float64(w) / target))
	}
	x0 := (w - cw) / 2
	y0 := (h - ch) / 2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}

// Apply materializes the crop: it extracts the computed pixel rectangle
// into a fresh raster, commits a snapshot backed by it and deactivates the
// tool. Validation failures leave the tool active with history untouched.
func (c *CropTool) Apply() error {
	if !c.active {
		return nil
	}
	raster := c.sess.Raster()
	if raster == nil {
		log.Print("crop: no image to crop")
		return ErrNotOpen
	}
	rw := raster.Bounds().Dx()
	rh := raster.Bounds().Dy()

	var rect image.Rectangle
	if target, ok := c.ratio.value(); ok {
		rect = PresetRect(rw, rh, target)
	} else {
		if c.box == nil {
			log.Print("crop: apply without a box")
			return ErrNoCropBox
		}
		b := *c.box
		if b.Width < 1 || b.Height < 1 {
			log.Printf("crop: rejected box %.2f%% x %.2f%%", b.Width, b.Height)
			return ErrBoxTooSmall
		}
		rect = image.Rect(
			int(math.Round(b.Left/100*float64(rw))),
			int(math.Round(b.Top/100*float64(rh))),
			int(math.Round(b.right()/100*float64(rw))),
			int(math.Round(b.bottom()/100*float64(rh))),
		)
	}
	rect = rect.Intersect(raster.Bounds())
	if rect.Dx() < minCropPixels || rect.Dy() < minCropPixels {
		log.Printf("crop: rejected %dx%d pixel rect", rect.Dx(), rect.Dy())
		return ErrBoxTooSmall
	}

	cropped := imaging.Crop(raster, rect)
	st := c.sess.Current()
	st.Image = cropped
	st.Width = rect.Dx()
	st.Height = rect.Dy()
	st.Mode = ModeCrop
	c.sess.push(st)
	c.sess.ratio = float64(rect.Dx()) / float64(rect.Dy())
	c.Deactivate()
	return nil
}

func clampPercent(v float64) float64 { return clampTo(v, 0, 100) }

func clampTo(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
