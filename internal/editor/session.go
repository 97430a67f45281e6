package editor

import (
	"errors"
	"image"
	"image/color"
	"log"

	"github.com/disintegration/imaging"

	"github.com/example/retouch/internal/render"
)

var (
	// ErrNotOpen is returned when an operation runs without a loaded image.
	ErrNotOpen = errors.New("editor: no image loaded")
	// ErrInvalidFilter is returned for a filter name outside the fixed set.
	ErrInvalidFilter = errors.New("editor: unknown filter")
)

// BrushStyle is the tool-global current brush. It is copied into each
// stroke at creation time; changing it later never restyles existing ink.
type BrushStyle struct {
	Color color.RGBA
	Size  float64
}

// DefaultBrush returns the brush used when the host supplies none.
func DefaultBrush() BrushStyle {
	return BrushStyle{Color: color.RGBA{R: 255, A: 255}, Size: 4}
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithBrush sets the initial brush style.
func WithBrush(b BrushStyle) Option { return func(s *Session) { s.brush = b } }

// WithTextStyle sets the initial text style.
func WithTextStyle(t TextStyle) Option { return func(s *Session) { s.style = t } }

// WithOnSave registers the callback that receives the flattened artifact.
func WithOnSave(fn func(image.Image)) Option { return func(s *Session) { s.onSave = fn } }

// WithOnClose registers a callback invoked when the session closes.
func WithOnClose(fn func()) Option { return func(s *Session) { s.onClose = fn } }

// Session is one editing session over a single source image. It owns the
// snapshot history, the text overlay collection and the per-tool transient
// state. All state is in-memory and discarded on Close unless the save
// callback has fired.
//
// A Session is event-driven and not safe for concurrent use; it belongs to
// the goroutine running the host's event loop.
type Session struct {
	base  *image.NRGBA
	ratio float64
	hist  *History
	texts []*TextObject

	brush BrushStyle
	style TextStyle

	resize *ResizeTool
	crop   *CropTool
	draw   *DrawTool
	text   *TextTool

	onSave  func(image.Image)
	onClose func()
	open    bool
}

// NewSession creates a session with the provided options. Open must be
// called with a source image before any editing operation.
func NewSession(opts ...Option) *Session {
	s := &Session{
		brush: DefaultBrush(),
		style: DefaultTextStyle(),
	}
	for _, o := range opts {
		o(s)
	}
	s.resize = &ResizeTool{sess: s}
	s.crop = &CropTool{sess: s}
	s.draw = &DrawTool{sess: s, scaleX: 1, scaleY: 1}
	s.text = &TextTool{sess: s}
	return s
}

// Open loads src as the session's source image and re-seeds the history to
// a single baseline entry. Re-opening always starts a fresh session: prior
// history, text overlays and transient tool state are discarded.
func (s *Session) Open(src image.Image) error {
	if src == nil || src.Bounds().Empty() {
		return ErrNotOpen
	}
	s.base = imaging.Clone(src)
	w := s.base.Bounds().Dx()
	h := s.base.Bounds().Dy()
	s.ratio = float64(w) / float64(h)
	s.hist = NewHistory(s.baseline())
	s.texts = nil
	s.clearToolState()
	s.open = true
	return nil
}

// IsOpen reports whether a source image is loaded.
func (s *Session) IsOpen() bool { return s.open }

// Close discards all in-memory state and fires the close callback.
func (s *Session) Close() {
	if !s.open {
		return
	}
	s.open = false
	s.base = nil
	s.hist = nil
	s.texts = nil
	s.clearToolState()
	if s.onClose != nil {
		s.onClose()
	}
}

func (s *Session) clearToolState() {
	if s.resize != nil {
		s.resize.Cancel()
	}
	if s.crop != nil {
		s.crop.Deactivate()
	}
	if s.draw != nil {
		s.draw.abort()
	}
}

// baseline is the pristine state for the loaded source image.
func (s *Session) baseline() State {
	return State{
		Filter: render.FilterNone,
		Width:  s.base.Bounds().Dx(),
		Height: s.base.Bounds().Dy(),
	}
}

// Current returns the snapshot under the history cursor.
func (s *Session) Current() State {
	if s.hist == nil {
		return State{}
	}
	return s.hist.Current()
}

// Raster returns the pixels backing the current snapshot: the cropped
// raster when one exists, otherwise the source image.
func (s *Session) Raster() *image.NRGBA {
	st := s.Current()
	if st.Image != nil {
		return st.Image
	}
	return s.base
}

// AspectRatio returns the width/height ratio captured at load time and
// recomputed after each crop. The resize tool's ratio lock reads it.
func (s *Session) AspectRatio() float64 { return s.ratio }

// History exposes the snapshot log for inspection.
func (s *Session) History() *History { return s.hist }

// push commits a derived snapshot.
func (s *Session) push(st State) {
	s.hist.Push(st)
}

// Undo steps the history cursor back, if possible.
func (s *Session) Undo() bool {
	if s.hist == nil {
		return false
	}
	_, ok := s.hist.Undo()
	return ok
}

// Redo steps the history cursor forward, if possible.
func (s *Session) Redo() bool {
	if s.hist == nil {
		return false
	}
	_, ok := s.hist.Redo()
	return ok
}

// ResetEdits pushes a fresh baseline snapshot pointing at the original
// source image and clears all transient tool state. Text overlays are not
// part of history and survive a reset.
func (s *Session) ResetEdits() {
	if !s.open {
		return
	}
	s.ratio = float64(s.base.Bounds().Dx()) / float64(s.base.Bounds().Dy())
	s.hist.Reset(s.baseline())
	s.clearToolState()
}

// Rotate advances the rotation a quarter turn clockwise and commits a
// snapshot. Four rotations return to the identity.
func (s *Session) Rotate() {
	if !s.open {
		return
	}
	s.push(s.Current().withRotation())
}

// ApplyFilter commits a snapshot carrying f.
func (s *Session) ApplyFilter(f render.Filter) error {
	if !s.open {
		return ErrNotOpen
	}
	if !render.ValidFilter(f) {
		log.Printf("filter: rejected %q", f)
		return ErrInvalidFilter
	}
	s.push(s.Current().withFilter(f))
	return nil
}

// Brush returns the tool-global current brush style.
func (s *Session) Brush() BrushStyle { return s.brush }

// SetBrush replaces the current brush. Existing strokes keep the style
// they were created with.
func (s *Session) SetBrush(b BrushStyle) {
	if b.Size < 1 {
		b.Size = 1
	}
	s.brush = b
}

// TextStyle returns the tool-global current text style.
func (s *Session) TextStyle() TextStyle { return s.style }

// SetTextStyle replaces the current text style. Existing text objects are
// not restyled.
func (s *Session) SetTextStyle(t TextStyle) {
	if t.Size < 1 {
		t.Size = 1
	}
	s.style = t
}

// Resize returns the resize tool controller.
func (s *Session) Resize() *ResizeTool { return s.resize }

// Crop returns the crop tool controller.
func (s *Session) Crop() *CropTool { return s.crop }

// Draw returns the drawing tool controller.
func (s *Session) Draw() *DrawTool { return s.draw }

// Text returns the text tool controller.
func (s *Session) Text() *TextTool { return s.text }

// Texts returns the live text overlay collection in z-order.
func (s *Session) Texts() []*TextObject { return s.texts }

// Scene assembles the compositor input for the current snapshot plus the
// live annotation layers.
func (s *Session) Scene() render.Scene {
	st := s.Current()
	labels := make([]render.TextLabel, 0, len(s.texts))
	for _, t := range s.texts {
		labels = append(labels, t.TextLabel)
	}
	return render.Scene{
		Base:         s.Raster(),
		Rotation:     st.Rotation,
		Filter:       st.Filter,
		Strokes:      s.draw.Live(),
		Labels:       labels,
		TargetWidth:  st.Width,
		TargetHeight: st.Height,
	}
}

// Save flattens the current snapshot and live annotation layers into one
// image, delivers it through the save callback and returns it.
func (s *Session) Save() (*image.NRGBA, error) {
	if !s.open {
		return nil, ErrNotOpen
	}
	out, err := render.Flatten(s.Scene())
	if err != nil {
		return nil, err
	}
	if s.onSave != nil {
		s.onSave(out)
	}
	return out, nil
}
