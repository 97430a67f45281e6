package editor

import (
	"errors"
	"log"
	"math"
	"strconv"
)

// ErrBadDimensions is returned when a resize field does not parse as a
// positive integer.
var ErrBadDimensions = errors.New("editor: resize dimensions must be positive integers")

// ResizeTool edits the logical target dimensions of the image. The fields
// hold raw user input and are only validated on Apply; resampling to the
// committed dimensions happens in the compositor at save time.
type ResizeTool struct {
	sess   *Session
	active bool

	width     string
	height    string
	keepRatio bool
}

// Active reports whether the tool is showing its numeric fields.
func (r *ResizeTool) Active() bool { return r.active }

// Activate seeds the width and height fields from the current raster
// dimensions.
func (r *ResizeTool) Activate() {
	if !r.sess.open {
		return
	}
	st := r.sess.Current()
	r.width = strconv.Itoa(st.Width)
	r.height = strconv.Itoa(st.Height)
	r.keepRatio = true
	r.active = true
}

// Cancel discards pending edits and deactivates without committing.
func (r *ResizeTool) Cancel() {
	r.active = false
	r.width = ""
	r.height = ""
}

// Fields returns the current raw field values.
func (r *ResizeTool) Fields() (width, height string) {
	return r.width, r.height
}

// KeepRatio reports whether the aspect-ratio lock is on.
func (r *ResizeTool) KeepRatio() bool { return r.keepRatio }

// SetKeepRatio toggles the aspect-ratio lock. Turning it on resyncs the
// height field from the width field.
func (r *ResizeTool) SetKeepRatio(on bool) {
	r.keepRatio = on
	if on {
		r.SetWidth(r.width)
	}
}

// SetWidth updates the width field. With the ratio lock on and a parsable
// value, the height field is recomputed from the ratio captured at image
// load time.
func (r *ResizeTool) SetWidth(v string) {
	r.width = v
	if !r.keepRatio {
		return
	}
	if w, err := strconv.Atoi(v); err == nil && w > 0 {
		r.height = strconv.Itoa(int(math.Round(float64(w) / r.sess.AspectRatio())))
	}
}

// SetHeight updates the height field, recomputing width under the ratio
// lock.
func (r *ResizeTool) SetHeight(v string) {
	r.height = v
	if !r.keepRatio {
		return
	}
	if h, err := strconv.Atoi(v); err == nil && h > 0 {
		r.width = strconv.Itoa(int(math.Round(float64(h) * r.sess.AspectRatio())))
	}
}

// Apply validates both fields and commits a snapshot carrying the new
// logical dimensions. On validation failure the tool stays active with no
// history mutation so the user can correct and retry.
func (r *ResizeTool) Apply() error {
	if !r.active {
		return nil
	}
	w, werr := strconv.Atoi(r.width)
	h, herr := strconv.Atoi(r.height)
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		log.Printf("resize: rejected dimensions %q x %q", r.width, r.height)
		return ErrBadDimensions
	}
	st := r.sess.Current()
	st.Width = w
	st.Height = h
	st.Mode = ModeResize
	r.sess.push(st)
	r.Cancel()
	return nil
}
