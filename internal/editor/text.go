package editor

import (
	"image/color"

	"github.com/google/uuid"

	"github.com/example/retouch/internal/render"
)

// TextStyle is the tool-global current text style, captured by copy into
// each text object at creation. Restyling the global never alters existing
// objects.
type TextStyle struct {
	Size      float64
	Color     color.RGBA
	Bold      bool
	Italic    bool
	Underline bool
	Align     render.Alignment
}

// DefaultTextStyle returns the style used when the host supplies none.
func DefaultTextStyle() TextStyle {
	return TextStyle{
		Size:  32,
		Color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Align: render.AlignLeft,
	}
}

// TextObject is a positioned text overlay. Text objects live in their own
// collection outside the snapshot history: undo and redo never touch them.
type TextObject struct {
	ID string
	render.TextLabel
	// Editing marks the object as holding focus in an inline editor.
	Editing bool
}

// TextTool manages the text overlay collection and the inline editing
// lifecycle.
type TextTool struct {
	sess    *Session
	active  bool
	editing *TextObject
}

// Active reports whether the text tool is engaged.
func (t *TextTool) Active() bool { return t.active }

// Activate engages the text tool.
func (t *TextTool) Activate() { t.active = true }

// Deactivate disengages the tool, committing any object still in edit
// mode as if it had lost focus.
func (t *TextTool) Deactivate() {
	t.Commit()
	t.active = false
}

// Editing returns the object currently holding edit focus, if any.
func (t *TextTool) Editing() *TextObject {
	return t.editing
}

// Click creates an empty text object at the clicked percentage position,
// clamped to the image box, and places it in edit mode. Any object already
// being edited is committed first.
func (t *TextTool) Click(xPct, yPct float64) *TextObject {
	if !t.active || !t.sess.open {
		return nil
	}
	t.Commit()
	style := t.sess.style
	obj := &TextObject{
		ID: uuid.NewString(),
		TextLabel: render.TextLabel{
			X:         clampPercent(xPct),
			Y:         clampPercent(yPct),
			Size:      style.Size,
			Color:     style.Color,
			Bold:      style.Bold,
			Italic:    style.Italic,
			Underline: style.Underline,
			Align:     style.Align,
		},
		Editing: true,
	}
	t.sess.texts = append(t.sess.texts, obj)
	t.editing = obj
	return obj
}

// SetText replaces the text of the object being edited.
func (t *TextTool) SetText(text string) {
	if t.editing != nil {
		t.editing.Text = text
	}
}

// Append adds one rune to the object being edited.
func (t *TextTool) Append(r rune) {
	if t.editing != nil && r > 0 {
		t.editing.Text += string(r)
	}
}

// Backspace removes the final rune of the object being edited.
func (t *TextTool) Backspace() {
	if t.editing == nil || t.editing.Text == "" {
		return
	}
	runes := []rune(t.editing.Text)
	t.editing.Text = string(runes[:len(runes)-1])
}

// Commit exits edit mode, deleting the object if it was left empty.
// This is the blur / Enter path.
func (t *TextTool) Commit() {
	obj := t.editing
	if obj == nil {
		return
	}
	t.editing = nil
	obj.Editing = false
	if obj.Text == "" {
		t.sess.removeText(obj.ID)
	}
}

// Discard exits edit mode and deletes the object unconditionally, even if
// it holds text. This is the Escape path.
func (t *TextTool) Discard() {
	obj := t.editing
	if obj == nil {
		return
	}
	t.editing = nil
	t.sess.removeText(obj.ID)
}

// Delete removes the object with the given id from the overlay collection.
func (t *TextTool) Delete(id string) {
	if t.editing != nil && t.editing.ID == id {
		t.editing = nil
	}
	t.sess.removeText(id)
}

func (s *Session) removeText(id string) {
	for i, obj := range s.texts {
		if obj.ID == id {
			s.texts = append(s.texts[:i], s.texts[i+1:]...)
			return
		}
	}
}
