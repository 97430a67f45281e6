// Package ui runs the windowed editor front-end on shiny. It owns the
// window, the display mapping from device to canvas coordinates, and the
// keyboard and mouse plumbing into the editing session; all editing
// semantics live in the session itself.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"
	"unicode"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/retouch/internal/clipboard"
	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/imgio"
	"github.com/example/retouch/internal/notify"
	"github.com/example/retouch/internal/render"
	"github.com/example/retouch/internal/theme"
)

const (
	topHeight    = 28
	bottomHeight = 24
	handleSize   = 8
	// handleTol is the grab distance for crop handles, in percent.
	handleTol = 3.0
)

var toolbarWidth = 96

// Tool selects what mouse input on the canvas does.
type Tool int

const (
	ToolPan Tool = iota
	ToolResize
	ToolCrop
	ToolDraw
	ToolLine
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolPan:
		return "pan"
	case ToolResize:
		return "resize"
	case ToolCrop:
		return "crop"
	case ToolDraw:
		return "draw"
	case ToolLine:
		return "line"
	case ToolText:
		return "text"
	}
	return "unknown"
}

// UI drives one editor window.
type UI struct {
	sess     *editor.Session
	output   string
	notifier *notify.Notifier
	onClose  func()

	width  int
	height int
	zoom   float64
	offset image.Point
	tool   Tool

	// resizeField selects which resize entry receives typed digits.
	resizeField int
	ratioIdx    int

	message      string
	messageUntil time.Time

	buttons     []*CacheButton
	hoverButton int
}

// Option modifies a UI during creation.
type Option func(*UI)

// WithOutput sets the file path used when saving.
func WithOutput(path string) Option { return func(u *UI) { u.output = path } }

// WithNotifier attaches a desktop notifier for save and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(u *UI) { u.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(u *UI) { u.onClose = fn } }

// WithTheme restyles the window chrome. Must be set before Run.
func WithTheme(th *theme.Theme) Option {
	return func(*UI) {
		if th != nil {
			currentTheme = th
			backdropCache = nil
		}
	}
}

// New creates a UI bound to an open session.
func New(sess *editor.Session, opts ...Option) *UI {
	u := &UI{
		sess:        sess,
		output:      "retouched.png",
		zoom:        1,
		hoverButton: -1,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Run executes the UI loop using shiny's driver.
func (u *UI) Run() { driver.Main(u.main) }

func (u *UI) flash(msg string) {
	u.message = msg
	log.Print(msg)
	u.messageUntil = time.Now().Add(2 * time.Second)
}

func fitZoom(raster *image.NRGBA, winW, winH int) float64 {
	availW := winW - toolbarWidth
	availH := winH - topHeight - bottomHeight
	if availW < 1 || availH < 1 {
		return 1
	}
	zx := float64(availW) / float64(raster.Bounds().Dx())
	zy := float64(availH) / float64(raster.Bounds().Dy())
	z := zx
	if zy < zx {
		z = zy
	}
	if z > 1 {
		z = 1
	}
	return z
}

// canvasRect returns the destination rectangle for the zoomed canvas. The
// origin is anchored just right of the toolbar and shifted by the pan
// offset so the image stays put while chrome changes.
func (u *UI) canvasRect() image.Rectangle {
	raster := u.sess.Raster()
	w := int(float64(raster.Bounds().Dx()) * u.zoom)
	h := int(float64(raster.Bounds().Dy()) * u.zoom)
	x0 := toolbarWidth + u.offset.X
	y0 := topHeight + u.offset.Y
	return image.Rect(x0, y0, x0+w, y0+h)
}

// toPercent maps a device point into canvas percent coordinates.
func (u *UI) toPercent(x, y float32) (float64, float64) {
	r := u.canvasRect()
	px := (float64(x) - float64(r.Min.X)) / float64(r.Dx()) * 100
	py := (float64(y) - float64(r.Min.Y)) / float64(r.Dy()) * 100
	return px, py
}

func (u *UI) selectTool(t Tool) {
	if u.tool == ToolCrop && t != ToolCrop {
		u.sess.Crop().Deactivate()
	}
	if u.tool == ToolResize && t != ToolResize {
		u.sess.Resize().Cancel()
	}
	if u.tool == ToolText && t != ToolText {
		u.sess.Text().Deactivate()
	}
	if (u.tool == ToolDraw || u.tool == ToolLine) && t != ToolDraw && t != ToolLine {
		u.sess.Draw().Deactivate()
	}
	u.tool = t
	switch t {
	case ToolResize:
		u.sess.Resize().Activate()
		u.resizeField = 0
	case ToolCrop:
		if err := u.sess.Crop().Activate(editor.Ratios()[u.ratioIdx]); err != nil {
			log.Printf("crop: %v", err)
		}
	case ToolDraw:
		u.sess.Draw().Activate(render.StrokeFree)
	case ToolLine:
		u.sess.Draw().Activate(render.StrokeLine)
	case ToolText:
		u.sess.Text().Activate()
	}
}

func (u *UI) save() {
	flat, err := u.sess.Save()
	if err != nil {
		log.Printf("save: %v", err)
		return
	}
	if err := imgio.Save(u.output, flat); err != nil {
		log.Printf("save: %v", err)
		return
	}
	u.notifier.Save(u.output, flat)
	u.flash(fmt.Sprintf("saved %s", u.output))
}

func (u *UI) copyToClipboard() {
	sc := u.sess.Scene()
	flat, err := render.Flatten(sc)
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	if err := clipboard.WriteImage(flat); err != nil {
		log.Printf("copy: %v", err)
		return
	}
	u.notifier.Copy("image")
	u.flash("image copied to clipboard")
}

func (u *UI) buildToolbar(repaint, requestQuit func()) {
	tools := []struct {
		label string
		tool  Tool
	}{
		{"M:Pan", ToolPan},
		{"I:Resize", ToolResize},
		{"R:Crop", ToolCrop},
		{"B:Draw", ToolDraw},
		{"L:Line", ToolLine},
		{"T:Text", ToolText},
	}
	u.buttons = u.buttons[:0]
	for _, tb := range tools {
		t := tb.tool
		u.buttons = append(u.buttons, &CacheButton{Button: &ActionButton{
			label:    tb.label,
			selected: func() bool { return u.tool == t },
			onActivate: func() {
				u.selectTool(t)
				repaint()
			},
		}})
	}
	acts := []struct {
		label string
		fn    func()
	}{
		{"O:Rotate", func() { u.sess.Rotate() }},
		{"F:Filter", u.nextFilter},
		{"U:Undo", func() { u.sess.Undo() }},
		{"Y:Redo", func() { u.sess.Redo() }},
		{"0:Reset", u.reset},
		{"^S:Save", u.save},
		{"^C:Copy", u.copyToClipboard},
		{"Q:Quit", requestQuit},
	}
	for _, ab := range acts {
		fn := ab.fn
		u.buttons = append(u.buttons, &CacheButton{Button: &ActionButton{
			label: ab.label,
			onActivate: func() {
				fn()
				repaint()
			},
		}})
	}
	for i, b := range u.buttons {
		b.SetRect(image.Rect(0, topHeight+i*24, toolbarWidth, topHeight+(i+1)*24))
	}
}

func (u *UI) nextFilter() {
	filters := render.Filters()
	cur := u.sess.Current().Filter
	next := filters[0]
	for i, f := range filters {
		if f == cur {
			next = filters[(i+1)%len(filters)]
			break
		}
	}
	if err := u.sess.ApplyFilter(next); err != nil {
		log.Printf("filter: %v", err)
		return
	}
	u.flash(fmt.Sprintf("filter: %s", next))
}

func (u *UI) reset() {
	u.sess.ResetEdits()
	u.offset = image.Point{}
	u.zoom = fitZoom(u.sess.Raster(), u.width, u.height)
	u.flash("edits reset")
}

func (u *UI) main(s screen.Screen) {
	raster := u.sess.Raster()
	u.width = raster.Bounds().Dx() + toolbarWidth
	u.height = raster.Bounds().Dy() + topHeight + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: u.width, Height: u.height, Title: "Retouch"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer func() {
		u.sess.Close()
		if u.onClose != nil {
			u.onClose()
		}
	}()

	repaint := func() { w.Send(paint.Event{}) }
	requestQuit := func() { w.Send(key.Event{Rune: 'q', Direction: key.DirPress}) }
	u.buildToolbar(repaint, requestQuit)
	u.zoom = fitZoom(raster, u.width, u.height)

	var panStart image.Point
	var panOrigin image.Point
	var panning bool

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			u.width = e.WidthPx
			u.height = e.HeightPx
			repaint()
		case paint.Event:
			u.drawFrame(s, w)
		case mouse.Event:
			if u.handleToolbarMouse(e, repaint) {
				continue
			}
			switch u.tool {
			case ToolPan:
				switch e.Direction {
				case mouse.DirPress:
					if e.Button == mouse.ButtonLeft {
						panning = true
						panStart = image.Pt(int(e.X), int(e.Y))
						panOrigin = u.offset
					}
				case mouse.DirRelease:
					panning = false
				case mouse.DirNone:
					if panning {
						u.offset = panOrigin.Add(image.Pt(int(e.X)-panStart.X, int(e.Y)-panStart.Y))
						repaint()
					}
				}
			case ToolCrop:
				u.handleCropMouse(e, repaint)
			case ToolDraw, ToolLine:
				u.handleDrawMouse(e, repaint)
			case ToolText:
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					px, py := u.toPercent(e.X, e.Y)
					u.sess.Text().Click(px, py)
					repaint()
				}
			}
		case key.Event:
			if e.Direction != key.DirPress && e.Direction != key.DirNone {
				continue
			}
			if quit := u.handleKey(e, repaint); quit {
				return
			}
		}
	}
}

func (u *UI) handleToolbarMouse(e mouse.Event, repaint func()) bool {
	if int(e.X) >= toolbarWidth {
		return false
	}
	p := image.Pt(int(e.X), int(e.Y))
	u.hoverButton = -1
	for i, b := range u.buttons {
		if p.In(b.Rect()) {
			u.hoverButton = i
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				b.Activate()
			}
			break
		}
	}
	if e.Direction == mouse.DirNone {
		repaint()
	}
	return true
}

func (u *UI) handleCropMouse(e mouse.Event, repaint func()) {
	c := u.sess.Crop()
	px, py := u.toPercent(e.X, e.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		c.BeginDrag(c.HandleAt(px, py, handleTol), px, py)
		repaint()
	case e.Direction == mouse.DirNone && c.Dragging():
		c.DragTo(px, py)
		repaint()
	case e.Direction == mouse.DirRelease:
		c.EndDrag()
		repaint()
	}
}

func (u *UI) handleDrawMouse(e mouse.Event, repaint func()) {
	d := u.sess.Draw()
	r := u.canvasRect()
	d.SetScale(1/u.zoom, 1/u.zoom)
	x := float64(e.X) - float64(r.Min.X)
	y := float64(e.Y) - float64(r.Min.Y)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		d.PointerDown(x, y)
		repaint()
	case e.Direction == mouse.DirNone:
		d.PointerMove(x, y)
		repaint()
	case e.Direction == mouse.DirRelease:
		d.PointerUp(x, y)
		repaint()
	}
}

func (u *UI) handleKey(e key.Event, repaint func()) (quit bool) {
	t := u.sess.Text()
	if obj := t.Editing(); obj != nil {
		switch e.Code {
		case key.CodeReturnEnter:
			t.Commit()
		case key.CodeEscape:
			t.Discard()
		case key.CodeDeleteBackspace:
			t.Backspace()
		default:
			if e.Rune > 0 && !unicode.IsControl(e.Rune) {
				t.Append(e.Rune)
			}
		}
		repaint()
		return false
	}

	if u.tool == ToolResize && u.handleResizeKey(e, repaint) {
		return false
	}
	if u.tool == ToolCrop && u.handleCropKey(e, repaint) {
		return false
	}

	if e.Modifiers&key.ModControl != 0 {
		switch e.Rune {
		case 's', 'S':
			u.save()
		case 'c', 'C':
			u.copyToClipboard()
		case 'z', 'Z':
			u.sess.Undo()
		case 'y', 'Y':
			u.sess.Redo()
		}
		repaint()
		return false
	}

	switch e.Rune {
	case 'm', 'M':
		u.selectTool(ToolPan)
	case 'i', 'I':
		u.selectTool(ToolResize)
	case 'r', 'R':
		u.selectTool(ToolCrop)
	case 'b', 'B':
		u.selectTool(ToolDraw)
	case 'l', 'L':
		u.selectTool(ToolLine)
	case 't', 'T':
		u.selectTool(ToolText)
	case 'o', 'O':
		u.sess.Rotate()
	case 'f', 'F':
		u.nextFilter()
	case 'u', 'U':
		u.sess.Undo()
	case 'y', 'Y':
		u.sess.Redo()
	case '0':
		u.reset()
	case 'q', 'Q':
		return true
	case '+', '=':
		u.zoom *= 1.25
	case '-':
		u.zoom /= 1.25
		if u.zoom < 0.05 {
			u.zoom = 0.05
		}
	case -1:
		switch e.Code {
		case key.CodeLeftArrow:
			u.offset.X -= 10
		case key.CodeRightArrow:
			u.offset.X += 10
		case key.CodeUpArrow:
			u.offset.Y -= 10
		case key.CodeDownArrow:
			u.offset.Y += 10
		case key.CodeEscape:
			u.selectTool(ToolPan)
		}
	}
	repaint()
	return false
}

// handleResizeKey routes digits into the active dimension entry.
func (u *UI) handleResizeKey(e key.Event, repaint func()) bool {
	r := u.sess.Resize()
	width, height := r.Fields()
	field := &width
	setField := r.SetWidth
	if u.resizeField == 1 {
		field = &height
		setField = r.SetHeight
	}
	switch {
	case e.Rune >= '0' && e.Rune <= '9':
		setField(*field + string(e.Rune))
	case e.Code == key.CodeDeleteBackspace:
		if len(*field) > 0 {
			setField((*field)[:len(*field)-1])
		}
	case e.Code == key.CodeTab:
		u.resizeField = 1 - u.resizeField
	case e.Rune == 'k' || e.Rune == 'K':
		r.SetKeepRatio(!r.KeepRatio())
	case e.Code == key.CodeReturnEnter:
		if err := r.Apply(); err != nil {
			u.flash(fmt.Sprintf("resize: %v", err))
		} else {
			u.tool = ToolPan
			u.zoom = fitZoom(u.sess.Raster(), u.width, u.height)
		}
	case e.Code == key.CodeEscape:
		r.Cancel()
		u.tool = ToolPan
	default:
		return false
	}
	repaint()
	return true
}

// handleCropKey applies or cancels the crop and cycles ratio presets.
func (u *UI) handleCropKey(e key.Event, repaint func()) bool {
	c := u.sess.Crop()
	switch {
	case e.Code == key.CodeReturnEnter:
		if err := c.Apply(); err != nil {
			u.flash(fmt.Sprintf("crop: %v", err))
		} else {
			u.tool = ToolPan
			u.offset = image.Point{}
			u.zoom = fitZoom(u.sess.Raster(), u.width, u.height)
		}
	case e.Code == key.CodeEscape:
		c.Deactivate()
		u.tool = ToolPan
	case e.Rune == 'x' || e.Rune == 'X':
		ratios := editor.Ratios()
		u.ratioIdx = (u.ratioIdx + 1) % len(ratios)
		if err := c.Activate(ratios[u.ratioIdx]); err != nil {
			log.Printf("crop: %v", err)
		}
		u.flash(fmt.Sprintf("crop ratio: %s", ratios[u.ratioIdx]))
	default:
		return false
	}
	repaint()
	return true
}

func (u *UI) drawFrame(s screen.Screen, w screen.Window) {
	b, err := s.NewBuffer(image.Point{u.width, u.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	drawBackdrop(dst)

	sc := u.sess.Scene()
	// Preview at canvas resolution; the resize target only applies on save.
	sc.TargetWidth, sc.TargetHeight = 0, 0
	u.appendCaret(&sc)
	preview, err := render.Flatten(sc)
	if err != nil {
		log.Printf("preview: %v", err)
		return
	}
	rect := u.canvasRect()
	xdraw.ApproxBiLinear.Scale(dst, rect, preview, preview.Bounds(), draw.Over, nil)

	if u.tool == ToolCrop {
		u.drawCropOverlay(dst, rect)
	}

	for i, btn := range u.buttons {
		state := StateDefault
		if i == u.hoverButton {
			state = StateHover
		}
		btn.Draw(dst, state)
	}

	u.drawStatusBar(dst)

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// appendCaret marks the text object being edited with a trailing caret.
func (u *UI) appendCaret(sc *render.Scene) {
	editing := u.sess.Text().Editing()
	if editing == nil {
		return
	}
	for i, obj := range u.sess.Texts() {
		if obj.ID == editing.ID && i < len(sc.Labels) {
			sc.Labels[i].Text += "|"
			return
		}
	}
}

func (u *UI) drawCropOverlay(dst *image.RGBA, rect image.Rectangle) {
	box, ok := u.sess.Crop().Box()
	if !ok {
		return
	}
	toDev := func(px, py float64) (int, int) {
		return rect.Min.X + int(px/100*float64(rect.Dx())),
			rect.Min.Y + int(py/100*float64(rect.Dy()))
	}
	x0, y0 := toDev(box.Left, box.Top)
	x1, y1 := toDev(box.Left+box.Width, box.Top+box.Height)
	sel := image.Rect(x0, y0, x1, y1)

	dimOutside(dst, rect.Intersect(dst.Bounds()), sel)
	drawDashedRect(dst, sel, color.White)
	cx := (x0 + x1) / 2
	cy := (y0 + y1) / 2
	for _, h := range [][2]int{
		{x0, y0}, {cx, y0}, {x1, y0}, {x1, cy},
		{x1, y1}, {cx, y1}, {x0, y1}, {x0, cy},
	} {
		drawHandle(dst, h[0], h[1], color.White)
	}
}

func (u *UI) drawStatusBar(dst *image.RGBA) {
	bar := image.Rect(0, u.height-bottomHeight, u.width, u.height)
	draw.Draw(dst, bar, &image.Uniform{currentTheme.ChromeBackground}, image.Point{}, draw.Src)

	st := u.sess.Current()
	status := fmt.Sprintf("%s  %dx%d  %d%%", u.tool, st.Width, st.Height, int(u.zoom*100))
	if st.Filter != render.FilterNone && st.Filter != "" {
		status += "  " + string(st.Filter)
	}
	if u.tool == ToolResize {
		width, height := u.sess.Resize().Fields()
		lock := "unlocked"
		if u.sess.Resize().KeepRatio() {
			lock = "locked"
		}
		marker := []string{" ", " "}
		marker[u.resizeField] = "*"
		status = fmt.Sprintf("resize  W%s[%s] H%s[%s] ratio %s  (tab switches, k toggles, enter applies)",
			marker[0], width, marker[1], height, lock)
	}
	drawLabelText(dst, 6, u.height-8, status, currentTheme.ChromeText)

	if u.message != "" && time.Now().Before(u.messageUntil) {
		drawLabelText(dst, u.width/2, u.height-8, u.message, currentTheme.Accent)
	}

	title := image.Rect(0, 0, u.width, topHeight)
	draw.Draw(dst, title, &image.Uniform{currentTheme.ChromeBackground}, image.Point{}, draw.Src)
	drawLabelText(dst, 6, 18, "Retouch", currentTheme.ChromeText)
}
