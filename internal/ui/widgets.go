package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/retouch/internal/theme"
)

// currentTheme styles all chrome drawn by this package. It is set once
// before the event loop starts.
var currentTheme = theme.Default()

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ActionButton is a labelled toolbar button bound to a callback.
type ActionButton struct {
	label      string
	rect       image.Rectangle
	selected   func() bool
	onActivate func()
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	c := currentTheme.ButtonBackground
	switch state {
	case StateHover:
		c = currentTheme.ButtonBackgroundHover
	case StatePressed:
		c = currentTheme.ButtonBackgroundPress
	}
	if b.selected != nil && b.selected() {
		c = currentTheme.ButtonSelected
	}
	draw.Draw(dst, b.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(currentTheme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+4, b.rect.Min.Y+16)}
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) {
	if r != b.rect {
		b.rect = r
	}
}

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// backdropCache holds a cached checkerboard backdrop.
var backdropCache *image.RGBA

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// drawBackdrop fills dst with a cached checkerboard pattern.
func drawBackdrop(dst *image.RGBA) {
	b := dst.Bounds()
	if backdropCache == nil || backdropCache.Bounds() != b {
		backdropCache = image.NewRGBA(b)
		drawCheckerboard(backdropCache, backdropCache.Bounds(), 8, currentTheme.CheckerLight, currentTheme.CheckerDark)
	}
	draw.Draw(dst, b, backdropCache, image.Point{}, draw.Src)
}

// drawBorder strokes the one pixel outline of r.
func drawBorder(dst *image.RGBA, r image.Rectangle, col color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, col)
		dst.Set(x, r.Max.Y-1, col)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, col)
		dst.Set(r.Max.X-1, y, col)
	}
}

// drawDashedRect strokes r with a marching dash pattern.
func drawDashedRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	const dash = 6
	for x := r.Min.X; x < r.Max.X; x++ {
		if (x/dash)%2 == 0 {
			dst.Set(x, r.Min.Y, col)
			dst.Set(x, r.Max.Y-1, col)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if (y/dash)%2 == 0 {
			dst.Set(r.Min.X, y, col)
			dst.Set(r.Max.X-1, y, col)
		}
	}
}

// drawHandle fills a small square grab handle centered on (x, y).
func drawHandle(dst *image.RGBA, x, y int, col color.Color) {
	const half = handleSize / 2
	r := image.Rect(x-half, y-half, x+half, y+half)
	draw.Draw(dst, r, &image.Uniform{col}, image.Point{}, draw.Src)
	drawBorder(dst, r, color.Black)
}

// dimOutside darkens everything in bounds except keep, the crop veil.
func dimOutside(dst *image.RGBA, bounds, keep image.Rectangle) {
	veil := color.RGBA{0, 0, 0, 120}
	for _, r := range []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, keep.Min.Y),
		image.Rect(bounds.Min.X, keep.Max.Y, bounds.Max.X, bounds.Max.Y),
		image.Rect(bounds.Min.X, keep.Min.Y, keep.Min.X, keep.Max.Y),
		image.Rect(keep.Max.X, keep.Min.Y, bounds.Max.X, keep.Max.Y),
	} {
		draw.Draw(dst, r.Intersect(bounds), &image.Uniform{veil}, image.Point{}, draw.Over)
	}
}

// drawLabelText writes small UI chrome text at (x, y) baseline.
func drawLabelText(dst *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13,
		Dot: fixed.P(x, y)}
	d.DrawString(text)
}
