package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// referenceWidth is the output width at which a label's Size equals its
// rendered point size. Labels on wider or narrower outputs are scaled
// proportionally so text stays visually consistent across resolutions.
const referenceWidth = 1000.0

// Scene is everything the compositor needs to flatten one edited image. It
// is a plain value so callers can assemble it from a state snapshot without
// this package knowing about editor types.
type Scene struct {
	// Base holds the current raster (the source image, or the extracted
	// pixels after a crop).
	Base *image.NRGBA
	// Rotation is in clockwise degrees, one of 0, 90, 180 or 270.
	Rotation int
	Filter   Filter
	Strokes  []Stroke
	Labels   []TextLabel
	// TargetWidth and TargetHeight, when positive, resample the flattened
	// result to the requested dimensions as the final step.
	TargetWidth  int
	TargetHeight int
}

// Flatten renders the scene onto a freshly allocated raster in a fixed
// z-order: rotated and filtered base image, then strokes in insertion
// order, then labels in collection order. The result is resampled to the
// target dimensions when a resize is pending.
func Flatten(sc Scene) (*image.NRGBA, error) {
	if sc.Base == nil || sc.Base.Bounds().Empty() {
		return nil, fmt.Errorf("flatten: no base image")
	}
	w := sc.Base.Bounds().Dx()
	h := sc.Base.Bounds().Dy()

	layer := applyFilter(imaging.Clone(sc.Base), sc.Filter)
	layer = rotateQuarter(layer, sc.Rotation)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	// Centre the rotated layer; a 90 or 270 degree turn of a non-square
	// image clips at the raster edges, matching an on-canvas rotation
	// about the centre.
	offset := image.Pt((w-layer.Bounds().Dx())/2, (h-layer.Bounds().Dy())/2)
	draw.Draw(out, layer.Bounds().Add(offset), layer, layer.Bounds().Min, draw.Over)

	for _, s := range sc.Strokes {
		drawStroke(out, s)
	}
	for _, l := range sc.Labels {
		drawLabel(out, l)
	}

	if sc.TargetWidth > 0 && sc.TargetHeight > 0 && (sc.TargetWidth != w || sc.TargetHeight != h) {
		out = imaging.Resize(out, sc.TargetWidth, sc.TargetHeight, imaging.Lanczos)
	}
	return out, nil
}

// rotateQuarter rotates img by a multiple of 90 clockwise degrees.
func rotateQuarter(img *image.NRGBA, degrees int) *image.NRGBA {
	switch ((degrees % 360) + 360) % 360 {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// drawLabel renders one text label with a drop shadow for legibility and a
// manually synthesised underline. The label position is resolved from its
// percentage coordinates against the output raster.
func drawLabel(img *image.NRGBA, l TextLabel) {
	if l.Text == "" {
		return
	}
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	scaled := l.Size * w / referenceWidth
	if scaled < 1 {
		scaled = 1
	}
	face := faceFor(l.Bold, l.Italic, scaled)
	adv := (&font.Drawer{Face: face}).MeasureString(l.Text).Ceil()

	var left int
	anchor := int(math.Round(l.X / 100 * w))
	switch l.Align {
	case AlignCenter:
		left = anchor - adv/2
	case AlignRight:
		left = anchor - adv
	default:
		left = anchor
	}
	baseline := int(math.Round(l.Y/100*h)) + face.Metrics().Ascent.Ceil()

	shadowOff := int(math.Max(1, scaled/16))
	shadow := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{A: 160}),
		Face: face,
		Dot:  fixed.P(left+shadowOff, baseline+shadowOff),
	}
	shadow.DrawString(l.Text)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: l.Color.R, G: l.Color.G, B: l.Color.B, A: l.Color.A}),
		Face: face,
		Dot:  fixed.P(left, baseline),
	}
	d.DrawString(l.Text)

	if l.Underline {
		thickness := int(math.Max(1, scaled/14))
		top := baseline + face.Metrics().Descent.Ceil()/2
		rect := image.Rect(left, top, left+adv, top+thickness)
		draw.Draw(img, rect, image.NewUniform(color.NRGBA{R: l.Color.R, G: l.Color.G, B: l.Color.B, A: l.Color.A}), image.Point{}, draw.Over)
	}
}
