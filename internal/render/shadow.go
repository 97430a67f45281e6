package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow added around an exported image.
type ShadowOptions struct {
	Sigma   float64     // blur strength
	Offset  image.Point // shadow displacement
	Opacity float64     // 0..1
}

// DefaultShadowOptions returns a conservative drop shadow that works well
// for most images.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Sigma:   8,
		Offset:  image.Pt(12, 12),
		Opacity: 0.55,
	}
}

// Shadow composites img over a blurred drop shadow on an expanded
// transparent canvas. An opacity of zero returns the source unchanged.
func Shadow(img image.Image, opts ShadowOptions) *image.NRGBA {
	src := imaging.Clone(img)
	if src.Bounds().Empty() || opts.Opacity <= 0 {
		return src
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	sigma := opts.Sigma
	if sigma < 0 {
		sigma = 0
	}

	// The blur bleeds roughly three sigmas past the silhouette.
	margin := int(sigma * 3)
	srcRect := src.Bounds().Sub(src.Bounds().Min)
	shadowRect := srcRect.Add(opts.Offset).Inset(-margin)
	canvas := srcRect.Union(shadowRect)

	silhouette := image.NewNRGBA(canvas.Sub(canvas.Min))
	origin := srcRect.Min.Add(opts.Offset).Sub(canvas.Min)
	alpha := func(a uint8) uint8 {
		return uint8(float64(a)*opacity + 0.5)
	}
	for y := 0; y < srcRect.Dy(); y++ {
		for x := 0; x < srcRect.Dx(); x++ {
			a := src.NRGBAAt(x, y).A
			if a == 0 {
				continue
			}
			silhouette.SetNRGBA(origin.X+x, origin.Y+y, color.NRGBA{A: alpha(a)})
		}
	}

	out := silhouette
	if sigma > 0 {
		out = imaging.Blur(silhouette, sigma)
	}
	draw.Draw(out, srcRect.Sub(canvas.Min), src, srcRect.Min, draw.Over)
	return out
}
