package render

import (
	"image"

	"github.com/disintegration/imaging"
)

// Filter names a pixel transform applied to the base image while it is
// drawn. Filters are stored on the editor state by name and evaluated only
// at render time; the underlying pixels are never modified.
type Filter string

const (
	FilterNone       Filter = "none"
	FilterGrayscale  Filter = "grayscale"
	FilterSepia      Filter = "sepia"
	FilterBlur       Filter = "blur"
	FilterBrightness Filter = "brightness"
)

const (
	// blurSigma is the Gaussian radius used by FilterBlur.
	blurSigma = 4.0
	// brightnessGain is the channel multiplier used by FilterBrightness.
	brightnessGain = 1.25
)

// Filters returns the supported filter set in display order.
func Filters() []Filter {
	return []Filter{FilterNone, FilterGrayscale, FilterSepia, FilterBlur, FilterBrightness}
}

// ValidFilter reports whether f names a supported filter.
func ValidFilter(f Filter) bool {
	for _, known := range Filters() {
		if f == known {
			return true
		}
	}
	return false
}

// colorMatrix is a 5x4 color transform in row-major [R G B A translate]
// order per output channel, operating on 0-255 channel values.
type colorMatrix [20]float64

var grayscaleMatrix = colorMatrix{
	0.2126, 0.7152, 0.0722, 0, 0,
	0.2126, 0.7152, 0.0722, 0, 0,
	0.2126, 0.7152, 0.0722, 0, 0,
	0, 0, 0, 1, 0,
}

var sepiaMatrix = colorMatrix{
	0.393, 0.769, 0.189, 0, 0,
	0.349, 0.686, 0.168, 0, 0,
	0.272, 0.534, 0.131, 0, 0,
	0, 0, 0, 1, 0,
}

func brightnessMatrix(gain float64) colorMatrix {
	return colorMatrix{
		gain, 0, 0, 0, 0,
		0, gain, 0, 0, 0,
		0, 0, gain, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// apply transforms img in place and returns it.
func (m colorMatrix) apply(img *image.NRGBA) *image.NRGBA {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[(y-bounds.Min.Y)*img.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			px := row[x*4 : x*4+4 : x*4+4]
			r := float64(px[0])
			g := float64(px[1])
			b := float64(px[2])
			a := float64(px[3])
			px[0] = clamp8(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
			px[1] = clamp8(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
			px[2] = clamp8(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
			px[3] = clamp8(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
		}
	}
	return img
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// applyFilter returns img with the named filter applied. The input may be
// mutated; callers pass a private copy.
func applyFilter(img *image.NRGBA, f Filter) *image.NRGBA {
	switch f {
	case FilterGrayscale:
		return grayscaleMatrix.apply(img)
	case FilterSepia:
		return sepiaMatrix.apply(img)
	case FilterBrightness:
		return brightnessMatrix(brightnessGain).apply(img)
	case FilterBlur:
		return imaging.Blur(img, blurSigma)
	default:
		return img
	}
}
