package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestShadowExpandsCanvas(t *testing.T) {
	img := imaging.New(10, 10, color.NRGBA{R: 255, A: 255})

	opts := ShadowOptions{Sigma: 2, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := Shadow(img, opts)
	if out.Bounds().Dx() <= 10 || out.Bounds().Dy() <= 10 {
		t.Fatalf("expected expanded bounds, got %v", out.Bounds())
	}
	// The source sits at the origin and stays opaque.
	if got := out.NRGBAAt(0, 0); got.R != 255 || got.A != 255 {
		t.Fatalf("source pixel lost: %+v", got)
	}
	// Shadow alpha lands around the displaced silhouette.
	if out.NRGBAAt(13, 11).A == 0 {
		t.Fatal("expected shadow alpha at the offset location")
	}
}

func TestShadowZeroOpacityReturnsSource(t *testing.T) {
	fill := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	img := imaging.New(4, 4, fill)

	out := Shadow(img, ShadowOptions{Sigma: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed: %v vs %v", out.Bounds(), img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.NRGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestShadowBlurSpreadsAlpha(t *testing.T) {
	img := imaging.New(2, 2, color.NRGBA{A: 255})
	opts := ShadowOptions{Sigma: 2, Offset: image.Pt(6, 0), Opacity: 1}

	out := Shadow(img, opts)
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatal("expected wider output bounds")
	}
	// The silhouette lands six pixels right of the source, which itself is
	// rebased by the blur margin.
	base := image.Pt(6, 6)
	if out.NRGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at the shadow location")
	}
	if out.NRGBAAt(base.X+2, base.Y).A == 0 {
		t.Fatal("expected blurred alpha past the silhouette edge")
	}
}
