package render

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestValidFilter(t *testing.T) {
	for _, f := range Filters() {
		if !ValidFilter(f) {
			t.Fatalf("%q should be valid", f)
		}
	}
	if ValidFilter(Filter("vignette")) {
		t.Fatal("unknown filter accepted")
	}
}

func TestGrayscaleEqualizesChannels(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	out := applyFilter(img, FilterGrayscale)
	px := out.NRGBAAt(2, 2)
	if px.R != px.G || px.G != px.B {
		t.Fatalf("grayscale left unequal channels: %+v", px)
	}
	if px.A != 255 {
		t.Fatalf("grayscale altered alpha: %+v", px)
	}
	// BT.709 luminance of (200, 40, 90)
	lum := 0.2126*200 + 0.7152*40 + 0.0722*90
	want := uint8(lum + 0.5)
	if px.R != want {
		t.Fatalf("luminance %d, want %d", px.R, want)
	}
}

func TestSepiaWarmsPixels(t *testing.T) {
	img := imaging.New(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	out := applyFilter(img, FilterSepia)
	px := out.NRGBAAt(0, 0)
	if !(px.R > px.G && px.G > px.B) {
		t.Fatalf("sepia should order R > G > B, got %+v", px)
	}
}

func TestBrightnessScalesAndClamps(t *testing.T) {
	img := imaging.New(2, 2, color.NRGBA{R: 100, G: 220, B: 0, A: 255})
	out := applyFilter(img, FilterBrightness)
	px := out.NRGBAAt(0, 0)
	if px.R != 125 {
		t.Fatalf("red gain wrong: %d", px.R)
	}
	if px.G != 255 {
		t.Fatalf("green should clamp at 255, got %d", px.G)
	}
	if px.B != 0 {
		t.Fatalf("black channel moved: %d", px.B)
	}
}

func TestNoneFilterIsIdentity(t *testing.T) {
	img := imaging.New(2, 2, color.NRGBA{R: 12, G: 34, B: 56, A: 78})
	out := applyFilter(img, FilterNone)
	if px := out.NRGBAAt(1, 1); (px != color.NRGBA{R: 12, G: 34, B: 56, A: 78}) {
		t.Fatalf("identity filter changed pixels: %+v", px)
	}
}
