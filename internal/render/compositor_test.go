package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestFlattenRequiresBase(t *testing.T) {
	if _, err := Flatten(Scene{}); err == nil {
		t.Fatal("expected an error without a base image")
	}
}

func TestFlattenPreservesDimensions(t *testing.T) {
	out, err := Flatten(Scene{Base: solid(64, 48, color.NRGBA{R: 10, G: 20, B: 30, A: 255})})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if out.Bounds().Dx() != 64 || out.Bounds().Dy() != 48 {
		t.Fatalf("output %v, want 64x48", out.Bounds())
	}
}

func TestFlattenRotationMovesPixels(t *testing.T) {
	base := solid(10, 10, color.NRGBA{R: 255, A: 255})
	// Mark the top-left corner.
	base.SetNRGBA(0, 0, color.NRGBA{B: 255, A: 255})

	out, err := Flatten(Scene{Base: base, Rotation: 90})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	// Clockwise quarter turn sends the top-left corner to the top-right.
	if px := out.NRGBAAt(9, 0); px.B != 255 {
		t.Fatalf("marker not at top-right after 90cw: %+v", px)
	}
}

func TestFlattenFullTurnIsIdentity(t *testing.T) {
	base := solid(8, 8, color.NRGBA{G: 200, A: 255})
	base.SetNRGBA(1, 2, color.NRGBA{R: 255, A: 255})
	out, err := Flatten(Scene{Base: base, Rotation: 360})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if px := out.NRGBAAt(1, 2); px.R != 255 {
		t.Fatalf("360 degrees should be identity, marker at %+v", px)
	}
}

func TestFlattenAppliesFilterToBaseOnly(t *testing.T) {
	base := solid(20, 20, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	red := color.RGBA{R: 255, A: 255}
	out, err := Flatten(Scene{
		Base:   base,
		Filter: FilterGrayscale,
		Strokes: []Stroke{{
			Kind:   StrokeFree,
			Color:  red,
			Size:   4,
			Points: []Point{{X: 10, Y: 10}},
		}},
	})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if px := out.NRGBAAt(2, 2); px.R != px.G || px.G != px.B {
		t.Fatalf("base not grayscaled: %+v", px)
	}
	if px := out.NRGBAAt(10, 10); px.R != 255 || px.G != 0 {
		t.Fatalf("stroke ink was filtered: %+v", px)
	}
}

func TestFlattenDrawsStrokesInPixelSpace(t *testing.T) {
	base := solid(40, 40, color.NRGBA{A: 255})
	out, err := Flatten(Scene{
		Base: base,
		Strokes: []Stroke{{
			Kind:   StrokeLine,
			Color:  color.RGBA{G: 255, A: 255},
			Size:   2,
			Points: []Point{{X: 5, Y: 5}, {X: 35, Y: 5}},
		}},
	})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	for _, x := range []int{5, 20, 35} {
		if px := out.NRGBAAt(x, 5); px.G != 255 {
			t.Fatalf("line missing at x=%d: %+v", x, px)
		}
	}
	if px := out.NRGBAAt(20, 20); px.G == 255 {
		t.Fatal("ink outside the line path")
	}
}

func TestFlattenLaterStrokesPaintOverEarlier(t *testing.T) {
	base := solid(20, 20, color.NRGBA{A: 255})
	at := []Point{{X: 10, Y: 10}}
	out, err := Flatten(Scene{
		Base: base,
		Strokes: []Stroke{
			{Kind: StrokeFree, Color: color.RGBA{R: 255, A: 255}, Size: 6, Points: at},
			{Kind: StrokeFree, Color: color.RGBA{B: 255, A: 255}, Size: 6, Points: at},
		},
	})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if px := out.NRGBAAt(10, 10); px.B != 255 || px.R != 0 {
		t.Fatalf("paint order violated: %+v", px)
	}
}

func TestFlattenDrawsText(t *testing.T) {
	base := solid(200, 100, color.NRGBA{A: 255})
	out, err := Flatten(Scene{
		Base: base,
		Labels: []TextLabel{{
			Text:  "Hi",
			X:     10,
			Y:     10,
			Size:  120,
			Color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			Align: AlignLeft,
		}},
	})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	found := false
	for y := 0; y < 100 && !found; y++ {
		for x := 0; x < 200; x++ {
			if px := out.NRGBAAt(x, y); px.R > 200 && px.G > 200 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("no text pixels rendered")
	}
}

func TestFlattenSkipsEmptyLabels(t *testing.T) {
	base := solid(50, 50, color.NRGBA{A: 255})
	out, err := Flatten(Scene{
		Base:   base,
		Labels: []TextLabel{{Text: "", X: 50, Y: 50, Size: 40, Color: color.RGBA{R: 255, A: 255}}},
	})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if px := out.NRGBAAt(x, y); px.R != 0 {
				t.Fatalf("empty label drew ink at (%d, %d)", x, y)
			}
		}
	}
}

func TestFlattenResamplesToTargetDimensions(t *testing.T) {
	base := solid(100, 50, color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	out, err := Flatten(Scene{Base: base, TargetWidth: 50, TargetHeight: 25})
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 25 {
		t.Fatalf("resample produced %v, want 50x25", out.Bounds())
	}
}

func TestFlattenDoesNotMutateBase(t *testing.T) {
	base := solid(10, 10, color.NRGBA{R: 7, G: 7, B: 7, A: 255})
	if _, err := Flatten(Scene{Base: base, Filter: FilterGrayscale, Rotation: 180}); err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if px := base.NRGBAAt(3, 3); (px != color.NRGBA{R: 7, G: 7, B: 7, A: 255}) {
		t.Fatalf("flatten mutated the base raster: %+v", px)
	}
}
