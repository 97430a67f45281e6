// Package export writes the flattened artifact in secondary formats.
package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/retouch/internal/imgio"
)

// PDF writes img as a single-page PDF sized exactly to the image at 96
// DPI, so the page has no margins or scaling artifacts.
func PDF(w io.Writer, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("export pdf: empty image")
	}
	const mmPerPixel = 25.4 / 96
	wmm := float64(img.Bounds().Dx()) * mmPerPixel
	hmm := float64(img.Bounds().Dy()) * mmPerPixel

	orientation := "P"
	if wmm > hmm {
		orientation = "L"
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: wmm, Ht: hmm},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	var buf bytes.Buffer
	if err := imgio.EncodePNG(&buf, img); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("artifact", opts, &buf)
	p.ImageOptions("artifact", 0, 0, wmm, hmm, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
