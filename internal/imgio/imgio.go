// Package imgio loads source rasters and encodes edited artifacts. A
// source reference is either a filesystem path or a base64 data URL, the
// two forms an embedding host hands the editor.
package imgio

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// Load resolves ref into a decoded raster. EXIF orientation is applied
// during decode so the editor always sees upright pixels.
func Load(ref string) (*image.NRGBA, error) {
	if strings.HasPrefix(ref, "data:") {
		return decodeDataURL(ref)
	}
	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	defer f.Close()
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	return imaging.Clone(img), nil
}

// decodeDataURL parses a data:[<mediatype>][;base64],<payload> reference.
func decodeDataURL(ref string) (*image.NRGBA, error) {
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, fmt.Errorf("data url: missing payload")
	}
	meta := ref[len("data:"):comma]
	payload := ref[comma+1:]

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data url: %w", err)
		}
		raw = decoded
	} else {
		raw = []byte(payload)
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("data url: decode: %w", err)
	}
	return imaging.Clone(img), nil
}

// EncodePNG writes img to w as PNG, the editor's artifact format.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// DataURL encodes img as a base64 PNG data URL, the form handed back to a
// browser-embedded host.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Save encodes img to path, picking the format from the extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
