package render

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce sync.Once
	fontFiles [4]*opentype.Font

	faceMu    sync.Mutex
	faceCache = map[faceKey]font.Face{}
)

type faceKey struct {
	bold   bool
	italic bool
	// size in 1/4 points so nearby float sizes share a face
	quarter int
}

func loadFonts() {
	parse := func(ttf []byte) *opentype.Font {
		f, err := opentype.Parse(ttf)
		if err != nil {
			log.Fatalf("parse font: %v", err)
		}
		return f
	}
	fontFiles[0] = parse(goregular.TTF)
	fontFiles[1] = parse(gobold.TTF)
	fontFiles[2] = parse(goitalic.TTF)
	fontFiles[3] = parse(gobolditalic.TTF)
}

func fontFor(bold, italic bool) *opentype.Font {
	switch {
	case bold && italic:
		return fontFiles[3]
	case italic:
		return fontFiles[2]
	case bold:
		return fontFiles[1]
	default:
		return fontFiles[0]
	}
}

// faceFor returns a cached font face for the given style and point size.
func faceFor(bold, italic bool, size float64) font.Face {
	fontsOnce.Do(loadFonts)
	if size < 1 {
		size = 1
	}
	key := faceKey{bold: bold, italic: italic, quarter: int(size * 4)}
	faceMu.Lock()
	defer faceMu.Unlock()
	if face, ok := faceCache[key]; ok {
		return face
	}
	face, err := opentype.NewFace(fontFor(bold, italic), &opentype.FaceOptions{
		Size:    float64(key.quarter) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	faceCache[key] = face
	return face
}
