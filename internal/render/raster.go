package render

import (
	"image"
	"image/color"
	"math"
)

// stampDot paints a filled circle of diameter size centred on (cx, cy).
// Stamping dots along a path gives strokes round caps and round joins.
func stampDot(img *image.NRGBA, cx, cy int, size float64, col color.RGBA) {
	r := int(math.Ceil(size / 2))
	if r < 1 {
		r = 1
	}
	rr := float64(r) * float64(r)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) > rr {
				continue
			}
			px := cx + dx
			py := cy + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.SetNRGBA(px, py, color.NRGBA{R: col.R, G: col.G, B: col.B, A: col.A})
			}
		}
	}
}

// strokeSegment walks Bresenham's line from (x0, y0) to (x1, y1), stamping
// the brush at every step.
func strokeSegment(img *image.NRGBA, x0, y0, x1, y1 int, size float64, col color.RGBA) {
	dx := int(math.Abs(float64(x1 - x0)))
	dy := int(math.Abs(float64(y1 - y0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stampDot(img, x0, y0, size, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawStroke replays one stroke onto img. A single-point freehand stroke
// renders as a dot.
func drawStroke(img *image.NRGBA, s Stroke) {
	if len(s.Points) == 0 {
		return
	}
	if len(s.Points) == 1 {
		p := s.Points[0]
		stampDot(img, int(math.Round(p.X)), int(math.Round(p.Y)), s.Size, s.Color)
		return
	}
	for i := 1; i < len(s.Points); i++ {
		a := s.Points[i-1]
		b := s.Points[i]
		strokeSegment(img,
			int(math.Round(a.X)), int(math.Round(a.Y)),
			int(math.Round(b.X)), int(math.Round(b.Y)),
			s.Size, s.Color)
	}
}
