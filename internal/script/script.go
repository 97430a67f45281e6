// Package script replays a YAML edit plan through an editing session.
// A plan is a list of operations applied in order, so every interactive
// tool can also be driven headless from the command line.
package script

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/render"
)

// Plan is one parsed edit script.
type Plan struct {
	// Source and Output are optional; the caller may supply both on the
	// command line instead.
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Ops    []Op   `yaml:"ops"`
}

// Box mirrors the crop selection, in percent of the canvas.
type Box struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Op is a single scripted operation. Only the fields relevant to its
// kind are consulted; the rest stay at their zero values.
type Op struct {
	Op string `yaml:"op"`

	// rotate, undo, redo
	Times int `yaml:"times"`

	// filter
	Filter string `yaml:"filter"`

	// resize
	Width     int   `yaml:"width"`
	Height    int   `yaml:"height"`
	KeepRatio *bool `yaml:"keep_ratio"`

	// crop
	Ratio string `yaml:"ratio"`
	Box   *Box   `yaml:"box"`

	// freehand, line
	Color  string       `yaml:"color"`
	Size   float64      `yaml:"size"`
	Points [][2]float64 `yaml:"points"`
	From   *[2]float64  `yaml:"from"`
	To     *[2]float64  `yaml:"to"`

	// text
	Text      string  `yaml:"text"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Bold      bool    `yaml:"bold"`
	Italic    bool    `yaml:"italic"`
	Underline bool    `yaml:"underline"`
	Align     string  `yaml:"align"`
}

// Parse decodes a plan from r. Unknown fields are rejected so a typo in
// a script fails loudly instead of silently doing nothing.
func Parse(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var p Plan
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if len(p.Ops) == 0 {
		return nil, fmt.Errorf("parse plan: no operations")
	}
	return &p, nil
}

// Apply replays every operation of the plan against sess, which must be
// open. The first failing operation aborts the run.
func Apply(sess *editor.Session, p *Plan) error {
	for i, op := range p.Ops {
		if err := applyOp(sess, op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i+1, op.Op, err)
		}
	}
	return nil
}

func applyOp(sess *editor.Session, op Op) error {
	switch op.Op {
	case "rotate":
		for n := 0; n < times(op.Times); n++ {
			sess.Rotate()
		}
		return nil
	case "filter":
		return sess.ApplyFilter(render.Filter(op.Filter))
	case "resize":
		return applyResize(sess, op)
	case "crop":
		return applyCrop(sess, op)
	case "freehand":
		return applyFreehand(sess, op)
	case "line":
		return applyLine(sess, op)
	case "text":
		return applyText(sess, op)
	case "undo":
		for n := 0; n < times(op.Times); n++ {
			sess.Undo()
		}
		return nil
	case "redo":
		for n := 0; n < times(op.Times); n++ {
			sess.Redo()
		}
		return nil
	case "reset":
		sess.ResetEdits()
		return nil
	case "":
		return fmt.Errorf("missing op kind")
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

func times(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func applyResize(sess *editor.Session, op Op) error {
	r := sess.Resize()
	r.Activate()
	if op.KeepRatio != nil {
		r.SetKeepRatio(*op.KeepRatio)
	}
	if op.Width > 0 {
		r.SetWidth(strconv.Itoa(op.Width))
	}
	// Under a ratio lock the height follows the width, so only an
	// explicit height in an unlocked plan is applied.
	if op.Height > 0 && !r.KeepRatio() {
		r.SetHeight(strconv.Itoa(op.Height))
	}
	return r.Apply()
}

func applyCrop(sess *editor.Session, op Op) error {
	ratio := editor.RatioCustom
	if op.Ratio != "" {
		ratio = editor.Ratio(op.Ratio)
	}
	c := sess.Crop()
	if err := c.Activate(ratio); err != nil {
		return err
	}
	if ratio == editor.RatioCustom {
		if op.Box == nil {
			c.Deactivate()
			return fmt.Errorf("custom crop needs a box")
		}
		c.BeginDrag(editor.HandleCreate, op.Box.Left, op.Box.Top)
		c.DragTo(op.Box.Left+op.Box.Width, op.Box.Top+op.Box.Height)
		c.EndDrag()
	}
	if err := c.Apply(); err != nil {
		c.Deactivate()
		return err
	}
	return nil
}

func applyBrush(sess *editor.Session, op Op) error {
	brush := sess.Brush()
	if op.Color != "" {
		col, err := ParseColor(op.Color)
		if err != nil {
			return err
		}
		brush.Color = col
	}
	if op.Size > 0 {
		brush.Size = op.Size
	}
	sess.SetBrush(brush)
	return nil
}

func applyFreehand(sess *editor.Session, op Op) error {
	if len(op.Points) < 1 {
		return fmt.Errorf("freehand needs at least one point")
	}
	if err := applyBrush(sess, op); err != nil {
		return err
	}
	d := sess.Draw()
	d.Activate(render.StrokeFree)
	defer d.Deactivate()
	d.PointerDown(op.Points[0][0], op.Points[0][1])
	for _, pt := range op.Points[1:] {
		d.PointerMove(pt[0], pt[1])
	}
	last := op.Points[len(op.Points)-1]
	d.PointerUp(last[0], last[1])
	return nil
}

func applyLine(sess *editor.Session, op Op) error {
	if op.From == nil || op.To == nil {
		return fmt.Errorf("line needs from and to")
	}
	if err := applyBrush(sess, op); err != nil {
		return err
	}
	d := sess.Draw()
	d.Activate(render.StrokeLine)
	defer d.Deactivate()
	d.PointerDown(op.From[0], op.From[1])
	d.PointerUp(op.To[0], op.To[1])
	return nil
}

func applyText(sess *editor.Session, op Op) error {
	if strings.TrimSpace(op.Text) == "" {
		return fmt.Errorf("text op needs text")
	}
	style := sess.TextStyle()
	if op.Color != "" {
		col, err := ParseColor(op.Color)
		if err != nil {
			return err
		}
		style.Color = col
	}
	if op.Size > 0 {
		style.Size = op.Size
	}
	style.Bold = op.Bold
	style.Italic = op.Italic
	style.Underline = op.Underline
	if op.Align != "" {
		style.Align = render.ParseAlignment(op.Align)
	}
	sess.SetTextStyle(style)

	t := sess.Text()
	t.Activate()
	t.Click(op.X, op.Y)
	t.SetText(op.Text)
	t.Commit()
	t.Deactivate()
	return nil
}

// ParseColor parses #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("color %q must start with #", s)
	}
	var digits string
	switch len(hex) {
	case 6:
		digits = hex + "FF"
	case 8:
		digits = hex
	default:
		return color.RGBA{}, fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
