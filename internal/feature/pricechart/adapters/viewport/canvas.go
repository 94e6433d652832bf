package viewport

import (
	"portfolio_chart/internal/feature/pricechart/domain/paint"
)

// Canvas is a drawing element. Its 2D context records operations instead of
// rasterising them; encoders replay the recorded frame.
type Canvas struct {
	id       string
	measurer Measurer

	clientW, clientH float64
	ratio            float64

	backingW, backingH int
	scale              float64
	ops                []paint.Op

	move  listenerSet[func(float64)]
	leave listenerSet[func()]
}

// ID returns the element id.
func (c *Canvas) ID() string { return c.id }

func (c *Canvas) ClientSize() (float64, float64) { return c.clientW, c.clientH }

func (c *Canvas) PixelRatio() float64 { return c.ratio }

// SetBackingSize resizes the backing store; like a canvas element this wipes it.
func (c *Canvas) SetBackingSize(width, height int, scale float64) {
	c.backingW, c.backingH = max(width, 0), max(height, 0)
	c.scale = scale
	c.ops = nil
}

func (c *Canvas) Clear() {
	c.ops = nil
}

func (c *Canvas) MeasureText(text string, f paint.Font) float64 {
	if c.measurer == nil {
		return 0
	}
	return c.measurer.Measure(text, f)
}

func (c *Canvas) FillPath(path *paint.Path, fill paint.Fill) {
	if path.Empty() {
		return
	}
	c.ops = append(c.ops, paint.Op{Kind: paint.OpFillPath, Path: path, Fill: fill})
}

func (c *Canvas) StrokePath(path *paint.Path, stroke paint.Stroke) {
	if path.Empty() || stroke.Width <= 0 {
		return
	}
	c.ops = append(c.ops, paint.Op{Kind: paint.OpStrokePath, Path: path, Stroke: stroke})
}

func (c *Canvas) FillText(text paint.Text) {
	if text.Body == "" {
		return
	}
	c.ops = append(c.ops, paint.Op{Kind: paint.OpText, Text: text})
}

func (c *Canvas) OnPointerMove(fn func(x float64)) func() {
	return c.move.add(fn)
}

func (c *Canvas) OnPointerLeave(fn func()) func() {
	return c.leave.add(fn)
}

// Listeners returns the number of registered pointer listeners.
func (c *Canvas) Listeners() int {
	return c.move.len() + c.leave.len()
}

// Frame returns a snapshot of the recorded operations.
func (c *Canvas) Frame() paint.Frame {
	ops := make([]paint.Op, len(c.ops))
	copy(ops, c.ops)
	return paint.Frame{
		Width:        c.backingW,
		Height:       c.backingH,
		Scale:        c.scale,
		ClientWidth:  c.clientW,
		ClientHeight: c.clientH,
		Ops:          ops,
	}
}
