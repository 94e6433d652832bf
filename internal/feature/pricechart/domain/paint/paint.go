// Package paint holds the backend-neutral drawing primitives the chart
// renderer emits: paths, fills, strokes, fonts and the recorded frame.
package paint

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Color is the colour type shared with the raster backend.
type Color = drawing.Color

// ParseColor accepts #rgb, #rrggbb, rgb(), rgba() and CSS colour names.
func ParseColor(s string) Color {
	return drawing.ParseColor(s)
}

// SegmentKind identifies a path command.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	CubicTo
	Circle
	ClosePath
)

// Segment is one path command. Pts holds x,y pairs; Circle uses
// Pts[0]=(cx,cy) and Radius.
type Segment struct {
	Kind   SegmentKind
	Pts    []float64
	Radius float64
}

// Path is an ordered list of path commands in CSS pixel space.
type Path struct {
	Segments []Segment
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, Pts: []float64{x, y}})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, Pts: []float64{x, y}})
	return p
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: CubicTo, Pts: []float64{c1x, c1y, c2x, c2y, x, y}})
	return p
}

// Circle adds a full circle as its own sub-path.
func (p *Path) Circle(cx, cy, r float64) *Path {
	p.Segments = append(p.Segments, Segment{Kind: Circle, Pts: []float64{cx, cy}, Radius: r})
	return p
}

func (p *Path) Close() *Path {
	p.Segments = append(p.Segments, Segment{Kind: ClosePath})
	return p
}

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool {
	return p == nil || len(p.Segments) == 0
}

// GradientStop is a colour at a relative offset in [0,1].
type GradientStop struct {
	Offset float64
	Color  Color
}

// LinearGradient is a vertical gradient from Y0 to Y1.
type LinearGradient struct {
	Y0, Y1 float64
	Stops  []GradientStop
}

// At returns the interpolated colour at y.
func (g LinearGradient) At(y float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	t := 0.0
	if g.Y1 != g.Y0 {
		t = (y - g.Y0) / (g.Y1 - g.Y0)
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerp(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

func lerp(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Fill is either a solid colour or, when Gradient is set, a vertical gradient.
type Fill struct {
	Color    Color
	Gradient *LinearGradient
}

// Stroke describes how a path outline is painted.
type Stroke struct {
	Color Color
	Width float64
	Dash  []float64
	Round bool // round caps and joins
}

// Weight is a font weight.
type Weight int

const (
	Regular Weight = 400
	Bold    Weight = 600
)

// Font selects a face by family, size in CSS pixels and weight.
type Font struct {
	Family string
	Size   float64
	Weight Weight
}

// Align is the horizontal text anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text is a single line of text anchored at (X, Y) on the alphabetic baseline.
type Text struct {
	Body  string
	X, Y  float64
	Font  Font
	Color Color
	Align Align
	Width float64 // measured advance width
}

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpFillPath OpKind = iota
	OpStrokePath
	OpText
)

// Op is one recorded drawing operation.
type Op struct {
	Kind   OpKind
	Path   *Path
	Fill   Fill
	Stroke Stroke
	Text   Text
}

// Frame is a snapshot of everything drawn since the last clear.
type Frame struct {
	Width, Height             int     // backing store, device pixels
	Scale                     float64 // device pixels per CSS pixel
	ClientWidth, ClientHeight float64 // CSS pixels
	Ops                       []Op
}
