// Package raster replays recorded chart frames onto an RGBA image and
// encodes them as PNG.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/draw"

	"portfolio_chart/internal/feature/pricechart/domain/paint"
	"portfolio_chart/internal/feature/pricechart/usecase"
	"portfolio_chart/internal/platform/fonts"
	"portfolio_chart/internal/shared/ratelimiter"
)

// glyphDPI makes the rasteriser's font size equal to the pixel size.
const glyphDPI = 64

// Encoder implements usecase.FrameEncoder for PNG output.
type Encoder struct {
	fonts   *fonts.Registry
	limiter ratelimiter.RateLimiterInterface
}

// NewEncoder returns a PNG encoder drawing text with reg. limiter may be nil.
func NewEncoder(reg *fonts.Registry, limiter ratelimiter.RateLimiterInterface) *Encoder {
	return &Encoder{fonts: reg, limiter: limiter}
}

func (e *Encoder) ContentType() string { return "image/png" }

// Encode rasterises frame and returns the PNG bytes.
func (e *Encoder) Encode(ctx context.Context, _ usecase.FrameKey, frame paint.Frame) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.limiter != nil {
		e.limiter.WaitIfNeeded()
	}

	img, err := e.Rasterize(frame)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws frame onto a transparent image of its backing size.
// Operations are in CSS pixels and scaled by frame.Scale.
func (e *Encoder) Rasterize(frame paint.Frame) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, max(frame.Width, 1), max(frame.Height, 1)))
	scale := frame.Scale
	if scale <= 0 {
		scale = 1
	}

	gc, err := newContext(img, scale)
	if err != nil {
		return nil, err
	}
	for i, op := range frame.Ops {
		switch op.Kind {
		case paint.OpFillPath:
			if op.Fill.Gradient != nil {
				if err := fillGradient(img, op.Path, *op.Fill.Gradient, scale); err != nil {
					return nil, fmt.Errorf("op %d: %w", i, err)
				}
				continue
			}
			gc.SetFillColor(op.Fill.Color)
			tracePath(gc, op.Path)
			gc.Fill()
		case paint.OpStrokePath:
			applyStroke(gc, op.Stroke)
			tracePath(gc, op.Path)
			gc.Stroke()
		case paint.OpText:
			if err := e.drawText(gc, op.Text); err != nil {
				return nil, fmt.Errorf("op %d: %w", i, err)
			}
		}
	}
	return img, nil
}

func newContext(img *image.RGBA, scale float64) (*drawing.RasterGraphicContext, error) {
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("raster context: %w", err)
	}
	gc.SetDPI(glyphDPI)
	gc.Scale(scale, scale)
	return gc, nil
}

func tracePath(gc *drawing.RasterGraphicContext, p *paint.Path) {
	gc.BeginPath()
	if p == nil {
		return
	}
	for _, sg := range p.Segments {
		switch sg.Kind {
		case paint.MoveTo:
			gc.MoveTo(sg.Pts[0], sg.Pts[1])
		case paint.LineTo:
			gc.LineTo(sg.Pts[0], sg.Pts[1])
		case paint.CubicTo:
			gc.CubicCurveTo(sg.Pts[0], sg.Pts[1], sg.Pts[2], sg.Pts[3], sg.Pts[4], sg.Pts[5])
		case paint.Circle:
			gc.MoveTo(sg.Pts[0]+sg.Radius, sg.Pts[1])
			gc.ArcTo(sg.Pts[0], sg.Pts[1], sg.Radius, sg.Radius, 0, 2*math.Pi)
			gc.Close()
		case paint.ClosePath:
			gc.Close()
		}
	}
}

func applyStroke(gc *drawing.RasterGraphicContext, s paint.Stroke) {
	gc.SetStrokeColor(s.Color)
	gc.SetLineWidth(s.Width)
	gc.SetLineDash(s.Dash, 0)
	if s.Round {
		gc.SetLineCap(drawing.RoundCap)
		gc.SetLineJoin(drawing.RoundJoin)
		return
	}
	gc.SetLineCap(drawing.ButtCap)
	gc.SetLineJoin(drawing.MiterJoin)
}

func (e *Encoder) drawText(gc *drawing.RasterGraphicContext, t paint.Text) error {
	gc.SetFont(e.fonts.TrueType(t.Font))
	gc.SetFontSize(t.Font.Size)
	gc.SetFillColor(t.Color)

	x := t.X
	switch t.Align {
	case paint.AlignCenter:
		x -= t.Width / 2
	case paint.AlignRight:
		x -= t.Width
	}
	gc.BeginPath()
	if _, err := gc.FillStringAt(t.Body, x, t.Y); err != nil {
		return fmt.Errorf("draw text %q: %w", t.Body, err)
	}
	return nil
}

// fillGradient rasterises path into a coverage mask and composites the
// gradient through it.
func fillGradient(dst *image.RGBA, p *paint.Path, g paint.LinearGradient, scale float64) error {
	mask := image.NewRGBA(dst.Bounds())
	gc, err := newContext(mask, scale)
	if err != nil {
		return err
	}
	gc.SetFillColor(drawing.ColorWhite)
	tracePath(gc, p)
	gc.Fill()

	src := verticalGradient{gradient: g, scale: scale, bounds: dst.Bounds()}
	draw.DrawMask(dst, dst.Bounds(), src, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// verticalGradient is an image whose colour depends only on the row.
type verticalGradient struct {
	gradient paint.LinearGradient
	scale    float64
	bounds   image.Rectangle
}

func (v verticalGradient) ColorModel() color.Model { return color.RGBAModel }

func (v verticalGradient) Bounds() image.Rectangle { return v.bounds }

func (v verticalGradient) At(_, y int) color.Color {
	return v.gradient.At((float64(y) + 0.5) / v.scale)
}
