// Package usecase implements the price chart: rendering, pointer tracking and
// the board that serves charts to the transport layer.
package usecase

import (
	"portfolio_chart/internal/feature/pricechart/domain/paint"
)

// Surface is a drawing element together with its 2D context.
// Interfaces are defined here, on the consumer side.
type Surface interface {
	// ClientSize returns the element's box in CSS pixels.
	ClientSize() (width, height float64)
	// PixelRatio returns device pixels per CSS pixel.
	PixelRatio() float64
	// SetBackingSize resizes the backing store (device pixels) and sets the
	// context scale. Resizing clears the surface.
	SetBackingSize(width, height int, scale float64)

	Clear()
	MeasureText(text string, font paint.Font) float64
	FillPath(path *paint.Path, fill paint.Fill)
	StrokePath(path *paint.Path, stroke paint.Stroke)
	FillText(text paint.Text)

	// OnPointerMove registers fn for pointer moves; x is relative to the element's left edge.
	OnPointerMove(fn func(x float64)) (unsubscribe func())
	// OnPointerLeave registers fn for the pointer leaving the element.
	OnPointerLeave(fn func()) (unsubscribe func())
}

// Host is the environment a chart is mounted in.
type Host interface {
	// Lookup finds a drawing surface by element id.
	Lookup(id string) (Surface, bool)
	// OnResize registers fn for viewport resize notifications.
	OnResize(fn func()) (unsubscribe func())
}
