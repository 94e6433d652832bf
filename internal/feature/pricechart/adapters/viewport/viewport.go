// Package viewport is the in-process host page for charts: it resolves
// canvases by id, delivers resize and pointer events to their listeners and
// records what is drawn on each canvas as a display list.
//
// A Viewport is not safe for concurrent use; callers serialise events the
// way a browser event loop would.
package viewport

import (
	"slices"

	"portfolio_chart/internal/feature/pricechart/domain/paint"
	"portfolio_chart/internal/feature/pricechart/usecase"
)

// Measurer measures text advance widths in CSS pixels.
type Measurer interface {
	Measure(text string, f paint.Font) float64
}

type entry[T any] struct {
	id int
	fn T
}

// listenerSet keeps registration order and supports removal during dispatch.
type listenerSet[T any] struct {
	next    int
	entries []entry[T]
}

func (s *listenerSet[T]) add(fn T) func() {
	s.next++
	id := s.next
	s.entries = append(s.entries, entry[T]{id: id, fn: fn})
	return func() {
		s.entries = slices.DeleteFunc(s.entries, func(e entry[T]) bool { return e.id == id })
	}
}

func (s *listenerSet[T]) snapshot() []T {
	out := make([]T, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.fn
	}
	return out
}

func (s *listenerSet[T]) len() int {
	return len(s.entries)
}

// Viewport is a page holding canvases.
type Viewport struct {
	measurer Measurer
	canvases map[string]*Canvas
	resize   listenerSet[func()]
}

// New returns an empty viewport measuring text with m.
func New(m Measurer) *Viewport {
	return &Viewport{
		measurer: m,
		canvases: make(map[string]*Canvas),
	}
}

// Mount adds (or replaces) a canvas element with the given CSS box and pixel ratio.
func (v *Viewport) Mount(id string, width, height, ratio float64) *Canvas {
	c := &Canvas{
		id:       id,
		measurer: v.measurer,
		clientW:  width,
		clientH:  height,
		ratio:    ratio,
		scale:    1,
	}
	v.canvases[id] = c
	return c
}

// Canvas returns the element with the given id.
func (v *Viewport) Canvas(id string) (*Canvas, bool) {
	c, ok := v.canvases[id]
	return c, ok
}

// Lookup implements usecase.Host.
func (v *Viewport) Lookup(id string) (usecase.Surface, bool) {
	c, ok := v.canvases[id]
	if !ok {
		return nil, false
	}
	return c, true
}

// OnResize implements usecase.Host.
func (v *Viewport) OnResize(fn func()) func() {
	return v.resize.add(fn)
}

// Resize changes the element box of id and notifies every resize listener.
func (v *Viewport) Resize(id string, width, height, ratio float64) bool {
	c, ok := v.canvases[id]
	if !ok {
		return false
	}
	c.clientW, c.clientH, c.ratio = width, height, ratio
	for _, fn := range v.resize.snapshot() {
		fn()
	}
	return true
}

// PointerMove delivers a pointer move at x to the listeners of id.
func (v *Viewport) PointerMove(id string, x float64) bool {
	c, ok := v.canvases[id]
	if !ok {
		return false
	}
	for _, fn := range c.move.snapshot() {
		fn(x)
	}
	return true
}

// PointerLeave delivers a pointer leave to the listeners of id.
func (v *Viewport) PointerLeave(id string) bool {
	c, ok := v.canvases[id]
	if !ok {
		return false
	}
	for _, fn := range c.leave.snapshot() {
		fn()
	}
	return true
}

// Frame snapshots the display list of id.
func (v *Viewport) Frame(id string) (paint.Frame, bool) {
	c, ok := v.canvases[id]
	if !ok {
		return paint.Frame{}, false
	}
	return c.Frame(), true
}
