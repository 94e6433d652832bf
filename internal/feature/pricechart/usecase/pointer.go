package usecase

import (
	"math"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
)

// PointerTracker resolves pointer positions to the nearest series index.
//
// A move that resolves outside [0, n) clears the hover, the same as leaving
// the surface.
type PointerTracker struct {
	hover entity.HoverState
}

// Hover returns the current hover state.
func (t *PointerTracker) Hover() entity.HoverState {
	return t.hover
}

// IndexAt returns the index nearest to x, rounding halves up.
// ok is false when the layout cannot hold n points or x is outside the plotted range.
func IndexAt(x float64, l entity.Layout, n int) (index int, ok bool) {
	if !l.Drawable(n) {
		return 0, false
	}
	spacing := l.ChartWidth / float64(n-1)
	index = int(math.Floor((x-l.LeftPadding)/spacing + 0.5))
	if index < 0 || index >= n {
		return 0, false
	}
	return index, true
}

// Move updates the hover for a pointer at x. redraw is true for every
// accepted move, and for a rejected move that cleared an active hover.
func (t *PointerTracker) Move(x float64, l entity.Layout, n int) (redraw bool) {
	index, ok := IndexAt(x, l, n)
	if !ok {
		return t.Leave()
	}
	t.hover = entity.HoverState{Index: index, Active: true}
	return true
}

// Leave clears the hover and reports whether it was active.
func (t *PointerTracker) Leave() (wasActive bool) {
	wasActive = t.hover.Active
	t.hover = entity.HoverState{}
	return wasActive
}
