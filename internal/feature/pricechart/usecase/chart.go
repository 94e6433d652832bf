package usecase

import (
	"fmt"
	"log/slog"
	"math"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
)

const (
	// DefaultDays is the length of the mock series.
	DefaultDays = 60
	// DefaultBasePrice is where the random walk starts.
	DefaultBasePrice = 200.0
	// DefaultLowerBound and DefaultUpperBound clamp the walk.
	DefaultLowerBound = 150.0
	DefaultUpperBound = 300.0
)

// SeriesSource produces the chart's price series.
type SeriesSource interface {
	Generate(days int, basePrice, lowerBound, upperBound float64) ([]entity.DataPoint, error)
}

// Options configures a PriceChart.
type Options struct {
	Days       int
	BasePrice  float64
	LowerBound float64
	UpperBound float64
	Theme      Theme
}

// DefaultOptions returns the reference chart configuration.
func DefaultOptions() Options {
	return Options{
		Days:       DefaultDays,
		BasePrice:  DefaultBasePrice,
		LowerBound: DefaultLowerBound,
		UpperBound: DefaultUpperBound,
		Theme:      DefaultTheme(),
	}
}

// PriceChart draws a mock price series on a host surface and follows the
// pointer. It is not safe for concurrent use; the host serialises events.
type PriceChart struct {
	surface  Surface
	renderer *Renderer
	series   []entity.DataPoint
	tracker  PointerTracker

	width, height float64
	layout        entity.Layout

	unsubscribe []func()
}

// NewPriceChart mounts a chart on the element canvasID of host.
// A missing element yields an inactive chart whose methods do nothing.
func NewPriceChart(host Host, canvasID string, source SeriesSource, opts Options) (*PriceChart, error) {
	surface, ok := host.Lookup(canvasID)
	if !ok {
		slog.Debug("chart surface not found", "canvas", canvasID)
		return &PriceChart{}, nil
	}

	series, err := source.Generate(opts.Days, opts.BasePrice, opts.LowerBound, opts.UpperBound)
	if err != nil {
		return nil, fmt.Errorf("generate series for %q: %w", canvasID, err)
	}

	c := &PriceChart{
		surface:  surface,
		renderer: NewRenderer(opts.Theme),
		series:   series,
	}
	c.unsubscribe = append(c.unsubscribe,
		host.OnResize(c.Resize),
		surface.OnPointerMove(c.PointerMove),
		surface.OnPointerLeave(c.PointerLeave),
	)
	c.Resize()
	return c, nil
}

// Active reports whether the chart is bound to a surface.
func (c *PriceChart) Active() bool {
	return c.surface != nil
}

// Close detaches the chart from its host. The surface keeps its last frame.
func (c *PriceChart) Close() {
	for _, fn := range c.unsubscribe {
		fn()
	}
	c.unsubscribe = nil
	c.surface = nil
}

// Resize matches the backing store to the element size and pixel ratio, then redraws.
func (c *PriceChart) Resize() {
	if !c.Active() {
		return
	}
	w, h := c.surface.ClientSize()
	ratio := c.surface.PixelRatio()
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	c.surface.SetBackingSize(int(w*ratio), int(h*ratio), ratio)
	c.width, c.height = w, h
	c.Draw()
}

// PointerMove handles a pointer at x (CSS pixels from the element's left edge).
func (c *PriceChart) PointerMove(x float64) {
	if !c.Active() {
		return
	}
	if c.tracker.Move(x, c.layout, len(c.series)) {
		c.Draw()
	}
}

// PointerLeave clears the hover and redraws.
func (c *PriceChart) PointerLeave() {
	if !c.Active() {
		return
	}
	c.tracker.Leave()
	c.Draw()
}

// Draw repaints the whole chart from the current state.
func (c *PriceChart) Draw() {
	if !c.Active() {
		return
	}
	c.layout = c.renderer.Draw(c.surface, c.width, c.height, c.series, c.tracker.Hover())
}

// Hover returns the current hover state.
func (c *PriceChart) Hover() entity.HoverState {
	return c.tracker.Hover()
}

// Layout returns the layout of the last draw.
func (c *PriceChart) Layout() entity.Layout {
	return c.layout
}

// Readout returns what the price label shows.
func (c *PriceChart) Readout() (entity.Readout, bool) {
	return ReadoutFor(c.series, c.tracker.Hover())
}

// Series returns a copy of the price series.
func (c *PriceChart) Series() []entity.DataPoint {
	out := make([]entity.DataPoint, len(c.series))
	copy(out, c.series)
	return out
}
