// Package entity defines the domain models for the price chart feature.
package entity

import "time"

// DataPoint is one day of the chart's price series.
// A series is generated once per chart instance and never mutated.
type DataPoint struct {
	Date  time.Time // Calendar day (midnight in the generator's location)
	Price float64   // Price in the quote currency
}

// PlottedPoint is a DataPoint projected onto the current layout.
// It is recomputed on every draw.
type PlottedPoint struct {
	X     float64   // Horizontal pixel position (CSS pixels)
	Y     float64   // Vertical pixel position (CSS pixels)
	Price float64   // Source price
	Date  time.Time // Source date
}

// Layout describes the plot rectangle inside the canvas.
type Layout struct {
	LeftPadding     float64
	RightPadding    float64
	VerticalPadding float64
	PriceAreaHeight float64 // Reserved above the plot for the price readout
	ChartTop        float64
	ChartWidth      float64
	ChartHeight     float64
}

// Baseline is the y coordinate of the plot's bottom edge.
func (l Layout) Baseline() float64 {
	return l.ChartTop + l.ChartHeight
}

// Drawable reports whether a series of length n can be plotted in l.
func (l Layout) Drawable(n int) bool {
	return l.ChartWidth > 0 && n >= 2
}

// HoverState tracks the series index under the pointer.
type HoverState struct {
	Index  int
	Active bool
}

// Readout is what the top price label currently shows.
type Readout struct {
	DisplayIndex  int
	Hovered       bool
	Date          time.Time
	Price         float64
	FirstPrice    float64
	ChangePercent float64
	Positive      bool // Price >= FirstPrice
}
