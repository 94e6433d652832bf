// Package layout computes the plot geometry of the price chart and maps
// series values to pixel coordinates.
package layout

import (
	"math"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
)

const (
	// LeftPadding is the fixed gap between the canvas and the plot on the left.
	LeftPadding = 40.0
	// VerticalPadding is applied above the readout and below the plot.
	VerticalPadding = 40.0
	// PriceAreaHeight is reserved between the top padding and the plot for the readout.
	PriceAreaHeight = 50.0
	// MinRightPadding is the smallest right padding regardless of label width.
	MinRightPadding = 80.0
	// LabelGap separates the numeric price from the currency suffix.
	LabelGap = 2.0
	// LabelMargin is added to the measured readout width on the right.
	LabelMargin = 40.0
)

// Compute returns the layout for a canvas of the given CSS size.
// The right padding grows with the measured readout so that the price label
// centred on the last point never clips.
func Compute(canvasWidth, canvasHeight, priceLabelWidth, usdLabelWidth float64) entity.Layout {
	right := math.Max(MinRightPadding, priceLabelWidth+LabelGap+usdLabelWidth+LabelMargin)
	top := VerticalPadding + PriceAreaHeight

	return entity.Layout{
		LeftPadding:     LeftPadding,
		RightPadding:    right,
		VerticalPadding: VerticalPadding,
		PriceAreaHeight: PriceAreaHeight,
		ChartTop:        top,
		ChartWidth:      canvasWidth - LeftPadding - right,
		ChartHeight:     canvasHeight - 2*VerticalPadding - PriceAreaHeight,
	}
}

// PriceRange returns the minimum and maximum price of the whole series.
func PriceRange(series []entity.DataPoint) (lo, hi float64) {
	if len(series) == 0 {
		return 0, 0
	}
	lo, hi = series[0].Price, series[0].Price
	for _, p := range series[1:] {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	return lo, hi
}

// Scale maps (index, price) pairs into a layout.
type Scale struct {
	layout   entity.Layout
	n        int
	minPrice float64
	maxPrice float64
}

// NewScale builds a Scale over the full price range of series.
func NewScale(l entity.Layout, series []entity.DataPoint) Scale {
	lo, hi := PriceRange(series)
	return Scale{layout: l, n: len(series), minPrice: lo, maxPrice: hi}
}

// Flat reports whether every price in the series is the same.
func (s Scale) Flat() bool {
	return s.maxPrice == s.minPrice
}

// MapToPixel returns the pixel position of the index-th point with the given price.
// A flat series sits on the vertical centre of the plot.
func (s Scale) MapToPixel(index int, price float64) (x, y float64) {
	l := s.layout
	x = l.LeftPadding
	if s.n > 1 {
		x += float64(index) / float64(s.n-1) * l.ChartWidth
	}

	if s.Flat() {
		return x, l.ChartTop + l.ChartHeight/2
	}
	ratio := (price - s.minPrice) / (s.maxPrice - s.minPrice)
	return x, l.ChartTop + l.ChartHeight - ratio*l.ChartHeight
}

// MapToPixel is the one-shot form of Scale.MapToPixel.
func MapToPixel(index int, price float64, l entity.Layout, series []entity.DataPoint) (x, y float64) {
	return NewScale(l, series).MapToPixel(index, price)
}

// Project maps every point of series into l.
func Project(l entity.Layout, series []entity.DataPoint) []entity.PlottedPoint {
	s := NewScale(l, series)
	out := make([]entity.PlottedPoint, len(series))
	for i, p := range series {
		x, y := s.MapToPixel(i, p.Price)
		out[i] = entity.PlottedPoint{X: x, Y: y, Price: p.Price, Date: p.Date}
	}
	return out
}
