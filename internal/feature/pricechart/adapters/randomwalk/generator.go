// Package randomwalk generates the chart's mock price series: a bounded
// random walk with a slight upward drift.
package randomwalk

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
)

const (
	// StepBias is subtracted from each uniform draw; below 0.5 it skews the walk upward.
	StepBias = 0.45
	// StepScale multiplies each biased draw.
	StepScale = 8.0
)

var (
	ErrInvalidDays   = errors.New("days must be positive")
	ErrInvalidBounds = errors.New("lower bound must not exceed upper bound")
	ErrInvalidPrice  = errors.New("prices must be finite")
)

// Source provides uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Generator produces random-walk series ending today.
type Generator struct {
	rnd Source
	now func() time.Time
}

// NewGenerator returns a Generator. A nil rnd uses the unseeded global source
// and a nil now uses time.Now.
func NewGenerator(rnd Source, now func() time.Time) *Generator {
	if rnd == nil {
		rnd = globalSource{}
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now}
}

// NewSeeded returns a Generator with a reproducible source.
func NewSeeded(seed uint64, now func() time.Time) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now)
}

// Generate returns days points dated today-(days-1) through today.
// Every step, the first included, moves the price by (u-StepBias)*StepScale
// and clamps it into [lower, upper].
func (g *Generator) Generate(days int, basePrice, lower, upper float64) ([]entity.DataPoint, error) {
	if days <= 0 {
		return nil, ErrInvalidDays
	}
	for _, v := range []float64{basePrice, lower, upper} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidPrice
		}
	}
	if lower > upper {
		return nil, ErrInvalidBounds
	}

	now := g.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := make([]entity.DataPoint, days)
	price := basePrice
	for i := range out {
		price += (g.rnd.Float64() - StepBias) * StepScale
		price = math.Max(lower, math.Min(upper, price))
		out[i] = entity.DataPoint{
			Date:  today.AddDate(0, 0, i-(days-1)),
			Price: price,
		}
	}
	return out, nil
}
