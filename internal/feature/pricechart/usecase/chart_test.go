package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_chart/internal/feature/pricechart/adapters/viewport"
	"portfolio_chart/internal/feature/pricechart/domain/entity"
	"portfolio_chart/internal/feature/pricechart/domain/paint"
	"portfolio_chart/internal/feature/pricechart/usecase"
)

// halfEmMeasurer measures every rune as half the font size.
type halfEmMeasurer struct{}

func (halfEmMeasurer) Measure(text string, f paint.Font) float64 {
	return float64(len([]rune(text))) * f.Size / 2
}

// stubSource returns fixed prices dated one day apart, ending 2024-03-31.
type stubSource struct {
	prices []float64
	err    error
	calls  int
}

func (s *stubSource) Generate(days int, basePrice, lowerBound, upperBound float64) ([]entity.DataPoint, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	out := make([]entity.DataPoint, len(s.prices))
	for i, p := range s.prices {
		out[i] = entity.DataPoint{Date: end.AddDate(0, 0, i-(len(s.prices)-1)), Price: p}
	}
	return out, nil
}

// With halfEmMeasurer a 400x300 canvas has right padding 156, so the plot
// spans x = 40..244 with 68px between the four points, and y = 90..260.
const (
	canvasID = "price-chart-canvas"
	plotLeft = 40.0
	spacing  = 68.0
	plotTop  = 90.0
	baseline = 260.0
)

func newScenario(t *testing.T, prices ...float64) (*viewport.Viewport, *usecase.PriceChart) {
	t.Helper()
	if len(prices) == 0 {
		prices = []float64{100, 110, 90, 120}
	}
	vp := viewport.New(halfEmMeasurer{})
	vp.Mount(canvasID, 400, 300, 1)

	chart, err := usecase.NewPriceChart(vp, canvasID, &stubSource{prices: prices}, usecase.DefaultOptions())
	require.NoError(t, err)
	require.True(t, chart.Active())
	return vp, chart
}

func frameOf(t *testing.T, vp *viewport.Viewport) paint.Frame {
	t.Helper()
	f, ok := vp.Frame(canvasID)
	require.True(t, ok)
	return f
}

func textsOf(f paint.Frame) []paint.Text {
	var out []paint.Text
	for _, op := range f.Ops {
		if op.Kind == paint.OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func lastPoint(p *paint.Path) (float64, float64) {
	pts := p.Segments[len(p.Segments)-1].Pts
	return pts[len(pts)-2], pts[len(pts)-1]
}

func TestNewPriceChart_MissingSurface(t *testing.T) {
	vp := viewport.New(halfEmMeasurer{})
	src := &stubSource{prices: []float64{1, 2}}

	chart, err := usecase.NewPriceChart(vp, "missing", src, usecase.DefaultOptions())
	require.NoError(t, err)
	assert.False(t, chart.Active())
	assert.Zero(t, src.calls, "no series is generated without a surface")

	assert.NotPanics(t, func() {
		chart.Resize()
		chart.PointerMove(10)
		chart.PointerLeave()
		chart.Draw()
		chart.Close()
	})
	_, ok := chart.Readout()
	assert.False(t, ok)
}

func TestNewPriceChart_SourceError(t *testing.T) {
	vp := viewport.New(halfEmMeasurer{})
	vp.Mount(canvasID, 400, 300, 1)
	errBoom := errors.New("boom")

	chart, err := usecase.NewPriceChart(vp, canvasID, &stubSource{err: errBoom}, usecase.DefaultOptions())
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, chart)
}

func TestPriceChart_InitialDraw(t *testing.T) {
	vp, chart := newScenario(t)
	f := frameOf(t, vp)

	assert.Equal(t, 400, f.Width)
	assert.Equal(t, 300, f.Height)
	assert.Equal(t, 1.0, f.Scale)

	l := chart.Layout()
	assert.Equal(t, 156.0, l.RightPadding)
	assert.Equal(t, 204.0, l.ChartWidth)
	assert.Equal(t, plotTop, l.ChartTop)
	assert.Equal(t, baseline, l.Baseline())

	kinds := make([]paint.OpKind, len(f.Ops))
	for i, op := range f.Ops {
		kinds[i] = op.Kind
	}
	assert.Equal(t, []paint.OpKind{
		paint.OpFillPath,   // gradient area
		paint.OpStrokePath, // curve
		paint.OpText, paint.OpText, paint.OpText, // dates
		paint.OpText, paint.OpText, paint.OpText, // price, currency, change
		paint.OpStrokePath, // guide
		paint.OpFillPath,   // marker
		paint.OpStrokePath, // marker border
	}, kinds)

	fill := f.Ops[0]
	require.NotNil(t, fill.Fill.Gradient)
	assert.Equal(t, plotTop, fill.Fill.Gradient.Y0)
	assert.Equal(t, baseline, fill.Fill.Gradient.Y1)
	assert.Equal(t, paint.MoveTo, fill.Path.Segments[0].Kind)
	assert.Equal(t, []float64{plotLeft, baseline}, fill.Path.Segments[0].Pts, "fill starts on the baseline")
	assert.Equal(t, paint.ClosePath, fill.Path.Segments[len(fill.Path.Segments)-1].Kind)

	line := f.Ops[1]
	assert.True(t, line.Stroke.Round)
	assert.Equal(t, 2.5, line.Stroke.Width)
	require.Len(t, line.Path.Segments, 4)
	assert.Equal(t, paint.MoveTo, line.Path.Segments[0].Kind)
	for _, sg := range line.Path.Segments[1:] {
		assert.Equal(t, paint.CubicTo, sg.Kind)
	}
	// point 2 (price 90, the minimum) ends the second segment on the baseline
	assert.InDelta(t, plotLeft+2*spacing, line.Path.Segments[2].Pts[4], 1e-9)
	assert.InDelta(t, baseline, line.Path.Segments[2].Pts[5], 1e-9)
	// point 3 (price 120, the maximum) ends the curve on the plot top
	x, y := lastPoint(line.Path)
	assert.InDelta(t, plotLeft+3*spacing, x, 1e-9)
	assert.InDelta(t, plotTop, y, 1e-9)

	texts := textsOf(f)
	assert.Equal(t, "28.03", texts[0].Body)
	assert.Equal(t, "30.03", texts[1].Body, "middle label uses index n/2")
	assert.Equal(t, "31.03", texts[2].Body)
	for _, tx := range texts[:3] {
		assert.Equal(t, baseline+20, tx.Y)
		assert.Equal(t, paint.AlignCenter, tx.Align)
	}

	assert.Equal(t, "120.00", texts[3].Body)
	assert.Equal(t, "USD", texts[4].Body)
	assert.Equal(t, "+20.0%", texts[5].Body)
	assert.Equal(t, usecase.DefaultTheme().Accent, texts[5].Color)
	assert.Equal(t, plotLeft+3*spacing, texts[5].X, "readout follows the last point")

	guide := f.Ops[8]
	assert.Equal(t, []float64{4, 4}, guide.Stroke.Dash)
	assert.Equal(t, []float64{plotLeft + 3*spacing, plotTop}, guide.Path.Segments[0].Pts)
	assert.Equal(t, []float64{plotLeft + 3*spacing, baseline}, guide.Path.Segments[1].Pts)

	marker := f.Ops[9]
	assert.Equal(t, paint.Circle, marker.Path.Segments[0].Kind)
	assert.Equal(t, []float64{plotLeft + 3*spacing, plotTop}, marker.Path.Segments[0].Pts)
	assert.Equal(t, 4.0, marker.Path.Segments[0].Radius)
}

func TestPriceChart_HoverFirstPoint(t *testing.T) {
	vp, chart := newScenario(t)

	vp.PointerMove(canvasID, plotLeft)

	hv := chart.Hover()
	assert.True(t, hv.Active)
	assert.Equal(t, 0, hv.Index)

	ro, ok := chart.Readout()
	require.True(t, ok)
	assert.Equal(t, 0, ro.DisplayIndex)
	assert.True(t, ro.Hovered)
	assert.Zero(t, ro.ChangePercent)
	assert.True(t, ro.Positive)

	texts := textsOf(frameOf(t, vp))
	assert.Equal(t, "100.00", texts[3].Body)
	assert.Equal(t, "+0.0%", texts[5].Body)
	// "100.00" (72px) + gap + "USD" (18px) is centred on x=40 and then clamped right
	assert.Equal(t, plotLeft, texts[3].X, "label never starts left of the padding")
	assert.Equal(t, plotLeft+46, texts[5].X)
}

func TestPriceChart_HoverNegativeChange(t *testing.T) {
	vp, chart := newScenario(t)

	vp.PointerMove(canvasID, plotLeft+2*spacing+10)

	assert.Equal(t, 2, chart.Hover().Index)
	texts := textsOf(frameOf(t, vp))
	assert.Equal(t, "90.00", texts[3].Body)
	assert.Equal(t, "-10.0%", texts[5].Body)
	assert.Equal(t, usecase.DefaultTheme().Negative, texts[5].Color)
}

func TestPriceChart_PointerLeave(t *testing.T) {
	vp, chart := newScenario(t)
	initial := frameOf(t, vp)

	vp.PointerMove(canvasID, plotLeft+spacing)
	require.True(t, chart.Hover().Active)

	vp.PointerLeave(canvasID)
	assert.False(t, chart.Hover().Active)

	ro, _ := chart.Readout()
	assert.Equal(t, 3, ro.DisplayIndex)
	assert.InDelta(t, 20.0, ro.ChangePercent, 1e-9)
	assert.Equal(t, initial, frameOf(t, vp), "leaving restores the default frame")
}

func TestPriceChart_OutOfRangeMoveClearsHover(t *testing.T) {
	tests := []struct {
		name          string
		x             float64
		expectedIndex int
		expectActive  bool
	}{
		{name: "exactly on first point", x: plotLeft, expectedIndex: 0, expectActive: true},
		{name: "left of padding but rounds to first", x: plotLeft - 30, expectedIndex: 0, expectActive: true},
		{name: "halfway rounds up", x: plotLeft + spacing/2, expectedIndex: 1, expectActive: true},
		{name: "exactly on last point", x: plotLeft + 3*spacing, expectedIndex: 3, expectActive: true},
		{name: "too far left", x: plotLeft - 35, expectActive: false},
		{name: "too far right", x: plotLeft + 3*spacing + 40, expectActive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, chart := newScenario(t)
			vp.PointerMove(canvasID, plotLeft+spacing)
			require.True(t, chart.Hover().Active)

			vp.PointerMove(canvasID, tt.x)

			hv := chart.Hover()
			assert.Equal(t, tt.expectActive, hv.Active)
			if tt.expectActive {
				assert.Equal(t, tt.expectedIndex, hv.Index)
			}
		})
	}
}

func TestPriceChart_RepeatedMoveIsIdempotent(t *testing.T) {
	vp, chart := newScenario(t)

	vp.PointerMove(canvasID, 120)
	first := frameOf(t, vp)
	firstHover := chart.Hover()

	vp.PointerMove(canvasID, 120)
	assert.Equal(t, firstHover, chart.Hover())
	assert.Equal(t, first, frameOf(t, vp))

	chart.Draw()
	assert.Equal(t, first, frameOf(t, vp), "redrawing unchanged state gives the same frame")
}

func TestPriceChart_ResizeHighDPI(t *testing.T) {
	vp, chart := newScenario(t)

	require.True(t, vp.Resize(canvasID, 640, 320, 2))

	f := frameOf(t, vp)
	assert.Equal(t, 1280, f.Width)
	assert.Equal(t, 640, f.Height)
	assert.Equal(t, 2.0, f.Scale)
	assert.Equal(t, 640.0, f.ClientWidth)
	assert.Equal(t, 640.0-40-156, chart.Layout().ChartWidth, "layout stays in CSS pixels")
	assert.NotEmpty(t, f.Ops)
}

func TestPriceChart_DegenerateGeometry(t *testing.T) {
	vp, chart := newScenario(t)

	vp.Resize(canvasID, 150, 300, 1)

	assert.Empty(t, frameOf(t, vp).Ops, "no room for the plot")
	assert.False(t, chart.Layout().Drawable(4))

	vp.PointerMove(canvasID, 50)
	assert.False(t, chart.Hover().Active)
}

func TestPriceChart_SinglePoint(t *testing.T) {
	vp, chart := newScenario(t, 180)

	assert.Empty(t, frameOf(t, vp).Ops)
	ro, ok := chart.Readout()
	require.True(t, ok)
	assert.Equal(t, 180.0, ro.Price)
}

func TestPriceChart_FlatSeries(t *testing.T) {
	vp, _ := newScenario(t, 200, 200, 200, 200)
	f := frameOf(t, vp)

	for _, op := range f.Ops {
		assert.Nil(t, op.Fill.Gradient, "no area fill for a flat series")
		if op.Kind == paint.OpStrokePath {
			assert.NotEqual(t, 2.5, op.Stroke.Width, "no curve stroke for a flat series")
		}
	}
	texts := textsOf(f)
	require.Len(t, texts, 6)
	assert.Equal(t, "+0.0%", texts[5].Body)

	marker := f.Ops[len(f.Ops)-1]
	assert.Equal(t, []float64{plotLeft + 3*spacing, plotTop + 85}, marker.Path.Segments[0].Pts, "points sit on the vertical centre")
}

func TestPriceChart_Close(t *testing.T) {
	vp, chart := newScenario(t)
	c, ok := vp.Canvas(canvasID)
	require.True(t, ok)
	require.Equal(t, 2, c.Listeners())

	before := frameOf(t, vp)
	chart.Close()

	assert.Zero(t, c.Listeners())
	assert.False(t, chart.Active())

	vp.PointerMove(canvasID, plotLeft)
	vp.Resize(canvasID, 800, 400, 1)
	assert.Equal(t, before.Ops, frameOf(t, vp).Ops, "a closed chart no longer draws")
	assert.False(t, chart.Hover().Active)
}

func TestPriceChart_Series(t *testing.T) {
	_, chart := newScenario(t)

	s := chart.Series()
	require.Len(t, s, 4)
	s[0].Price = -1

	assert.Equal(t, 100.0, chart.Series()[0].Price, "Series returns a copy")
}
