package usecase

import (
	"fmt"
	"math"

	"portfolio_chart/internal/feature/pricechart/domain/curve"
	"portfolio_chart/internal/feature/pricechart/domain/entity"
	"portfolio_chart/internal/feature/pricechart/domain/layout"
	"portfolio_chart/internal/feature/pricechart/domain/paint"
)

const (
	dateLabelOffset = 20.0 // below the baseline
	priceBaseline   = 10.0 // below the top padding
	changeBaseline  = 27.0 // below the top padding
)

var guideDash = []float64{4, 4}

// Renderer paints a price series onto a Surface.
type Renderer struct {
	theme Theme
}

// NewRenderer returns a Renderer using theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// LayoutFor measures the padding sample on s and computes the layout of a
// width x height canvas.
func (r *Renderer) LayoutFor(s Surface, width, height float64) entity.Layout {
	priceW := s.MeasureText(PaddingSample, r.theme.PaddingFont)
	usdW := s.MeasureText(Currency, r.theme.CurrencyFont)
	return layout.Compute(width, height, priceW, usdW)
}

// ReadoutFor returns what the price label shows for series and hover.
// Without an active in-range hover the last point is displayed. The change
// is always relative to the first point.
func ReadoutFor(series []entity.DataPoint, hover entity.HoverState) (entity.Readout, bool) {
	n := len(series)
	if n == 0 {
		return entity.Readout{}, false
	}
	idx := n - 1
	hovered := hover.Active && hover.Index >= 0 && hover.Index < n
	if hovered {
		idx = hover.Index
	}

	first := series[0].Price
	price := series[idx].Price
	change := 0.0
	if first != 0 {
		change = (price - first) / first * 100
	}
	return entity.Readout{
		DisplayIndex:  idx,
		Hovered:       hovered,
		Date:          series[idx].Date,
		Price:         price,
		FirstPrice:    first,
		ChangePercent: change,
		Positive:      price >= first,
	}, true
}

// Draw clears s and paints the chart. It returns the layout it used so that
// pointer positions can be resolved against it.
// Degenerate geometry leaves the surface cleared; a flat series skips the
// curve and its fill.
func (r *Renderer) Draw(s Surface, width, height float64, series []entity.DataPoint, hover entity.HoverState) entity.Layout {
	s.Clear()

	l := r.LayoutFor(s, width, height)
	if !l.Drawable(len(series)) {
		return l
	}

	pts := layout.Project(l, series)
	if !layout.NewScale(l, series).Flat() {
		segs := curve.Smooth(knots(pts), curve.DefaultTension)
		r.drawFill(s, l, pts, segs)
		r.drawLine(s, pts, segs)
	}
	r.drawDates(s, l, pts)

	ro, _ := ReadoutFor(series, hover)
	p := pts[ro.DisplayIndex]
	r.drawReadout(s, l, p.X, ro)
	r.drawGuide(s, l, p.X)
	r.drawMarker(s, p)
	return l
}

func knots(pts []entity.PlottedPoint) []curve.Point {
	out := make([]curve.Point, len(pts))
	for i, p := range pts {
		out[i] = curve.Point{X: p.X, Y: p.Y}
	}
	return out
}

func appendSegments(path *paint.Path, segs []curve.Segment) {
	for _, sg := range segs {
		if sg.Straight {
			path.LineTo(sg.End.X, sg.End.Y)
			continue
		}
		path.CubicTo(sg.C1.X, sg.C1.Y, sg.C2.X, sg.C2.Y, sg.End.X, sg.End.Y)
	}
}

func (r *Renderer) drawFill(s Surface, l entity.Layout, pts []entity.PlottedPoint, segs []curve.Segment) {
	first, last := pts[0], pts[len(pts)-1]
	base := l.Baseline()

	path := paint.NewPath().MoveTo(first.X, base).LineTo(first.X, first.Y)
	appendSegments(path, segs)
	path.LineTo(last.X, base).Close()

	s.FillPath(path, paint.Fill{
		Gradient: &paint.LinearGradient{
			Y0: l.ChartTop,
			Y1: base,
			Stops: []paint.GradientStop{
				{Offset: 0, Color: r.theme.Accent.WithAlpha(r.theme.FillTopAlpha)},
				{Offset: 1, Color: r.theme.Accent.WithAlpha(0)},
			},
		},
	})
}

func (r *Renderer) drawLine(s Surface, pts []entity.PlottedPoint, segs []curve.Segment) {
	path := paint.NewPath().MoveTo(pts[0].X, pts[0].Y)
	appendSegments(path, segs)
	s.StrokePath(path, paint.Stroke{Color: r.theme.Accent, Width: r.theme.LineWidth, Round: true})
}

// drawDates labels the first, middle and last points as dd.mm.
func (r *Renderer) drawDates(s Surface, l entity.Layout, pts []entity.PlottedPoint) {
	n := len(pts)
	for _, i := range []int{0, n / 2, n - 1} {
		label := pts[i].Date.Format("02.01")
		s.FillText(paint.Text{
			Body:  label,
			X:     pts[i].X,
			Y:     l.Baseline() + dateLabelOffset,
			Font:  r.theme.DateFont,
			Color: r.theme.Muted,
			Align: paint.AlignCenter,
			Width: s.MeasureText(label, r.theme.DateFont),
		})
	}
}

// drawReadout centres "price USD" and the change on x, keeping the label's
// left edge inside the left padding.
func (r *Renderer) drawReadout(s Surface, l entity.Layout, x float64, ro entity.Readout) {
	t := r.theme
	priceText := fmt.Sprintf("%.2f", ro.Price)
	priceW := s.MeasureText(priceText, t.PriceFont)
	usdW := s.MeasureText(Currency, t.CurrencyFont)
	total := priceW + layout.LabelGap + usdW

	center := math.Max(l.LeftPadding+total/2, x)
	start := center - total/2
	y := l.VerticalPadding + priceBaseline

	s.FillText(paint.Text{Body: priceText, X: start, Y: y, Font: t.PriceFont, Color: t.Text, Align: paint.AlignLeft, Width: priceW})
	s.FillText(paint.Text{Body: Currency, X: start + priceW + layout.LabelGap, Y: y, Font: t.CurrencyFont, Color: t.Muted, Align: paint.AlignLeft, Width: usdW})

	changeColor := t.Negative
	if ro.Positive {
		changeColor = t.Accent
	}
	changeText := FormatChange(ro.ChangePercent)
	s.FillText(paint.Text{
		Body:  changeText,
		X:     center,
		Y:     l.VerticalPadding + changeBaseline,
		Font:  t.ChangeFont,
		Color: changeColor,
		Align: paint.AlignCenter,
		Width: s.MeasureText(changeText, t.ChangeFont),
	})
}

// FormatChange renders a percent change with an explicit sign and one decimal.
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

func (r *Renderer) drawGuide(s Surface, l entity.Layout, x float64) {
	path := paint.NewPath().MoveTo(x, l.ChartTop).LineTo(x, l.Baseline())
	s.StrokePath(path, paint.Stroke{Color: r.theme.Guide, Width: 1, Dash: guideDash})
}

func (r *Renderer) drawMarker(s Surface, p entity.PlottedPoint) {
	path := paint.NewPath().Circle(p.X, p.Y, r.theme.MarkerRadius)
	s.FillPath(path, paint.Fill{Color: r.theme.Accent})
	s.StrokePath(path, paint.Stroke{Color: r.theme.MarkerBorder, Width: 2})
}
