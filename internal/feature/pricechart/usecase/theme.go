package usecase

import (
	"portfolio_chart/internal/feature/pricechart/domain/paint"
)

const (
	// PaddingSample is measured to size the right padding for the widest expected price.
	PaddingSample = "999.99"
	// Currency is drawn after the price.
	Currency = "USD"
)

// Theme holds the colours and fonts of the chart.
type Theme struct {
	Accent       paint.Color // line, marker and positive change
	Negative     paint.Color // negative change
	Text         paint.Color // price
	Muted        paint.Color // currency and date labels
	Guide        paint.Color // dashed vertical guide
	MarkerBorder paint.Color

	FillTopAlpha uint8 // gradient alpha next to the curve
	LineWidth    float64
	MarkerRadius float64

	PaddingFont  paint.Font // measures PaddingSample for the layout
	PriceFont    paint.Font
	CurrencyFont paint.Font
	ChangeFont   paint.Font
	DateFont     paint.Font
}

// DefaultTheme returns the portfolio site's look.
func DefaultTheme() Theme {
	const family = "Inter, sans-serif"
	return Theme{
		Accent:       paint.ParseColor("#22c55e"),
		Negative:     paint.ParseColor("#ef4444"),
		Text:         paint.ParseColor("#111114"),
		Muted:        paint.ParseColor("#9a9aa3"),
		Guide:        paint.ParseColor("rgba(17, 17, 20, 0.2)"),
		MarkerBorder: paint.ParseColor("#ffffff"),

		FillTopAlpha: 38, // 0.15
		LineWidth:    2.5,
		MarkerRadius: 4,

		PaddingFont:  paint.Font{Family: family, Size: 32, Weight: paint.Regular},
		PriceFont:    paint.Font{Family: family, Size: 24, Weight: paint.Bold},
		CurrencyFont: paint.Font{Family: family, Size: 12, Weight: paint.Regular},
		ChangeFont:   paint.Font{Family: family, Size: 11, Weight: paint.Regular},
		DateFont:     paint.Font{Family: family, Size: 11, Weight: paint.Regular},
	}
}
