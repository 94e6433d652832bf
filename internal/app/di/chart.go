// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"portfolio_chart/internal/feature/pricechart/adapters/randomwalk"
	"portfolio_chart/internal/feature/pricechart/adapters/raster"
	"portfolio_chart/internal/feature/pricechart/adapters/svg"
	"portfolio_chart/internal/feature/pricechart/adapters/viewport"
	"portfolio_chart/internal/feature/pricechart/domain/paint"
	"portfolio_chart/internal/feature/pricechart/usecase"
	"portfolio_chart/internal/platform/cache"
	"portfolio_chart/internal/platform/config"
	"portfolio_chart/internal/platform/fonts"
	"portfolio_chart/internal/shared/ratelimiter"
)

// NewChartOptions builds the chart options from the chart and theme sections.
func NewChartOptions(cfg *config.Config) usecase.Options {
	theme := usecase.DefaultTheme()
	theme.Accent = paint.ParseColor(cfg.Theme.Accent)
	theme.Negative = paint.ParseColor(cfg.Theme.Negative)

	return usecase.Options{
		Days:       cfg.Chart.Days,
		BasePrice:  cfg.Chart.BasePrice,
		LowerBound: cfg.Chart.LowerBound,
		UpperBound: cfg.Chart.UpperBound,
		Theme:      theme,
	}
}

// NewSeriesSource returns the random walk generator.
// A zero seed uses the unseeded global source.
func NewSeriesSource(cfg *config.Config) usecase.SeriesSource {
	if cfg.Chart.Seed != 0 {
		return randomwalk.NewSeeded(cfg.Chart.Seed, nil)
	}
	return randomwalk.NewGenerator(nil, nil)
}

// NewViewport creates the page and mounts one canvas per configured element.
func NewViewport(cfg *config.Config, m viewport.Measurer) *viewport.Viewport {
	vp := viewport.New(m)
	for _, cv := range cfg.Canvases {
		vp.Mount(cv.ID, cv.Width, cv.Height, cv.PixelRatio)
	}
	return vp
}

// NewEncoders creates the frame encoders per output format.
// If rdb is non-nil, PNG frames are cached in Redis.
func NewEncoders(cfg *config.Config, reg *fonts.Registry, rdb *redis.Client) map[usecase.Format]usecase.FrameEncoder {
	limiter := ratelimiter.NewRateLimiter(cfg.Raster.Limit, cfg.Raster.Interval)

	var png usecase.FrameEncoder = raster.NewEncoder(reg, limiter)
	if rdb != nil {
		png = cache.NewCachingFrameEncoder(rdb, cfg.Redis.TTL, png, cfg.Redis.Namespace)
	}

	return map[usecase.Format]usecase.FrameEncoder{
		usecase.FormatPNG: png,
		usecase.FormatSVG: svg.NewEncoder(),
	}
}

// NewBoard creates the chart board and mounts a chart on every configured canvas.
func NewBoard(cfg *config.Config, rdb *redis.Client) (*usecase.Board, error) {
	reg, err := fonts.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	vp := NewViewport(cfg, reg)
	board := usecase.NewBoard(vp, NewSeriesSource(cfg), NewChartOptions(cfg), NewEncoders(cfg, reg, rdb))

	ids := make([]string, 0, len(cfg.Canvases))
	for _, cv := range cfg.Canvases {
		ids = append(ids, cv.ID)
	}
	if err := board.Mount(ids...); err != nil {
		return nil, fmt.Errorf("mount charts: %w", err)
	}
	return board, nil
}
