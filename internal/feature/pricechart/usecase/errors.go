package usecase

import "errors"

var (
	// ErrChartNotFound is returned for a canvas id with no mounted chart.
	ErrChartNotFound = errors.New("chart not found")
	// ErrInvalidViewport is returned for out-of-range sizes or pixel ratios.
	ErrInvalidViewport = errors.New("invalid viewport")
	// ErrUnsupportedFormat is returned when no encoder handles the format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
