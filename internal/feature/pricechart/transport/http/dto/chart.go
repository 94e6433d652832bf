package dto

// PointResponse is one data point of a series.
type PointResponse struct {
	Date  string  `json:"date"`  // YYYY-MM-DD
	Price float64 `json:"price"` // USD
}

// ReadoutResponse is what the chart's price label shows.
type ReadoutResponse struct {
	Index         int     `json:"index"`
	Hovered       bool    `json:"hovered"`
	Date          string  `json:"date"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	ChangeLabel   string  `json:"change_label"` // e.g. "+20.0%"
	Positive      bool    `json:"positive"`
}

// PointerRequest carries a pointer position in CSS pixels from the canvas's
// left edge, and the viewport the client rendered the chart at.
// Omitted sizes keep the element's current viewport.
type PointerRequest struct {
	X      *float64 `json:"x" binding:"required"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	DPR    float64  `json:"dpr"`
}

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
