// Package handler serves price charts over HTTP.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_chart/internal/feature/pricechart/domain/entity"
	"portfolio_chart/internal/feature/pricechart/transport/http/dto"
	"portfolio_chart/internal/feature/pricechart/usecase"
)

// ChartUsecase is the chart board as seen by the handler.
type ChartUsecase interface {
	Render(ctx context.Context, id string, req usecase.RenderRequest) (usecase.Image, error)
	Series(id string) ([]entity.DataPoint, error)
	Readout(id string) (entity.Readout, error)
	PointerMove(id string, req usecase.PointerRequest) (entity.Readout, error)
	PointerLeave(id string) (entity.Readout, error)
}

// ChartHandler handles chart requests.
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler returns a handler backed by uc.
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// Render returns the chart image for the requested viewport.
//
// GET /charts/:id?width=400&height=300&dpr=2&format=png
func (h *ChartHandler) Render(c *gin.Context) {
	var req usecase.RenderRequest
	var err error
	if req.Width, err = queryFloat(c, "width"); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Height, err = queryFloat(c, "height"); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if req.PixelRatio, err = queryFloat(c, "dpr"); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	req.Format = usecase.Format(c.DefaultQuery("format", string(usecase.FormatPNG)))

	img, err := h.uc.Render(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, img.ContentType, img.Body)
}

// Series returns the chart's price series.
//
// GET /charts/:id/series
func (h *ChartHandler) Series(c *gin.Context) {
	series, err := h.uc.Series(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.PointResponse, 0, len(series))
	for _, p := range series {
		out = append(out, dto.PointResponse{Date: p.Date.Format("2006-01-02"), Price: p.Price})
	}
	c.JSON(http.StatusOK, out)
}

// Readout returns what the price label shows.
//
// GET /charts/:id/readout
func (h *ChartHandler) Readout(c *gin.Context) {
	ro, err := h.uc.Readout(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadoutResponse(ro))
}

// PointerMove forwards a pointer move and returns the resulting readout.
//
// POST /charts/:id/pointer {"x": 120, "width": 400, "height": 300, "dpr": 2}
func (h *ChartHandler) PointerMove(c *gin.Context) {
	var body dto.PointerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "x is required"})
		return
	}
	ro, err := h.uc.PointerMove(c.Param("id"), usecase.PointerRequest{
		X:          *body.X,
		Width:      body.Width,
		Height:     body.Height,
		PixelRatio: body.DPR,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadoutResponse(ro))
}

// PointerLeave forwards a pointer leave and returns the resulting readout.
//
// DELETE /charts/:id/pointer
func (h *ChartHandler) PointerLeave(c *gin.Context) {
	ro, err := h.uc.PointerLeave(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReadoutResponse(ro))
}

func queryFloat(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func writeError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, usecase.ErrChartNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidViewport), errors.Is(err, usecase.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func toReadoutResponse(ro entity.Readout) dto.ReadoutResponse {
	return dto.ReadoutResponse{
		Index:         ro.DisplayIndex,
		Hovered:       ro.Hovered,
		Date:          ro.Date.Format("2006-01-02"),
		Price:         ro.Price,
		ChangePercent: ro.ChangePercent,
		ChangeLabel:   usecase.FormatChange(ro.ChangePercent),
		Positive:      ro.Positive,
	}
}
