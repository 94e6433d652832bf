// Package handler serves the contact copy button over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_chart/internal/feature/contact/domain/entity"
	"portfolio_chart/internal/feature/contact/transport/http/dto"
	"portfolio_chart/internal/feature/contact/usecase"
)

// CopyUsecase is the copy button as seen by the handler.
type CopyUsecase interface {
	Click(ctx context.Context) (string, error)
	State() entity.CopyState
}

// ContactHandler handles copy button requests.
type ContactHandler struct {
	uc CopyUsecase
}

// NewContactHandler returns a handler backed by uc.
func NewContactHandler(uc CopyUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Copy clicks the button and returns the address to put on the clipboard.
//
// POST /contact/copy
func (h *ContactHandler) Copy(c *gin.Context) {
	email, err := h.uc.Click(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, usecase.ErrDisposed) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.CopyResponse{State: h.uc.State().String(), Email: email})
}

// State returns what the button currently shows.
//
// GET /contact/copy
func (h *ContactHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CopyResponse{State: h.uc.State().String()})
}
