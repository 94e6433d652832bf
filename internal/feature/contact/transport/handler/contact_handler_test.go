package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"portfolio_chart/internal/feature/contact/domain/entity"
	"portfolio_chart/internal/feature/contact/transport/handler"
	"portfolio_chart/internal/feature/contact/usecase"
)

type mockCopyUsecase struct {
	ClickFunc func(ctx context.Context) (string, error)
	state     entity.CopyState
}

func (m *mockCopyUsecase) Click(ctx context.Context) (string, error) {
	email, err := m.ClickFunc(ctx)
	if err == nil {
		m.state = entity.Copied
	}
	return email, err
}

func (m *mockCopyUsecase) State() entity.CopyState { return m.state }

func TestContactHandler_Copy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		click          func(ctx context.Context) (string, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			click:          func(ctx context.Context) (string, error) { return "me@example.dev", nil },
			expectedStatus: http.StatusOK,
			expectedBody:   `{"state":"copied","email":"me@example.dev"}`,
		},
		{
			name:           "error: clipboard failure",
			click:          func(ctx context.Context) (string, error) { return "", errors.New("copy address: denied") },
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"copy address: denied"}`,
		},
		{
			name:           "error: disposed",
			click:          func(ctx context.Context) (string, error) { return "", usecase.ErrDisposed },
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"copy button disposed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewContactHandler(&mockCopyUsecase{ClickFunc: tt.click})

			router := gin.New()
			router.POST("/contact/copy", h.Copy)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/contact/copy", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestContactHandler_State(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := handler.NewContactHandler(&mockCopyUsecase{state: entity.Idle})
	router := gin.New()
	router.GET("/contact/copy", h.State)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/contact/copy", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"idle"}`, w.Body.String())
}
