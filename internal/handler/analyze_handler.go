package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/dto"
	"github.com/octobees/visibility-score/internal/service"
)

// Analyzer runs one end-to-end visibility analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
}

// AnalyzeHandler serves the core scoring endpoint.
type AnalyzeHandler struct {
	svc Analyzer
}

func NewAnalyzeHandler(svc Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

// Analyze handles POST /api/analyze.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	resp, err := h.svc.Analyze(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "analysis failed")
	}

	return c.JSON(statusCode(resp.Status), resp)
}

// statusCode maps the outcome taxonomy onto HTTP. Clarification outcomes
// are well-formed answers, not errors, so they stay 200.
func statusCode(status string) int {
	switch status {
	case service.StatusUpstreamQuota:
		return http.StatusTooManyRequests
	case service.StatusUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}
