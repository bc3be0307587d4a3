package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/entity"
)

type stubAnalysesRepo struct {
	rows      []entity.Analysis
	err       error
	lastLimit int
}

func (s *stubAnalysesRepo) Record(_ context.Context, _ *entity.Analysis) error { return nil }

func (s *stubAnalysesRepo) Recent(_ context.Context, limit int) ([]entity.Analysis, error) {
	s.lastLimit = limit
	return s.rows, s.err
}

func recentRequest(t *testing.T, h *HistoryHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/analyses/recent"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Recent(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestHistoryHandler_Recent(t *testing.T) {
	repo := &stubAnalysesRepo{rows: []entity.Analysis{{
		ID:           uuid.New(),
		BusinessName: "Acme Roofing",
		Path:         "GBP_ONLY",
		FinalScore:   92,
		CreatedAt:    time.Now(),
	}}}
	h := NewHistoryHandler(repo)

	rec := recentRequest(t, h, "?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastLimit != 5 {
		t.Fatalf("limit not forwarded, got %d", repo.lastLimit)
	}
}

func TestHistoryHandler_BadLimit(t *testing.T) {
	h := NewHistoryHandler(&stubAnalysesRepo{})
	rec := recentRequest(t, h, "?limit=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHistoryHandler_NotConfigured(t *testing.T) {
	h := NewHistoryHandler(nil)
	rec := recentRequest(t, h, "")
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}
