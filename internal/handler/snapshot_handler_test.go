package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/dto"
)

type stubSnapshotter struct {
	resp *dto.SnapshotResponse
	err  error
}

func (s *stubSnapshotter) Snapshot(_ context.Context, _ dto.SnapshotRequest) (*dto.SnapshotResponse, error) {
	return s.resp, s.err
}

func snapshotRequest(t *testing.T, h *SnapshotHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/competitive-snapshot", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Snapshot(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestSnapshotHandler_Success(t *testing.T) {
	svc := &stubSnapshotter{resp: &dto.SnapshotResponse{
		Success:     true,
		Competitors: []dto.Competitor{{PlaceID: "p1", Name: "Summit Roofing"}},
	}}
	h := NewSnapshotHandler(svc)

	rec := snapshotRequest(t, h, `{"placeId":"subject"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSnapshotHandler_MissingPlaceID(t *testing.T) {
	h := NewSnapshotHandler(&stubSnapshotter{})
	rec := snapshotRequest(t, h, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSnapshotHandler_ServiceError(t *testing.T) {
	h := NewSnapshotHandler(&stubSnapshotter{err: errors.New("nearby search: quota")})
	rec := snapshotRequest(t, h, `{"placeId":"subject"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}
