package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/dto"
)

// Snapshotter produces ranked nearby competitors for a known place.
type Snapshotter interface {
	Snapshot(ctx context.Context, req dto.SnapshotRequest) (*dto.SnapshotResponse, error)
}

// SnapshotHandler serves the competitive snapshot endpoint.
type SnapshotHandler struct {
	svc Snapshotter
}

func NewSnapshotHandler(svc Snapshotter) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

// Snapshot handles POST /api/competitive-snapshot.
func (h *SnapshotHandler) Snapshot(c echo.Context) error {
	var req dto.SnapshotRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.PlaceID) == "" {
		return Error(c, http.StatusBadRequest, "placeId is required")
	}

	resp, err := h.svc.Snapshot(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
