package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/cache"
	"github.com/octobees/visibility-score/internal/places"
)

// AdminCacheHandler exposes operational control over the shared details
// cache, so stale profiles can be dropped without a restart.
type AdminCacheHandler struct {
	details *cache.TTL[*places.Details]
}

func NewAdminCacheHandler(details *cache.TTL[*places.Details]) *AdminCacheHandler {
	return &AdminCacheHandler{details: details}
}

type invalidateRequest struct {
	PlaceID string `json:"placeId,omitempty"`
}

// Invalidate handles POST /api/admin/cache/invalidate. With a placeId the
// single entry is dropped; without one the whole cache is purged.
func (h *AdminCacheHandler) Invalidate(c echo.Context) error {
	var req invalidateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.PlaceID = strings.TrimSpace(req.PlaceID)
	if req.PlaceID != "" {
		h.details.Invalidate(req.PlaceID)
		return Success(c, http.StatusOK, "cache entry invalidated", map[string]any{"placeId": req.PlaceID})
	}

	purged := h.details.Len()
	h.details.Purge()
	return Success(c, http.StatusOK, "cache purged", map[string]any{"entries": purged})
}
