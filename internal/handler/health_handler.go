package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/config"
)

// HealthHandler reports liveness and which credentials are configured.
// Only presence is reported, never the values.
type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(c echo.Context) error {
	return Success(c, http.StatusOK, "service healthy", map[string]any{
		"status": "ok",
		"credentials": map[string]bool{
			"places_api_key":    h.cfg.PlacesAPIKey != "",
			"maps_embed_key":    h.cfg.MapsEmbedKey != "",
			"anthropic_api_key": h.cfg.AnthropicAPIKey != "",
			"adscrape_base_url": h.cfg.AdscrapeBaseURL != "",
			"database_url":      h.cfg.DatabaseURL != "",
		},
	})
}
