package router

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/visibility-score/internal/auth"
	"github.com/octobees/visibility-score/internal/config"
	"github.com/octobees/visibility-score/internal/handler"
	middlewarepkg "github.com/octobees/visibility-score/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Analyze    *handler.AnalyzeHandler
	Snapshot   *handler.SnapshotHandler
	History    *handler.HistoryHandler
	Health     *handler.HealthHandler
	AdminCache *handler.AdminCacheHandler
}

// Register wires all HTTP routes for the API. The analyze surface is
// public; only the admin group requires a bearer token.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	api := e.Group("/api")

	api.GET("/health", handlers.Health.Health)
	api.POST("/analyze", handlers.Analyze.Analyze, middlewarepkg.AnalyzeRateLimiter(cfg.RateLimitAnalyze))
	api.POST("/competitive-snapshot", handlers.Snapshot.Snapshot)
	api.GET("/analyses/recent", handlers.History.Recent)

	admin := api.Group("/admin", middlewarepkg.JWT(jwtManager), middlewarepkg.RequireRole("admin"))
	admin.POST("/cache/invalidate", handlers.AdminCache.Invalidate)
}
