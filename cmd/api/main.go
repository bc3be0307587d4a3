package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/visibility-score/internal/adscrape"
	"github.com/octobees/visibility-score/internal/auth"
	"github.com/octobees/visibility-score/internal/cache"
	"github.com/octobees/visibility-score/internal/config"
	"github.com/octobees/visibility-score/internal/database"
	"github.com/octobees/visibility-score/internal/handler"
	"github.com/octobees/visibility-score/internal/llm"
	middlewarepkg "github.com/octobees/visibility-score/internal/middleware"
	"github.com/octobees/visibility-score/internal/places"
	"github.com/octobees/visibility-score/internal/probe"
	"github.com/octobees/visibility-score/internal/repository"
	"github.com/octobees/visibility-score/internal/resolver"
	"github.com/octobees/visibility-score/internal/router"
	"github.com/octobees/visibility-score/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var history repository.AnalysesRepository
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		defer pool.Close()
		history = repository.NewPGXAnalysesRepository(pool)
	}

	placesClient := places.NewClient(cfg.PlacesAPIKey, 8*time.Second)
	detailsCache := cache.NewTTL[*places.Details](cfg.DetailsCacheTTL)
	placeResolver := resolver.New(placesClient, detailsCache)
	prober := probe.New(cfg.ProbeTimeout)
	pages := service.NewHTTPPageFetcher(nil)

	opts := []service.AnalyzeOption{
		service.WithMapsEmbedKey(cfg.MapsEmbedKey),
	}
	if cfg.AnthropicAPIKey != "" {
		opts = append(opts, service.WithQualitativeScorer(llm.NewScorer(llm.NewClient(cfg.AnthropicAPIKey))))
	}
	if cfg.AdscrapeBaseURL != "" {
		opts = append(opts, service.WithAdSnippets(adscrape.NewClient(nil, cfg.AdscrapeBaseURL)))
	}
	if history != nil {
		opts = append(opts, service.WithHistory(history))
	}

	analyzeService := service.NewAnalyzeService(placeResolver, prober, pages, opts...)
	snapshotService := service.NewSnapshotService(placesClient)

	jwtManager := auth.NewJWTManager(cfg.AdminJWTSecret, 24*time.Hour)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Analyze:    handler.NewAnalyzeHandler(analyzeService),
		Snapshot:   handler.NewSnapshotHandler(snapshotService),
		History:    handler.NewHistoryHandler(history),
		Health:     handler.NewHealthHandler(cfg),
		AdminCache: handler.NewAdminCacheHandler(detailsCache),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
