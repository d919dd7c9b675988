// Command forecastd serves the forecast pipeline over HTTP, with health,
// readiness, and Prometheus metrics endpoints.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/surfapp/forecast-engine/internal/adapter/httpapi"
	"github.com/surfapp/forecast-engine/internal/adapter/mongostore"
	"github.com/surfapp/forecast-engine/internal/adapter/stormglass"
	"github.com/surfapp/forecast-engine/internal/config"
	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/model"
	"github.com/surfapp/forecast-engine/internal/observability"
	"github.com/surfapp/forecast-engine/internal/pipeline"
	"github.com/surfapp/forecast-engine/internal/predict"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	locations, err := domain.LoadSpots(cfg.LocationsPath)
	if err != nil {
		logger.Error("failed to load spots", "error", err)
		os.Exit(1)
	}

	var regressor predict.Regressor
	if artifact, loadErr := model.Load(cfg.ModelPath, domain.FeatureNames); loadErr != nil {
		logger.Warn("model artifact unavailable, running fallback-only", "path", cfg.ModelPath, "error", loadErr)
		metrics.ModelLoaded.Set(0)
	} else {
		regressor = artifact
		metrics.ModelLoaded.Set(1)
		logger.Info("model artifact loaded", "path", cfg.ModelPath, "trees", len(artifact.Trees))
	}

	seed := cfg.SimulatorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := predict.NewEngine(regressor, predict.NewSimulator(seed), cfg.DefaultSeaLevel, logger, metrics)
	fetcher := stormglass.NewClient(cfg.StormglassAPIKey, cfg.StormglassBaseURL, cfg.StormglassTimeout, logger, metrics)
	recorder := mongostore.NewRecorder(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoHistoryCollection, cfg.MongoTimeout, logger, metrics)

	p := pipeline.New(fetcher, engine, recorder, logger, metrics, cfg.Workers)
	srv := httpapi.NewServer(cfg.HTTPAddr, p, locations, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
