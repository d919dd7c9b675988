// Command forecast runs one forecast pipeline pass and writes the result as
// a single JSON document to stdout. The API server invokes it as a child
// process and parses stdout; all logging goes to stderr. On a fatal error a
// single {"error": ...} document is written to stderr and the process exits
// non-zero, never mixing partial output onto stdout.
//
// Usage:
//
//	forecast [-skill Beginner|Intermediate|Advanced] [-rank] [skill]
//
// A positional skill argument is accepted for compatibility with the
// previous service's argv contract.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	if err := run(); err != nil {
		json.NewEncoder(os.Stderr).Encode(map[string]string{"error": err.Error()}) //nolint:errcheck // last resort output
		os.Exit(1)
	}
}

func run() (err error) {
	// The orchestrator boundary: nothing below it may abort the run, so a
	// panic reaching here is the only fatal path and must still honor the
	// single-error-document contract.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	skill := flag.String("skill", "Beginner", "skill level for suitability scoring; empty disables scoring")
	rank := flag.Bool("rank", true, "sort spots by suitability descending")
	flag.Parse()
	if args := flag.Args(); len(args) > 0 {
		*skill = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	locations, err := domain.LoadSpots(cfg.LocationsPath)
	if err != nil {
		return err
	}

	// Model absence or corruption is non-fatal: the engine degrades to
	// fallback-only mode for the whole process lifetime.
	var regressor predict.Regressor
	if artifact, loadErr := model.Load(cfg.ModelPath, domain.FeatureNames); loadErr != nil {
		logger.Warn("model artifact unavailable, running fallback-only", "path", cfg.ModelPath, "error", loadErr)
		metrics.ModelLoaded.Set(0)
	} else {
		regressor = artifact
		metrics.ModelLoaded.Set(1)
	}

	if cfg.StormglassAPIKey == "" {
		logger.Warn("STORMGLASS_API_KEY not set, feature fetches will fail and forecasts degrade to fallback quality")
	}

	seed := cfg.SimulatorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engine := predict.NewEngine(regressor, predict.NewSimulator(seed), cfg.DefaultSeaLevel, logger, metrics)
	fetcher := stormglass.NewClient(cfg.StormglassAPIKey, cfg.StormglassBaseURL, cfg.StormglassTimeout, logger, metrics)
	recorder := mongostore.NewRecorder(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoHistoryCollection, cfg.MongoTimeout, logger, metrics)

	p := pipeline.New(fetcher, engine, recorder, logger, metrics, cfg.Workers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spots := p.Run(ctx, locations, domain.SkillLevel(*skill), *rank)

	if err := json.NewEncoder(os.Stdout).Encode(pipeline.Response{Spots: spots}); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}
