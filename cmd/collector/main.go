// Command collector backfills hourly marine features into the raw history
// collection for model training. It walks every configured spot, fetches the
// requested window in chunks the provider accepts, and bulk-inserts the
// resulting hours. Per-spot failures are logged and the walk continues, so a
// single quota-exhausted spot does not abort the backfill.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/surfapp/forecast-engine/internal/adapter/mongostore"
	"github.com/surfapp/forecast-engine/internal/adapter/stormglass"
	"github.com/surfapp/forecast-engine/internal/config"
	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/observability"
)

// maxChunk bounds the window of a single provider request. Stormglass caps
// a point-weather query at ten days of hours.
const maxChunk = 10 * 24 * time.Hour

// spotDelay spaces provider requests between spots to stay under the
// per-minute rate limit.
const spotDelay = 2 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("collector failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	days := flag.Int("days", 30, "number of days to backfill, ending now")
	startFlag := flag.String("start", "", "window start (RFC 3339); overrides -days")
	endFlag := flag.String("end", "", "window end (RFC 3339); defaults to now")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	if cfg.StormglassAPIKey == "" {
		return fmt.Errorf("STORMGLASS_API_KEY is required for backfill")
	}
	if cfg.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required for backfill")
	}

	start, end, err := resolveWindow(*days, *startFlag, *endFlag)
	if err != nil {
		return err
	}

	locations, err := domain.LoadSpots(cfg.LocationsPath)
	if err != nil {
		return err
	}

	client := stormglass.NewClient(cfg.StormglassAPIKey, cfg.StormglassBaseURL, cfg.StormglassTimeout, logger, metrics)
	store := mongostore.NewRecorder(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoRawCollection, cfg.MongoTimeout, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting backfill",
		"spots", len(locations),
		"start", start.Format(time.RFC3339),
		"end", end.Format(time.RFC3339),
	)

	var failed int
	for i, loc := range locations {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i > 0 {
			select {
			case <-time.After(spotDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		n, err := collectSpot(ctx, client, store, loc, start, end)
		if err != nil {
			logger.Error("spot backfill failed", "spot_id", loc.ID, "spot", loc.Name, "error", err)
			failed++
			continue
		}
		logger.Info("spot backfill complete", "spot_id", loc.ID, "spot", loc.Name, "hours", n)
	}

	if failed == len(locations) {
		return fmt.Errorf("backfill failed for all %d spots", failed)
	}
	logger.Info("backfill complete", "spots", len(locations), "failed", failed)
	return nil
}

// collectSpot fetches and stores the window for one spot, chunk by chunk,
// and returns the number of hours inserted.
func collectSpot(ctx context.Context, client *stormglass.Client, store *mongostore.Recorder, loc domain.Location, start, end time.Time) (int, error) {
	var total int
	for chunkStart := start; chunkStart.Before(end); chunkStart = chunkStart.Add(maxChunk) {
		chunkEnd := chunkStart.Add(maxChunk)
		if chunkEnd.After(end) {
			chunkEnd = end
		}

		records, err := client.FetchRange(ctx, loc, chunkStart, chunkEnd)
		if err != nil {
			return total, fmt.Errorf("fetch %s to %s: %w", chunkStart.Format(time.RFC3339), chunkEnd.Format(time.RFC3339), err)
		}
		if err := store.InsertRawHours(ctx, loc, records); err != nil {
			return total, fmt.Errorf("store %d hours: %w", len(records), err)
		}
		total += len(records)
	}
	return total, nil
}

func resolveWindow(days int, startFlag, endFlag string) (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(time.Hour)
	if endFlag != "" {
		t, err := time.Parse(time.RFC3339, endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -end: %w", err)
		}
		end = t.UTC()
	}

	start := end.Add(-time.Duration(days) * 24 * time.Hour)
	if startFlag != "" {
		t, err := time.Parse(time.RFC3339, startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid -start: %w", err)
		}
		start = t.UTC()
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("window start %s is not before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return start, end, nil
}
