// Package pipeline orchestrates the per-spot forecast flow: feature
// acquisition, prediction, optional suitability scoring, and best-effort
// history recording.
package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/observability"
)

// FeatureFetcher acquires the current hour's features for a spot. It must
// not fail: a fetch that produced nothing returns a zero record and false.
type FeatureFetcher interface {
	Fetch(ctx context.Context, loc domain.Location) (domain.FeatureRecord, bool)
}

// Predictor turns a feature record into a forecast. Always succeeds.
type Predictor interface {
	Predict(rec domain.FeatureRecord, valid bool) domain.Forecast
}

// Recorder persists a history record best-effort. It must swallow its own
// failures; the pipeline treats every call as if it succeeded.
type Recorder interface {
	Record(ctx context.Context, rec domain.HistoryRecord)
}

// SpotForecast is one spot's entry in the pipeline output.
type SpotForecast struct {
	domain.Location
	Forecast    domain.Forecast `json:"forecast"`
	Suitability *int            `json:"suitability,omitempty"`
}

// Response is the document handed to the caller.
type Response struct {
	Spots []SpotForecast `json:"spots"`
}

// Pipeline drives the forecast stages across all configured spots.
type Pipeline struct {
	fetcher   FeatureFetcher
	predictor Predictor
	recorder  Recorder
	logger    *slog.Logger
	metrics   *observability.Metrics
	workers   int
}

// New creates a Pipeline. workers bounds how many spots are processed
// concurrently; values below 1 are treated as 1.
func New(f FeatureFetcher, p Predictor, r Recorder, logger *slog.Logger, metrics *observability.Metrics, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		fetcher:   f,
		predictor: p,
		recorder:  r,
		logger:    logger,
		metrics:   metrics,
		workers:   workers,
	}
}

// Run forecasts every spot and returns one entry per input spot. A spot
// whose feature fetch failed still gets a fallback forecast; no single
// spot's failure can abort the run. Results keep input order unless rank is
// set and a skill level was supplied, in which case they sort by suitability
// descending.
func (p *Pipeline) Run(ctx context.Context, locations []domain.Location, skill domain.SkillLevel, rank bool) []SpotForecast {
	start := time.Now()
	results := make([]SpotForecast, len(locations))

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for i, loc := range locations {
		i, loc := i, loc
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = p.forecastSpot(ctx, loc, skill)
		}()
	}
	wg.Wait()

	if rank && skill != "" {
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].Suitability > *results[j].Suitability
		})
	}

	p.metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("pipeline run complete",
		"spots", len(results),
		"duration", time.Since(start),
	)
	return results
}

// forecastSpot runs the acquire-predict-score-record chain for one spot.
func (p *Pipeline) forecastSpot(ctx context.Context, loc domain.Location, skill domain.SkillLevel) SpotForecast {
	rec, valid := p.fetcher.Fetch(ctx, loc)
	forecast := p.predictor.Predict(rec, valid)

	capturedAt := rec.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = domain.Clock().Now().UTC()
	}
	p.recorder.Record(ctx, domain.HistoryRecord{
		SpotID:     loc.ID,
		SpotName:   loc.Name,
		CapturedAt: capturedAt,
		Features:   rec.Values,
		Forecast:   forecast,
	})

	sf := SpotForecast{Location: loc, Forecast: forecast}
	if skill != "" {
		score := domain.Score(forecast, skill)
		sf.Suitability = &score
	}
	return sf
}
