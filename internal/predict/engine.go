// Package predict turns feature records into forecasts. The engine prefers
// model inference and degrades to a deterministic simulator; it never fails,
// so nothing upstream has to handle a missing forecast.
package predict

import (
	"log/slog"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/observability"
)

// Prediction path labels for the forecasts_generated_total metric.
const (
	pathModel    = "model"
	pathFallback = "fallback"
)

// Regressor predicts a wave height from a feature vector in schema order.
// Inference failures come back as errors, never panics; the engine treats
// any error as a fallback trigger.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// Engine selects between model inference and the fallback simulator and
// applies the shared post-processing. A nil model puts the engine in
// fallback-only mode permanently.
type Engine struct {
	model           Regressor
	sim             *Simulator
	defaultSeaLevel float64
	logger          *slog.Logger
	metrics         *observability.Metrics
}

// NewEngine creates an Engine. model may be nil (fallback-only mode).
func NewEngine(model Regressor, sim *Simulator, defaultSeaLevel float64, logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{
		model:           model,
		sim:             sim,
		defaultSeaLevel: defaultSeaLevel,
		logger:          logger,
		metrics:         metrics,
	}
}

// Predict produces a fully populated forecast for one feature record.
// The model path runs only when a model is loaded AND the record is
// complete; an inference error falls through to the fallback formula rather
// than propagating.
func (e *Engine) Predict(rec domain.FeatureRecord, valid bool) domain.Forecast {
	if e.model != nil && valid {
		if f, ok := e.inferModel(rec); ok {
			return f
		}
	}

	swell, ok := rec.Get("swellHeight")
	if !ok {
		swell = defaultSwellHeight
	}

	e.metrics.ForecastsGenerated.WithLabelValues(pathFallback).Inc()
	return e.finalize(rec, e.sim.WaveFromSwell(swell))
}

// inferModel runs the model path, returning ok=false on any failure.
func (e *Engine) inferModel(rec domain.FeatureRecord) (domain.Forecast, bool) {
	vec, err := rec.Vector()
	if err == nil {
		var height float64
		height, err = e.model.Predict(vec)
		if err == nil {
			e.metrics.ForecastsGenerated.WithLabelValues(pathModel).Inc()
			return e.finalize(rec, height), true
		}
	}

	e.logger.Warn("model inference failed, using fallback", "error", err)
	return domain.Forecast{}, false
}

// finalize applies the path-independent post-processing: fetched values win
// over synthesized placeholders, wind converts m/s to kph, tide bands from
// sea level, and wave height is floored at a positive minimum.
func (e *Engine) finalize(rec domain.FeatureRecord, waveHeight float64) domain.Forecast {
	period, ok := rec.Get("swellPeriod")
	if !ok {
		period = e.sim.Period()
	}

	windMS, ok := rec.Get("windSpeed")
	if !ok {
		windMS = e.sim.WindSpeedMS()
	}

	windDir, ok := rec.Get("windDirection")
	if !ok {
		windDir = e.sim.WindDirection()
	}

	seaLevel, ok := rec.Get("seaLevel")
	if !ok {
		seaLevel = e.defaultSeaLevel
	}

	if waveHeight < domain.MinWaveHeight {
		waveHeight = domain.MinWaveHeight
	}

	return domain.Forecast{
		WaveHeight:    waveHeight,
		WavePeriod:    period,
		WindSpeed:     domain.WindKPH(windMS),
		WindDirection: windDir,
		Tide:          domain.Tide{Status: domain.BandTide(seaLevel)},
	}
}
