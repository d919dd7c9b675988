package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast pipeline.
type Metrics struct {
	ForecastsGenerated *prometheus.CounterVec // labels: path={model,fallback}
	FetchFailures      prometheus.Counter
	FetchIncomplete    prometheus.Counter
	FetchDuration      prometheus.Histogram

	RecordFailures prometheus.Counter
	RecordDuration prometheus.Histogram

	PipelineDuration prometheus.Histogram
	ModelLoaded      prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ForecastsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "forecasts_generated_total",
			Help:      "Forecasts produced, by prediction path.",
		}, []string{"path"}),
		FetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "feature_fetch_failures_total",
			Help:      "Feature acquisition attempts that produced no usable record.",
		}),
		FetchIncomplete: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "feature_fetch_incomplete_total",
			Help:      "Successful fetches missing at least one schema feature.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surfcast",
			Name:      "feature_fetch_duration_seconds",
			Help:      "Duration of provider point-weather requests.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RecordFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "surfcast",
			Name:      "history_record_failures_total",
			Help:      "Best-effort history writes that failed.",
		}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surfcast",
			Name:      "history_record_duration_seconds",
			Help:      "Duration of history store inserts, including connect time.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "surfcast",
			Name:      "pipeline_run_duration_seconds",
			Help:      "Duration of a full pipeline run across all spots.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "surfcast",
			Name:      "model_loaded",
			Help:      "1 when a model artifact is loaded, 0 in fallback-only mode.",
		}),
	}

	prometheus.MustRegister(
		m.ForecastsGenerated,
		m.FetchFailures,
		m.FetchIncomplete,
		m.FetchDuration,
		m.RecordFailures,
		m.RecordDuration,
		m.PipelineDuration,
		m.ModelLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ForecastsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "surfcast", Name: "forecasts_generated_total"}, []string{"path"}),
		FetchFailures:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "surfcast", Name: "feature_fetch_failures_total"}),
		FetchIncomplete:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "surfcast", Name: "feature_fetch_incomplete_total"}),
		FetchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "surfcast", Name: "feature_fetch_duration_seconds"}),
		RecordFailures:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "surfcast", Name: "history_record_failures_total"}),
		RecordDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "surfcast", Name: "history_record_duration_seconds"}),
		PipelineDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "surfcast", Name: "pipeline_run_duration_seconds"}),
		ModelLoaded:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "surfcast", Name: "model_loaded"}),
	}
}
