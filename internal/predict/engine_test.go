package predict

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/observability"
)

// --- mocks ---

type stubRegressor struct {
	height float64
	err    error
	calls  int
}

func (s *stubRegressor) Predict(features []float64) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.height, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(model Regressor, seed int64) *Engine {
	return NewEngine(model, NewSimulator(seed), 0.5, testLogger(), observability.NewMetricsForTesting())
}

func completeRecord() domain.FeatureRecord {
	values := map[string]float64{
		"swellHeight":             1.4,
		"swellPeriod":             11.0,
		"swellDirection":          195.0,
		"windSpeed":               5.0,
		"windDirection":           240.0,
		"seaLevel":                0.9,
		"gust":                    7.5,
		"secondarySwellHeight":    0.4,
		"secondarySwellPeriod":    6.0,
		"secondarySwellDirection": 120.0,
	}
	return domain.FeatureRecord{Values: values, CapturedAt: time.Date(2024, 10, 1, 6, 0, 0, 0, time.UTC)}
}

// --- tests ---

func TestEngine_Predict_ModelPath(t *testing.T) {
	reg := &stubRegressor{height: 1.9}
	e := newEngine(reg, 1)

	f := e.Predict(completeRecord(), true)

	assert.Equal(t, 1, reg.calls)
	assert.InDelta(t, 1.9, f.WaveHeight, 1e-9)
	assert.InDelta(t, 11.0, f.WavePeriod, 1e-9)
	assert.InDelta(t, 18.0, f.WindSpeed, 1e-9) // 5 m/s fetched -> kph
	assert.InDelta(t, 240.0, f.WindDirection, 1e-9)
	assert.Equal(t, domain.TideHigh, f.Tide.Status) // seaLevel 0.9 > 0.8
}

func TestEngine_Predict_FallbackWhenInvalid(t *testing.T) {
	reg := &stubRegressor{height: 1.9}
	e := newEngine(reg, 1)

	rec := completeRecord()
	delete(rec.Values, "gust")

	f := e.Predict(rec, false)

	assert.Zero(t, reg.calls, "model must not run on incomplete features")
	// Fallback formula over the fetched swell height.
	assert.InDelta(t, 0.3+0.7*1.4, f.WaveHeight, 1e-9)
	// Fetched values still win over synthesized placeholders.
	assert.InDelta(t, 11.0, f.WavePeriod, 1e-9)
	assert.InDelta(t, 18.0, f.WindSpeed, 1e-9)
}

func TestEngine_Predict_FallbackWhenNoModel(t *testing.T) {
	e := newEngine(nil, 1)

	f := e.Predict(completeRecord(), true)

	assert.InDelta(t, 0.3+0.7*1.4, f.WaveHeight, 1e-9)
	assert.Equal(t, domain.TideHigh, f.Tide.Status)
}

// An inference error must produce exactly the forecast the plain fallback
// path would have produced.
func TestEngine_Predict_InferenceErrorFallsBack(t *testing.T) {
	broken := newEngine(&stubRegressor{err: errors.New("shape mismatch")}, 7)
	plain := newEngine(nil, 7)

	rec := completeRecord()
	got := broken.Predict(rec, true)
	want := plain.Predict(rec, true)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fallback forecast mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_Predict_EmptyRecordSynthesizesEverything(t *testing.T) {
	e := newEngine(nil, 3)

	f := e.Predict(domain.FeatureRecord{}, false)

	assert.InDelta(t, 0.3+0.7*defaultSwellHeight, f.WaveHeight, 1e-9)
	assert.GreaterOrEqual(t, f.WavePeriod, 8.0)
	assert.Less(t, f.WavePeriod, 14.0)
	assert.GreaterOrEqual(t, f.WindSpeed, 2.0*domain.KPHPerMS)
	assert.Less(t, f.WindSpeed, 10.0*domain.KPHPerMS)
	assert.GreaterOrEqual(t, f.WindDirection, 0.0)
	assert.Less(t, f.WindDirection, 360.0)
	assert.Equal(t, domain.TideMid, f.Tide.Status) // default sea level 0.5
}

// Every (model presence, validity) combination must yield a fully populated
// forecast with a positive wave height and a known tide band.
func TestEngine_Predict_AlwaysWellFormed(t *testing.T) {
	records := map[string]struct {
		rec   domain.FeatureRecord
		valid bool
	}{
		"complete valid":    {completeRecord(), true},
		"incomplete":        {domain.FeatureRecord{Values: map[string]float64{"swellHeight": 0.2}}, false},
		"empty":             {domain.FeatureRecord{}, false},
		"negative features": {domain.FeatureRecord{Values: map[string]float64{"swellHeight": -3.0}}, false},
	}
	models := map[string]Regressor{
		"none":     nil,
		"ok":       &stubRegressor{height: 1.2},
		"erroring": &stubRegressor{err: errors.New("numeric error")},
		"negative": &stubRegressor{height: -4.0},
	}

	for mName, m := range models {
		for rName, tc := range records {
			t.Run(mName+"/"+rName, func(t *testing.T) {
				f := newEngine(m, 11).Predict(tc.rec, tc.valid)

				assert.Greater(t, f.WaveHeight, 0.0)
				assert.Greater(t, f.WavePeriod, 0.0)
				assert.GreaterOrEqual(t, f.WindSpeed, 0.0)
				assert.Contains(t, []domain.TideStatus{domain.TideLow, domain.TideMid, domain.TideHigh}, f.Tide.Status)
			})
		}
	}
}

func TestEngine_Predict_WaveHeightFloor(t *testing.T) {
	e := newEngine(&stubRegressor{height: -0.4}, 1)

	f := e.Predict(completeRecord(), true)
	require.Equal(t, domain.MinWaveHeight, f.WaveHeight)
}

func TestEngine_Predict_TideFromFetchedSeaLevel(t *testing.T) {
	e := newEngine(nil, 1)

	rec := completeRecord()
	rec.Values["seaLevel"] = 0.1
	f := e.Predict(rec, true)
	assert.Equal(t, domain.TideLow, f.Tide.Status)

	rec.Values["seaLevel"] = 0.8 // strict threshold: exactly 0.8 is Mid
	f = e.Predict(rec, true)
	assert.Equal(t, domain.TideMid, f.Tide.Status)
}
