package domain

import "time"

// TideStatus is the banded tide state derived from sea level.
type TideStatus string

const (
	TideLow  TideStatus = "Low"
	TideMid  TideStatus = "Mid"
	TideHigh TideStatus = "High"
)

// Tide banding thresholds in metres above mean sea level. Both comparisons
// are strict: exactly 0.8 or 0.3 band as Mid.
const (
	tideHighAbove = 0.8
	tideLowBelow  = 0.3
)

// KPHPerMS converts provider wind speeds (m/s) to the kph the frontend shows.
const KPHPerMS = 3.6

// MinWaveHeight is the floor applied to every forecast wave height.
// Downstream suitability scoring assumes a positive height.
const MinWaveHeight = 0.1

// Tide is the tide portion of a forecast.
type Tide struct {
	Status TideStatus `json:"status" bson:"status"`
}

// Forecast is the canonical prediction output. Every field is always
// populated regardless of which prediction path produced it.
type Forecast struct {
	WaveHeight    float64 `json:"waveHeight" bson:"wave_height"`       // metres
	WavePeriod    float64 `json:"wavePeriod" bson:"wave_period"`       // seconds
	WindSpeed     float64 `json:"windSpeed" bson:"wind_speed"`         // kph
	WindDirection float64 `json:"windDirection" bson:"wind_direction"` // degrees
	Tide          Tide    `json:"tide" bson:"tide"`
}

// BandTide maps a sea level to its tide band.
func BandTide(seaLevel float64) TideStatus {
	switch {
	case seaLevel > tideHighAbove:
		return TideHigh
	case seaLevel < tideLowBelow:
		return TideLow
	default:
		return TideMid
	}
}

// WindKPH converts a wind speed in m/s to kph.
func WindKPH(metersPerSecond float64) float64 {
	return metersPerSecond * KPHPerMS
}

// HistoryRecord is the append-only (features, forecast) pair persisted after
// each prediction. Its schema is the training pipeline's input contract:
// features stay keyed by name so the trainer can select columns by
// FeatureNames.
type HistoryRecord struct {
	SpotID     string             `json:"spot_id" bson:"spot_id"`
	SpotName   string             `json:"name" bson:"name"`
	CapturedAt time.Time          `json:"timestamp" bson:"timestamp"`
	Features   map[string]float64 `json:"features" bson:"features"`
	Forecast   Forecast           `json:"forecast" bson:"forecast"`
}
