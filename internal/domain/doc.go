// Package domain models surf spots, marine feature records, and forecasts.
//
// # Feature Schema
//
// Marine features come from the Stormglass point-weather API
// (https://api.stormglass.io/v2/weather/point). Each hourly record keys a
// feature name to per-source numeric estimates, e.g.
//
//	"swellHeight": {"sg": 1.2, "noaa": 1.4}
//
// The acquisition client averages the sources into one scalar per feature.
// [FeatureNames] is the single source of truth for which features exist and
// in which order they enter a model's feature vector. The trainer consumes
// the same list, and a model artifact that declares a different list is
// refused at load time. A record missing any schema feature is incomplete
// and is never fed to the model; the prediction engine falls back to the
// simulator instead.
//
// # Tide Banding
//
// Tide status is a three-way band over the seaLevel feature (metres above
// mean sea level):
//
//	> 0.8  High
//	< 0.3  Low
//	else   Mid
//
// Boundaries are strict, so exactly 0.8 or 0.3 is Mid. When no sea level was
// fetched the engine bands a configured default instead.
//
// # Suitability
//
// Score starts at 100 and applies additive deductions by skill level:
//
//	Beginner:      height > 1.5 deducts 60; 1.0 < height <= 1.5 deducts 30 (exclusive)
//	Intermediate:  height < 1.0 deducts 20; height > 2.5 deducts 40 (independent)
//	Advanced:      height < 1.8 deducts 30
//
// Unrecognized levels score 100. The result is clamped to [0,100].
package domain
