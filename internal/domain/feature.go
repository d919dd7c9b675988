package domain

import (
	"fmt"
	"time"
)

// FeatureNames is the ordered marine feature schema shared by the training
// pipeline, the acquisition client, and the prediction engine. The order is
// part of the contract: feature vectors are built in exactly this order, and
// a loaded model artifact must declare the identical list or it is rejected
// at startup. Editing this list requires retraining the model.
var FeatureNames = []string{
	"swellHeight",
	"swellPeriod",
	"swellDirection",
	"windSpeed",
	"windDirection",
	"seaLevel",
	"gust",
	"secondarySwellHeight",
	"secondarySwellPeriod",
	"secondarySwellDirection",
}

// FeatureRecord holds the marine feature values collected for one location at
// one reporting hour. A feature the provider omitted is simply absent from
// Values; the zero FeatureRecord represents a failed acquisition.
type FeatureRecord struct {
	Values     map[string]float64 `json:"values" bson:"values"`
	CapturedAt time.Time          `json:"captured_at" bson:"captured_at"`
}

// Get returns the named feature value and whether the provider reported it.
func (r FeatureRecord) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Complete reports whether every feature in the schema resolved to a value.
// This is the validity flag from the acquisition contract; it is recomputed,
// never stored.
func (r FeatureRecord) Complete() bool {
	for _, name := range FeatureNames {
		if _, ok := r.Values[name]; !ok {
			return false
		}
	}
	return true
}

// Vector assembles the feature values in schema order for model inference.
// It fails on the first absent feature rather than substituting a default:
// the engine only runs inference on complete records, so a gap here means a
// caller bug.
func (r FeatureRecord) Vector() ([]float64, error) {
	vec := make([]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		v, ok := r.Values[name]
		if !ok {
			return nil, fmt.Errorf("feature vector: %q is absent", name)
		}
		vec[i] = v
	}
	return vec, nil
}
