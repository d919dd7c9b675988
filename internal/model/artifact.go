// Package model loads and evaluates the externally trained wave-height
// regressor. The artifact is a JSON regression forest exported by the
// training job; it is read once at startup and shared read-only across all
// predictions for the process lifetime.
package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is a loaded regression forest together with the feature schema it
// was trained against. It is immutable after Load and safe for concurrent
// Predict calls.
type Artifact struct {
	Version  int      `json:"version"`
	Target   string   `json:"target"`
	Features []string `json:"features"`
	Trees    []Tree   `json:"trees"`
}

// Load reads and validates a model artifact. The expected feature list must
// match the artifact's declared features exactly, including order: a
// mismatch means the artifact was trained against a different schema and
// would map values to the wrong columns without ever raising an error, so it
// is rejected here rather than discovered at inference time.
func Load(path string, expectedFeatures []string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}

	if err := a.validate(expectedFeatures); err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	return &a, nil
}

func (a *Artifact) validate(expectedFeatures []string) error {
	if len(a.Trees) == 0 {
		return fmt.Errorf("no trees")
	}
	if len(a.Features) != len(expectedFeatures) {
		return fmt.Errorf("feature count mismatch: artifact has %d, schema has %d",
			len(a.Features), len(expectedFeatures))
	}
	for i, name := range expectedFeatures {
		if a.Features[i] != name {
			return fmt.Errorf("feature mismatch at position %d: artifact %q, schema %q",
				i, a.Features[i], name)
		}
	}
	for i := range a.Trees {
		if err := a.Trees[i].validate(len(a.Features)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Predict evaluates the forest on a feature vector in schema order and
// returns the mean of the tree outputs. The vector length is checked here so
// a malformed call surfaces as an explicit error, never a panic; the engine
// treats any error as a signal to fall back.
func (a *Artifact) Predict(features []float64) (float64, error) {
	if len(features) != len(a.Features) {
		return 0, fmt.Errorf("feature vector length %d does not match model input size %d",
			len(features), len(a.Features))
	}

	var sum float64
	for i := range a.Trees {
		v, err := a.Trees[i].evaluate(features)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	return sum / float64(len(a.Trees)), nil
}
