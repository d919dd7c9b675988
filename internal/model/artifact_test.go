package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfapp/forecast-engine/internal/domain"
)

// stumpArtifact builds a minimal valid artifact: one depth-1 tree splitting
// on swellHeight (feature 0).
func stumpArtifact() Artifact {
	return Artifact{
		Version:  1,
		Target:   "waveHeight",
		Features: append([]string(nil), domain.FeatureNames...),
		Trees: []Tree{{
			Nodes: []Node{
				{Feature: 0, Threshold: 1.0, Left: 1, Right: 2},
				{Leaf: true, Value: 0.6},
				{Leaf: true, Value: 1.8},
			},
		}},
	}
}

func writeArtifact(t *testing.T, a Artifact) string {
	t.Helper()
	data, err := json.Marshal(a)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeArtifact(t, stumpArtifact())

	a, err := Load(path, domain.FeatureNames)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Version)
	assert.Equal(t, "waveHeight", a.Target)
	assert.Len(t, a.Trees, 1)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), domain.FeatureNames)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read model artifact")
}

func TestLoad_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := Load(path, domain.FeatureNames)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse model artifact")
}

func TestLoad_FeatureSchemaMismatch(t *testing.T) {
	t.Run("wrong count", func(t *testing.T) {
		a := stumpArtifact()
		a.Features = a.Features[:3]
		_, err := Load(writeArtifact(t, a), domain.FeatureNames)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feature count mismatch")
	})

	t.Run("wrong order", func(t *testing.T) {
		a := stumpArtifact()
		a.Features[0], a.Features[1] = a.Features[1], a.Features[0]
		_, err := Load(writeArtifact(t, a), domain.FeatureNames)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feature mismatch at position 0")
	})

	t.Run("renamed feature", func(t *testing.T) {
		a := stumpArtifact()
		a.Features[5] = "tideLevel"
		_, err := Load(writeArtifact(t, a), domain.FeatureNames)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "position 5")
	})
}

func TestLoad_RejectsMalformedTrees(t *testing.T) {
	t.Run("no trees", func(t *testing.T) {
		a := stumpArtifact()
		a.Trees = nil
		_, err := Load(writeArtifact(t, a), domain.FeatureNames)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no trees")
	})

	t.Run("feature index out of range", func(t *testing.T) {
		a := stumpArtifact()
		a.Trees[0].Nodes[0].Feature = 99
		_, err := Load(writeArtifact(t, a), domain.FeatureNames)
		require.Error(t, err)
	})

	t.Run("backward child reference", func(t *testing.T) {
		a := stumpArtifact()
		a.Trees[0].Nodes[0].Left = 0
		_, err := Load(writeArtifact(t, a), domain.FeatureNames)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "forward reference")
	})
}

func TestArtifact_Predict(t *testing.T) {
	a := stumpArtifact()

	low := make([]float64, len(domain.FeatureNames))
	low[0] = 0.5
	high := make([]float64, len(domain.FeatureNames))
	high[0] = 2.0

	got, err := a.Predict(low)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got, 1e-9)

	got, err = a.Predict(high)
	require.NoError(t, err)
	assert.InDelta(t, 1.8, got, 1e-9)
}

func TestArtifact_Predict_AveragesTrees(t *testing.T) {
	a := stumpArtifact()
	a.Trees = append(a.Trees, Tree{Nodes: []Node{{Leaf: true, Value: 1.0}}})

	vec := make([]float64, len(domain.FeatureNames))
	vec[0] = 2.0 // first tree -> 1.8, second tree -> 1.0

	got, err := a.Predict(vec)
	require.NoError(t, err)
	assert.InDelta(t, 1.4, got, 1e-9)
}

func TestArtifact_Predict_VectorLengthMismatch(t *testing.T) {
	a := stumpArtifact()
	_, err := a.Predict([]float64{1.0, 2.0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match model input size")
}
