// Command genmodel writes a small deterministic wave-height model artifact
// for local development and tests. The trees are hand-built to roughly track
// the swell-driven fallback heuristic, so forecasts look plausible without a
// trained artifact on disk.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/surfapp/forecast-engine/internal/domain"
	"github.com/surfapp/forecast-engine/internal/model"
)

func main() {
	out := flag.String("out", "random_forest_surf_model.json", "output path for the model artifact")
	flag.Parse()

	if err := run(*out); err != nil {
		fmt.Fprintln(os.Stderr, "genmodel:", err)
		os.Exit(1)
	}
}

func run(out string) error {
	artifact := sampleArtifact()

	// Round-trip through the loader's validation so a bad edit to this tool
	// fails here and not at service startup.
	if _, err := artifact.Predict(make([]float64, len(domain.FeatureNames))); err != nil {
		return fmt.Errorf("generated artifact does not evaluate: %w", err)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	fmt.Fprintf(os.Stderr, "wrote %s (%d trees, %d features)\n", out, len(artifact.Trees), len(artifact.Features))
	return nil
}

// sampleArtifact builds a three-tree forest over the live feature schema.
// Splits are on swellHeight (index 0) and swellPeriod (index 1); leaf values
// approximate breaking wave height in meters for each swell regime.
func sampleArtifact() *model.Artifact {
	return &model.Artifact{
		Version:  1,
		Target:   "waveHeight",
		Features: domain.FeatureNames,
		Trees: []model.Tree{
			{
				Nodes: []model.Node{
					{Feature: 0, Threshold: 1.0, Left: 1, Right: 2},
					{Leaf: true, Value: 0.8},
					{Feature: 0, Threshold: 2.0, Left: 3, Right: 4},
					{Leaf: true, Value: 1.6},
					{Leaf: true, Value: 2.4},
				},
			},
			{
				Nodes: []model.Node{
					{Feature: 1, Threshold: 9.0, Left: 1, Right: 2},
					{Leaf: true, Value: 1.0},
					{Feature: 0, Threshold: 1.5, Left: 3, Right: 4},
					{Leaf: true, Value: 1.5},
					{Leaf: true, Value: 2.2},
				},
			},
			{
				Nodes: []model.Node{
					{Feature: 0, Threshold: 0.5, Left: 1, Right: 2},
					{Leaf: true, Value: 0.5},
					{Feature: 1, Threshold: 12.0, Left: 3, Right: 4},
					{Leaf: true, Value: 1.4},
					{Leaf: true, Value: 1.9},
				},
			},
		},
	}
}
