package model

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

type constant float64

func (c constant) Confidence(*sample.Sample, int) float64 { return float64(c) }
func (c constant) Predict(*sample.Sample, int) int         { return Sign(float64(c)) }

func TestMargins(t *testing.T) {
	s, err := sample.New(mat.NewDense(3, 1, []float64{0, 1, 2}), []float64{1, -1, 1})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, -0.5, 0.5}, Margins(constant(0.5), s))
	assert.Equal(t, -0.5, Margin(constant(0.5), s, 1))
	assert.Equal(t, 1, Sign(0))
	assert.Equal(t, -1, Sign(-1e-12))
}

func TestStateManager(t *testing.T) {
	sm := NewStateManager()
	assert.Equal(t, Initialized, sm.State())

	err := sm.Require("Boost", Running)
	var stateErr *errors.StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, "initialized", stateErr.State)

	assert.Error(t, sm.Terminate(3), "cannot terminate before running")

	sm.Start()
	sm.SetDimensions(4, 10)
	assert.NoError(t, sm.Require("Boost", Running))
	require.NoError(t, sm.Terminate(3))
	assert.Equal(t, Terminated, sm.State())
	assert.Equal(t, 3, sm.TerminatedAt())

	snap := sm.GetState()
	assert.Equal(t, RunSnapshot{State: "terminated", TerminatedAt: 3, NFeatures: 4, NSamples: 10}, snap)

	// restarting clears the terminated round
	sm.Start()
	assert.Equal(t, 0, sm.TerminatedAt())

	sm.Fail()
	err = sm.Require("Postprocess", Running, Terminated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected running or terminated")

	sm.Reset()
	assert.Equal(t, Initialized, sm.State())
}

func TestEnsembleWeights(t *testing.T) {
	ew := &EnsembleWeights{
		ModelType:       "LPBoost",
		Version:         "1",
		Weights:         []float64{0.75, 0.25},
		Hypotheses:      []string{"x0 >= 1", "x1 < 2"},
		Hyperparameters: map[string]interface{}{"nu": 1.0},
	}
	require.NoError(t, ew.Validate())

	clone := ew.Clone()
	clone.Weights[0] = 1
	assert.Equal(t, 0.75, ew.Weights[0])

	var buf bytes.Buffer
	require.NoError(t, SaveWeightsToWriter(ew, &buf))
	loaded, err := LoadWeightsFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, ew.Weights, loaded.Weights)
	assert.Equal(t, ew.Hypotheses, loaded.Hypotheses)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, SaveWeights(ew, path))
	fromFile, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, "LPBoost", fromFile.ModelType)
}

func TestEnsembleWeights_Validate(t *testing.T) {
	tests := []struct {
		name string
		ew   EnsembleWeights
	}{
		{"missing type", EnsembleWeights{Version: "1"}},
		{"missing version", EnsembleWeights{ModelType: "LPBoost"}},
		{"length mismatch", EnsembleWeights{ModelType: "LPBoost", Version: "1", Weights: []float64{1}}},
		{"zero weight", EnsembleWeights{ModelType: "LPBoost", Version: "1", Weights: []float64{0}, Hypotheses: []string{"h"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.ew.Validate())
		})
	}
}
