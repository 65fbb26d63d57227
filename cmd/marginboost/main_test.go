package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/marginboost/core/model"
)

// writeCSV writes n rows "x,noise,label" with label 1 for x >= n/2, else 0.
func writeCSV(t *testing.T, dir, name string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("x,noise,label\n")
	for i := 0; i < n; i++ {
		label := 0
		if i >= n/2 {
			label = 1
		}
		fmt.Fprintf(&b, "%d,%d,%d\n", i, (i*7)%5, label)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	train := writeCSV(t, dir, "train.csv", 30)
	test := writeCSV(t, dir, "test.csv", 10)

	cfgPath := filepath.Join(dir, "run.yaml")
	cfg := fmt.Sprintf(`
algorithm: erlpboost
tolerance: 0.2
log_level: error
data:
  train: {csv: %s, target_column: label, positive: 1}
  test:  {csv: %s, target_column: label, positive: 1}
output:
  log_csv: %s
  plot: %s
  model_json: %s
  print_every: 1
`, train, test,
		filepath.Join(dir, "run.csv"),
		filepath.Join(dir, "bounds.png"),
		filepath.Join(dir, "model.json"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(args{Config: cfgPath}, &out))
	assert.Contains(t, out.String(), "ERLPBoost:")
	assert.Contains(t, out.String(), "train accuracy 1.0000")
	assert.Contains(t, out.String(), "[FIN]")

	ew, err := model.LoadWeights(filepath.Join(dir, "model.json"))
	require.NoError(t, err)
	assert.Equal(t, "ERLPBoost", ew.ModelType)
	assert.NotEmpty(t, ew.Weights)
	assert.Contains(t, ew.Hypotheses[0], "x >= ")
	assert.Equal(t, 0.2, ew.Hyperparameters["tolerance"])

	csv, err := os.ReadFile(filepath.Join(dir, "run.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(csv), "ObjectiveValue,TrainLoss,TestLoss,Time"))

	_, err = os.Stat(filepath.Join(dir, "bounds.png"))
	assert.NoError(t, err)
}

func TestRun_Overrides(t *testing.T) {
	dir := t.TempDir()
	train := writeCSV(t, dir, "train.csv", 20)
	cfgPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf(`
algorithm: erlpboost
log_level: error
data:
  train: {csv: %s, target_column: label, positive: 1}
`, train)), 0o600))

	var out bytes.Buffer
	require.NoError(t, run(args{Config: cfgPath, Algorithm: "lpboost", MaxRounds: 5, Quiet: true}, &out))
	assert.Contains(t, out.String(), "LPBoost:")
	assert.NotContains(t, out.String(), "STATS")

	out.Reset()
	require.NoError(t, run(args{Config: cfgPath, Algorithm: "LPBoost", MaxRounds: 5, Quiet: true}, &out))
	assert.Contains(t, out.String(), "LPBoost:")

	err := run(args{Config: cfgPath, Algorithm: "lpboost", Quiet: true}, &out)
	assert.Error(t, err, "lpboost needs a round budget")

	err = run(args{Config: filepath.Join(dir, "missing.yaml")}, &out)
	assert.Error(t, err)
}
