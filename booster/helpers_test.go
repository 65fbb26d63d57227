package booster

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/marginboost/core/distribution"
	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/solver"
)

// vectorHypothesis returns conf[i] as its confidence on example i.
type vectorHypothesis []float64

func (v vectorHypothesis) Confidence(_ *sample.Sample, i int) float64 { return v[i] }
func (v vectorHypothesis) Predict(s *sample.Sample, i int) int       { return model.Sign(v[i]) }

// oracleFunc adapts a function to WeakLearner.
type oracleFunc func(s *sample.Sample, dist []float64) (model.Classifier, error)

func (f oracleFunc) Produce(s *sample.Sample, dist []float64) (model.Classifier, error) {
	return f(s, dist)
}

// recordingOracle wraps an oracle and keeps a copy of every distribution it sees.
type recordingOracle struct {
	inner WeakLearner
	seen  [][]float64
}

func (r *recordingOracle) Produce(s *sample.Sample, dist []float64) (model.Classifier, error) {
	r.seen = append(r.seen, append([]float64(nil), dist...))
	return r.inner.Produce(s, dist)
}

// scriptedOptimizer returns whatever next produces and uniform weights.
type scriptedOptimizer struct {
	cfg     solver.Config
	updates int
	next    func(updates int, cfg solver.Config) ([]float64, float64, error)
}

func (o *scriptedOptimizer) Initialize(cfg solver.Config) error {
	o.cfg = cfg
	o.updates = 0
	return nil
}

func (o *scriptedOptimizer) Update(_ *sample.Sample, _ []float64, _ model.Classifier) ([]float64, float64, error) {
	o.updates++
	return o.next(o.updates, o.cfg)
}

func (o *scriptedOptimizer) Weights() ([]float64, error) {
	w := make([]float64, o.updates)
	for j := range w {
		w[j] = 1 / float64(o.updates)
	}
	return w, nil
}

func pointMass(n, k int) []float64 {
	d := make([]float64, n)
	d[k] = 1
	return d
}

func argmax(d []float64) int {
	return floats.MaxIdx(d)
}

func isUniform(d []float64) bool {
	return floats.Max(d)-floats.Min(d) < 1e-15
}

// labelled builds a one-feature sample with x_i = i.
func labelled(t *testing.T, y []float64) *sample.Sample {
	t.Helper()
	x := mat.NewDense(len(y), 1, nil)
	for i := range y {
		x.Set(i, 0, float64(i))
	}
	s, err := sample.New(x, y)
	require.NoError(t, err)
	return s
}

// separable returns n examples labelled -1 below n/2 and +1 above.
func separable(t *testing.T, n int) *sample.Sample {
	y := make([]float64, n)
	for i := range y {
		y[i] = -1
		if i >= n/2 {
			y[i] = 1
		}
	}
	return labelled(t, y)
}

// noisy is separable with a few flipped labels.
func noisy(t *testing.T, n int, flipped ...int) *sample.Sample {
	s := separable(t, n)
	y := append([]float64(nil), s.Target()...)
	for _, i := range flipped {
		y[i] = -y[i]
	}
	return labelled(t, y)
}

// gaussian returns n examples with dim standard normal features, labelled by
// the sign of a fixed linear score with a tenth of the labels flipped.
func gaussian(t *testing.T, n, dim int, seed int64) *sample.Sample {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	coef := make([]float64, dim)
	for f := range coef {
		coef[f] = rng.NormFloat64()
	}

	x := mat.NewDense(n, dim, nil)
	y := make([]float64, n)
	for i := range y {
		score := 0.0
		for f := range coef {
			v := rng.NormFloat64()
			x.Set(i, f, v)
			score += coef[f] * v
		}
		y[i] = 1
		if score < 0 {
			y[i] = -1
		}
		if rng.Float64() < 0.1 {
			y[i] = -y[i]
		}
	}
	s, err := sample.New(x, y)
	require.NoError(t, err)
	return s
}

func constantMarginOracle(s *sample.Sample, margin float64) WeakLearner {
	n, _ := s.Shape()
	conf := make(vectorHypothesis, n)
	for i, y := range s.Target() {
		conf[i] = margin * y
	}
	return oracleFunc(func(*sample.Sample, []float64) (model.Classifier, error) {
		return conf, nil
	})
}

func requireDistribution(t *testing.T, d []float64, nu float64) {
	t.Helper()
	require.NoError(t, distribution.Check(d, 1/nu))
}
