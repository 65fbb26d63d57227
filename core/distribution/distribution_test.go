package distribution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
)

type firstPositive struct{}

func (firstPositive) Confidence(_ *sample.Sample, i int) float64 {
	if i == 0 {
		return 1
	}
	return -1
}
func (f firstPositive) Predict(s *sample.Sample, i int) int { return model.Sign(f.Confidence(s, i)) }

func newSample(t *testing.T, y []float64) *sample.Sample {
	t.Helper()
	x := mat.NewDense(len(y), 1, nil)
	s, err := sample.New(x, y)
	require.NoError(t, err)
	return s
}

func TestEdge(t *testing.T) {
	s := newSample(t, []float64{1, -1, 1, 1})
	d := []float64{0.4, 0.2, 0.2, 0.2}

	// margins: +1, +1, -1, -1
	assert.InDelta(t, 0.2, Edge(s, d, firstPositive{}), 1e-12)
	assert.InDelta(t, 0.2, MaxEdge(s, d, []model.Classifier{firstPositive{}}), 1e-12)
	assert.Equal(t, -1.0, MaxEdge(s, d, nil))
}

func TestRelativeEntropy(t *testing.T) {
	assert.InDelta(t, 0, RelativeEntropy(Uniform(8)), 1e-12)
	assert.InDelta(t, math.Log(4), RelativeEntropy([]float64{1, 0, 0, 0}), 1e-12)
	assert.InDelta(t, math.Log(2), RelativeEntropy([]float64{0.5, 0.5, 0, 0}), 1e-12)
}

func TestCheckNu(t *testing.T) {
	assert.NoError(t, CheckNu(1, 10))
	assert.NoError(t, CheckNu(10, 10))
	assert.Error(t, CheckNu(0.5, 10))
	assert.Error(t, CheckNu(11, 10))
	assert.Error(t, CheckNu(math.NaN(), 10))

	nu, err := NuFromRatio(0.1, 200)
	require.NoError(t, err)
	assert.Equal(t, 20.0, nu)

	nu, err = NuFromRatio(0, 200)
	require.NoError(t, err)
	assert.Equal(t, 1.0, nu)

	_, err = NuFromRatio(1.5, 200)
	assert.Error(t, err)
}

func TestCheckAndProject(t *testing.T) {
	assert.NoError(t, Check(Uniform(5), 1))
	assert.Error(t, Check([]float64{0.7, 0.3}, 0.5))
	assert.Error(t, Check([]float64{0.7, 0.7}, 1))
	assert.Error(t, Check([]float64{-0.1, 1.1}, 2))

	d := []float64{-1e-12, 0.5, 0.5 + 1e-10}
	Project(d, 1)
	assert.NoError(t, Check(d, 1))
	assert.Equal(t, 0.0, d[0])
}

func TestCappedSoftmax(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		upper  float64
	}{
		{"uncapped", []float64{0, 1, 2}, 1},
		{"one capped", []float64{0, 0, 10}, 0.5},
		{"cap at uniform", []float64{3, -2, 7, 1}, 0.25},
		{"ties", []float64{5, 5, 5, 0, 0}, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CappedSoftmax(tt.scores, tt.upper)
			require.NoError(t, Check(d, tt.upper))
			assert.InDelta(t, 1, floats.Sum(d), 1e-12)

			// uncapped entries keep softmax ratios
			for i := range d {
				for j := range d {
					if d[i] < tt.upper-1e-12 && d[j] < tt.upper-1e-12 && d[j] > 0 {
						assert.InDelta(t, math.Exp(tt.scores[i]-tt.scores[j]), d[i]/d[j], 1e-9)
					}
				}
			}
		})
	}

	d := CappedSoftmax([]float64{0, 0, 10}, 0.5)
	assert.InDelta(t, 0.5, d[2], 1e-12)
	assert.InDelta(t, 0.25, d[0], 1e-12)

	assert.InDeltaSlice(t, []float64{0.25, 0.25, 0.25, 0.25}, CappedSoftmax([]float64{3, -2, 7, 1}, 0.25), 1e-12)
}

func TestCappedMin(t *testing.T) {
	values := []float64{0.5, -1, 0.2, 1}
	assert.Equal(t, -1.0, CappedMin(values, 1))
	assert.InDelta(t, (-1+0.2)/2, CappedMin(values, 0.5), 1e-12)
	assert.InDelta(t, 0.175, CappedMin(values, 0.25), 1e-12)
	// the input is not reordered
	assert.Equal(t, []float64{0.5, -1, 0.2, 1}, values)
}
