// Package hypothesis assembles the combined hypothesis produced by a
// boosting run.
package hypothesis

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// ExportVersion is written into exported ensembles.
const ExportVersion = "1.0.0"

// Pair is one weighted member of a combined hypothesis.
type Pair struct {
	Weight     float64
	Hypothesis model.Classifier
}

// WeightedMajority predicts sign(sum_j w_j h_j(x)). It is immutable and
// only holds members with non-zero weight.
type WeightedMajority struct {
	pairs []Pair
}

var _ model.Classifier = (*WeightedMajority)(nil)

// FromSlices zips weights with hypotheses and drops zero weights. Weights
// are not renormalized.
func FromSlices(weights []float64, hypotheses []model.Classifier) (*WeightedMajority, error) {
	if len(weights) != len(hypotheses) {
		return nil, errors.NewDimensionError("hypothesis.FromSlices", len(hypotheses), len(weights), 0)
	}

	pairs := make([]Pair, 0, len(weights))
	for j, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, errors.NewValueError("hypothesis.FromSlices",
				fmt.Sprintf("weight %d is %v, weights must be non-negative and finite", j, w))
		}
		if w == 0 {
			continue
		}
		pairs = append(pairs, Pair{Weight: w, Hypothesis: hypotheses[j]})
	}
	return &WeightedMajority{pairs: pairs}, nil
}

// Confidence returns sum_j w_j h_j(x_i).
func (wm *WeightedMajority) Confidence(s *sample.Sample, i int) float64 {
	conf := 0.0
	for _, p := range wm.pairs {
		conf += p.Weight * p.Hypothesis.Confidence(s, i)
	}
	return conf
}

// Predict returns the sign of Confidence, with ties going to +1.
func (wm *WeightedMajority) Predict(s *sample.Sample, i int) int {
	return model.Sign(wm.Confidence(s, i))
}

// PredictAll predicts every example of s.
func (wm *WeightedMajority) PredictAll(s *sample.Sample) []int {
	n, _ := s.Shape()
	out := make([]int, n)
	for i := range out {
		out[i] = wm.Predict(s, i)
	}
	return out
}

// Pairs returns a copy of the weighted members.
func (wm *WeightedMajority) Pairs() []Pair {
	return append([]Pair(nil), wm.pairs...)
}

// Weights returns the member weights in order.
func (wm *WeightedMajority) Weights() []float64 {
	w := make([]float64, len(wm.pairs))
	for j, p := range wm.pairs {
		w[j] = p.Weight
	}
	return w
}

// Hypotheses returns the members in order.
func (wm *WeightedMajority) Hypotheses() []model.Classifier {
	hs := make([]model.Classifier, len(wm.pairs))
	for j, p := range wm.pairs {
		hs[j] = p.Hypothesis
	}
	return hs
}

// Len returns the number of members.
func (wm *WeightedMajority) Len() int {
	return len(wm.pairs)
}

// Export returns a JSON friendly snapshot of the ensemble.
func (wm *WeightedMajority) Export(modelType string) *model.EnsembleWeights {
	ew := &model.EnsembleWeights{
		ModelType:  modelType,
		Version:    ExportVersion,
		Weights:    wm.Weights(),
		Hypotheses: make([]string, len(wm.pairs)),
		Metadata:   map[string]interface{}{"n_hypotheses": len(wm.pairs)},
	}
	for j, p := range wm.pairs {
		ew.Hypotheses[j] = Describe(p.Hypothesis)
	}
	return ew
}

// Describe returns the String form of h, or its type name.
func Describe(h model.Classifier) string {
	if st, ok := h.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", h)
}

func (wm *WeightedMajority) String() string {
	return fmt.Sprintf("WeightedMajority(%d hypotheses)", len(wm.pairs))
}
