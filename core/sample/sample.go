// Package sample holds the labelled training data consumed by boosters,
// weak learners and solvers.
package sample

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// Sample is an immutable set of n labelled examples with m real features.
// Labels of a binary instance are -1 or +1.
type Sample struct {
	features *mat.Dense
	target   []float64
	names    []string
}

// New builds a Sample. The features matrix and target are used as is and
// must not be mutated afterwards.
func New(features *mat.Dense, target []float64) (*Sample, error) {
	if features == nil || features.IsEmpty() || len(target) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	n, _ := features.Dims()
	if n != len(target) {
		return nil, errors.NewDimensionError("sample.New", n, len(target), 0)
	}
	return &Sample{features: features, target: target}, nil
}

// WithFeatureNames attaches column names, e.g. from a CSV header.
func (s *Sample) WithFeatureNames(names []string) (*Sample, error) {
	_, m := s.Shape()
	if len(names) != m {
		return nil, errors.NewDimensionError("sample.WithFeatureNames", m, len(names), 1)
	}
	cp := *s
	cp.names = append([]string(nil), names...)
	return &cp, nil
}

// Shape returns (examples, features).
func (s *Sample) Shape() (int, int) {
	return s.features.Dims()
}

// Target returns the label vector. Callers must not modify it.
func (s *Sample) Target() []float64 {
	return s.target
}

// At returns feature j of example i.
func (s *Sample) At(i, j int) float64 {
	return s.features.At(i, j)
}

// Row returns a copy of example i.
func (s *Sample) Row(i int) []float64 {
	return mat.Row(nil, i, s.features)
}

// Feature returns a copy of column j.
func (s *Sample) Feature(j int) []float64 {
	return mat.Col(nil, j, s.features)
}

// FeatureName returns the name of column j, or "x<j>" when unnamed.
func (s *Sample) FeatureName(j int) string {
	if j < len(s.names) {
		return s.names[j]
	}
	return "x" + strconv.Itoa(j)
}

// Features exposes the underlying matrix read only.
func (s *Sample) Features() mat.Matrix {
	return s.features
}

// IsValidBinaryInstance reports an error unless every label is -1 or +1.
func (s *Sample) IsValidBinaryInstance() error {
	for i, y := range s.target {
		if y != 1 && y != -1 {
			return errors.Wrapf(errors.ErrNonBinaryLabel, "example %d has label %v", i, y)
		}
	}
	return nil
}

// BinarizeTarget maps labels to {-1, +1}: values equal to positive become +1,
// everything else -1. Useful for {0, 1} encoded files.
func (s *Sample) BinarizeTarget(positive float64) *Sample {
	y := make([]float64, len(s.target))
	for i, v := range s.target {
		if v == positive {
			y[i] = 1
		} else {
			y[i] = -1
		}
	}
	cp := *s
	cp.target = y
	return &cp
}
