package booster

import (
	"math"

	"github.com/YuminosukeSato/marginboost/core/distribution"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
	"github.com/YuminosukeSato/marginboost/solver"
)

// Strategy selects the boosting variant. The two implementations are
// ColumnGeneration and EntropyRegularized.
type Strategy interface {
	// Name is the algorithm name used in logs and exports.
	Name() string
	// DefaultOptimizer returns the solver used when none is supplied.
	DefaultOptimizer() DistributionOptimizer

	validate(b *Booster) error
	preprocess(b *Booster) solver.Config
	boost(b *Booster, oracle WeakLearner, round int) (Flow, error)
}

// ColumnGeneration is LPBoost. Each round adds the oracle's hypothesis to the
// LP and stops once the LP value is within tolerance of the smallest edge seen.
type ColumnGeneration struct{}

func (ColumnGeneration) Name() string { return "LPBoost" }

func (ColumnGeneration) DefaultOptimizer() DistributionOptimizer {
	return solver.NewLPModel()
}

func (ColumnGeneration) validate(*Booster) error { return nil }

func (ColumnGeneration) preprocess(b *Booster) solver.Config {
	n, _ := b.sample.Shape()
	return solver.Config{NSample: n, UpperBound: 1 / b.nu, Tolerance: b.tolerance}
}

func (ColumnGeneration) boost(b *Booster, oracle WeakLearner, round int) (Flow, error) {
	h, err := b.produce(oracle)
	if err != nil {
		return Break, err
	}

	edge := distribution.Edge(b.sample, b.dist, h)
	b.primal = math.Min(b.primal, edge)
	b.hypotheses = append(b.hypotheses, h)

	dist, value, err := b.update(h, round)
	if err != nil {
		return Break, err
	}
	if err := errors.CheckScalar("dual_bound", value, round); err != nil {
		return Break, err
	}
	b.dist = dist
	b.dual = value

	if b.dual >= b.primal-b.tolerance {
		return Break, b.terminate(round, true)
	}
	return Continue, nil
}

// EntropyRegularized is ERLPBoost. The LP objective is smoothed by the
// relative entropy of the distribution scaled by 1/eta, which bounds the
// number of rounds by MaxIter.
type EntropyRegularized struct{}

func (EntropyRegularized) Name() string { return "ERLPBoost" }

func (EntropyRegularized) DefaultOptimizer() DistributionOptimizer {
	return solver.NewQPModel()
}

func (EntropyRegularized) validate(b *Booster) error {
	if b.tolerance >= 2 {
		return errors.NewConfigurationError("tolerance", "must be below 2 for the regularized variant", b.tolerance)
	}
	return nil
}

func (EntropyRegularized) preprocess(b *Booster) solver.Config {
	n, _ := b.sample.Shape()
	ht := b.tolerance / 2
	lnRatio := math.Log(float64(n) / b.nu)

	b.eta = math.Max(0.5, lnRatio/ht)
	b.maxIter = int(math.Ceil(math.Max(4/ht, 8*lnRatio/(ht*ht))))
	return solver.Config{NSample: n, UpperBound: 1 / b.nu, Eta: b.eta, Tolerance: b.tolerance}
}

func (EntropyRegularized) boost(b *Booster, oracle WeakLearner, round int) (Flow, error) {
	if round > b.maxIter {
		return Break, b.terminate(b.maxIter, false)
	}

	h, err := b.produce(oracle)
	if err != nil {
		return Break, err
	}

	edge := distribution.Edge(b.sample, b.dist, h)
	b.primal = math.Min(b.primal, edge+distribution.RelativeEntropy(b.dist)/b.eta)

	// the terminating hypothesis is not added to the ensemble
	if b.primal-b.dual <= b.tolerance/2 {
		return Break, b.terminate(round, true)
	}

	dist, value, err := b.update(h, round)
	if err != nil {
		return Break, err
	}
	b.hypotheses = append(b.hypotheses, h)
	b.dist = dist

	// The edge formula is the restricted optimum only at an exact solution.
	// value bounds that optimum from below, so the smaller of the two is
	// always a valid dual bound.
	b.dual = distribution.MaxEdge(b.sample, b.dist, b.hypotheses) + distribution.RelativeEntropy(b.dist)/b.eta
	b.dual = math.Min(b.dual, value)
	if err := errors.CheckScalar("dual_bound", b.dual, round); err != nil {
		return Break, err
	}
	return Continue, nil
}
