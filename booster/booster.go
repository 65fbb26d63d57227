// Package booster implements margin maximizing boosting by column
// generation (LPBoost) and its entropy regularized variant (ERLPBoost).
//
// A Booster alternates between a weak learner, which returns the hypothesis
// with the largest edge under the current distribution, and a distribution
// optimizer, which re-solves over every hypothesis seen so far. It stops when
// the gap between the primal and dual bounds certifies convergence.
//
//	b, err := booster.NewERLPBoost(s, booster.WithTolerance(0.01), booster.WithNu(10))
//	if err != nil { ... }
//	res, err := b.Run(weaklearner.NewStumpLearner(), 0)
package booster

import (
	"math"

	"github.com/YuminosukeSato/marginboost/core/distribution"
	"github.com/YuminosukeSato/marginboost/core/model"
	"github.com/YuminosukeSato/marginboost/core/sample"
	"github.com/YuminosukeSato/marginboost/hypothesis"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
	"github.com/YuminosukeSato/marginboost/pkg/log"
	"github.com/YuminosukeSato/marginboost/solver"
)

// WeakLearner is the oracle queried once per round.
type WeakLearner interface {
	Produce(s *sample.Sample, dist []float64) (model.Classifier, error)
}

// DistributionOptimizer recomputes the example distribution over the
// cumulative hypothesis set. Implementations are owned by one Booster.
type DistributionOptimizer interface {
	// Initialize resets the optimizer for a run.
	Initialize(cfg solver.Config) error
	// Update adds h and returns the new distribution and the optimal value.
	Update(s *sample.Sample, dist []float64, h model.Classifier) ([]float64, float64, error)
	// Weights returns one non-negative weight per hypothesis, summing to one.
	Weights() ([]float64, error)
}

// Flow tells the caller whether to run another round.
type Flow int

const (
	// Continue means the run has not terminated.
	Continue Flow = iota
	// Break means the run terminated in this round.
	Break
)

// Booster runs one boosting strategy over a borrowed sample.
type Booster struct {
	sample    *sample.Sample
	strategy  Strategy
	optimizer DistributionOptimizer

	tolerance    float64
	toleranceSet bool
	nu           float64
	nuRatio      *float64

	dist       []float64
	hypotheses []model.Classifier
	primal     float64
	dual       float64
	converged  bool

	// entropy regularized variant only
	eta     float64
	maxIter int

	state  *model.StateManager
	logger log.Logger
}

// New creates a Booster for the given strategy. A nil optimizer selects the
// strategy's default solver.
func New(s *sample.Sample, strategy Strategy, optimizer DistributionOptimizer, opts ...Option) (*Booster, error) {
	if s == nil {
		return nil, errors.NewConfigurationError("sample", "sample is required", nil)
	}
	if strategy == nil {
		return nil, errors.NewConfigurationError("strategy", "strategy is required", nil)
	}

	n, _ := s.Shape()
	b := &Booster{
		sample:    s,
		strategy:  strategy,
		optimizer: optimizer,
		tolerance: 1 / float64(n),
		nu:        1,
		primal:    1,
		dual:      -1,
		state:     model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.nuRatio != nil {
		nu, err := distribution.NuFromRatio(*b.nuRatio, n)
		if err != nil {
			return nil, err
		}
		b.nu = nu
	}
	if err := distribution.CheckNu(b.nu, n); err != nil {
		return nil, err
	}
	if math.IsNaN(b.tolerance) || b.tolerance <= 0 {
		return nil, errors.NewConfigurationError("tolerance", "must be positive", b.tolerance)
	}
	if err := strategy.validate(b); err != nil {
		return nil, err
	}

	if b.optimizer == nil {
		b.optimizer = strategy.DefaultOptimizer()
	}
	if b.logger == nil {
		b.logger = log.GetLoggerWithName("booster")
	}
	b.logger = b.logger.With(log.AlgorithmKey, strategy.Name())
	return b, nil
}

// NewLPBoost creates a column generation booster with an LP solver.
func NewLPBoost(s *sample.Sample, opts ...Option) (*Booster, error) {
	return New(s, ColumnGeneration{}, nil, opts...)
}

// NewERLPBoost creates an entropy regularized booster with a QP solver.
func NewERLPBoost(s *sample.Sample, opts ...Option) (*Booster, error) {
	return New(s, EntropyRegularized{}, nil, opts...)
}

// Preprocess starts a fresh run. Calling it again discards the previous
// distribution and hypotheses.
func (b *Booster) Preprocess() error {
	if err := b.sample.IsValidBinaryInstance(); err != nil {
		b.fail(err)
		return errors.NewConfigurationError("target", err.Error(), nil)
	}

	b.state.Reset()
	n, m := b.sample.Shape()
	b.dist = distribution.Uniform(n)
	b.hypotheses = b.hypotheses[:0]
	b.primal = 1
	b.dual = -1
	b.converged = false
	b.eta = 0
	b.maxIter = 0

	cfg := b.strategy.preprocess(b)
	err := errors.SafeExecute("optimizer.Initialize", func() error {
		return b.optimizer.Initialize(cfg)
	})
	if err != nil {
		b.fail(err)
		return err
	}

	b.state.Start()
	b.state.SetDimensions(m, n)

	fields := []any{
		log.SamplesKey, n,
		log.FeaturesKey, m,
		log.NuKey, b.nu,
		log.ToleranceKey, b.tolerance,
	}
	if b.maxIter > 0 {
		fields = append(fields, log.EtaKey, b.eta, log.MaxIterKey, b.maxIter)
	}
	b.logger.Info("preprocess", fields...)
	return nil
}

// Boost runs one round. round is 1-based.
func (b *Booster) Boost(oracle WeakLearner, round int) (Flow, error) {
	if err := b.state.Require("Boost", model.Running); err != nil {
		return Break, err
	}
	if oracle == nil {
		return Break, errors.NewConfigurationError("oracle", "weak learner is required", nil)
	}

	flow, err := b.strategy.boost(b, oracle, round)
	if err != nil {
		b.fail(err)
		b.logger.Error("boosting failed", err, log.RoundKey, round)
		return Break, err
	}

	b.logger.Debug("boosting round",
		log.RoundKey, round,
		log.PrimalBoundKey, b.primal,
		log.DualBoundKey, b.dual,
		log.GapKey, b.primal-b.dual,
		log.HypothesesKey, len(b.hypotheses),
	)
	return flow, nil
}

// Postprocess assembles the combined hypothesis from the optimizer's final
// weights. It fails for a run in the Failed state.
func (b *Booster) Postprocess() (*hypothesis.WeightedMajority, error) {
	wm, err := b.CurrentHypothesis()
	if err != nil {
		return nil, err
	}
	b.logger.Info("postprocess",
		log.HypothesesKey, wm.Len(),
		log.PrimalBoundKey, b.primal,
		log.DualBoundKey, b.dual,
	)
	return wm, nil
}

// CurrentHypothesis returns the combined hypothesis for the hypotheses seen
// so far without ending the run.
func (b *Booster) CurrentHypothesis() (*hypothesis.WeightedMajority, error) {
	if err := b.state.Require("CurrentHypothesis", model.Running, model.Terminated); err != nil {
		return nil, err
	}

	var weights []float64
	err := errors.SafeExecute("optimizer.Weights", func() error {
		var werr error
		weights, werr = b.optimizer.Weights()
		return werr
	})
	if err != nil {
		return nil, err
	}
	if len(weights) != len(b.hypotheses) {
		return nil, errors.NewOptimizerError("Weights", b.strategy.Name(),
			errors.NewDimensionError("CurrentHypothesis", len(b.hypotheses), len(weights), 0))
	}
	return hypothesis.FromSlices(weights, b.hypotheses)
}

// produce queries the oracle, converting panics to errors.
func (b *Booster) produce(oracle WeakLearner) (model.Classifier, error) {
	var h model.Classifier
	err := errors.SafeExecute("oracle.Produce", func() error {
		var perr error
		h, perr = oracle.Produce(b.sample, b.dist)
		return perr
	})
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.NewValueError("oracle.Produce", "weak learner returned no hypothesis")
	}
	return h, nil
}

// update runs the optimizer against h and validates the returned distribution.
func (b *Booster) update(h model.Classifier, round int) ([]float64, float64, error) {
	var (
		dist  []float64
		value float64
	)
	err := errors.SafeExecute("optimizer.Update", func() error {
		var uerr error
		dist, value, uerr = b.optimizer.Update(b.sample, b.dist, h)
		return uerr
	})
	if err != nil {
		return nil, 0, err
	}

	n, _ := b.sample.Shape()
	if len(dist) != n {
		return nil, 0, errors.NewOptimizerError("Update", b.strategy.Name(),
			errors.NewDimensionError("Boost", n, len(dist), 0))
	}
	if err := errors.CheckNumericalStability("distribution", dist, round); err != nil {
		return nil, 0, err
	}
	if err := distribution.Check(dist, 1/b.nu); err != nil {
		return nil, 0, errors.NewOptimizerError("Update", b.strategy.Name(), err)
	}
	return dist, value, nil
}

func (b *Booster) terminate(round int, converged bool) error {
	b.converged = converged
	if err := b.state.Terminate(round); err != nil {
		return err
	}
	b.logger.Info("boosting terminated",
		log.RoundKey, round,
		log.PrimalBoundKey, b.primal,
		log.DualBoundKey, b.dual,
		log.GapKey, b.primal-b.dual,
		log.HypothesesKey, len(b.hypotheses),
	)
	return nil
}

func (b *Booster) fail(err error) {
	b.state.Fail()
	b.hypotheses = nil
	b.converged = false
	b.logger.Debug("run failed", err)
}

// Distribution returns a copy of the current distribution.
func (b *Booster) Distribution() []float64 {
	return append([]float64(nil), b.dist...)
}

// PrimalBound returns the best primal bound seen so far.
func (b *Booster) PrimalBound() float64 { return b.primal }

// DualBound returns the latest dual bound.
func (b *Booster) DualBound() float64 { return b.dual }

// Gap returns PrimalBound - DualBound.
func (b *Booster) Gap() float64 { return b.primal - b.dual }

// Terminated returns the round at which the run terminated, or 0.
func (b *Booster) Terminated() int { return b.state.TerminatedAt() }

// Converged reports whether the run stopped on the gap criterion.
func (b *Booster) Converged() bool { return b.converged }

// State returns the run state.
func (b *Booster) State() model.RunState { return b.state.State() }

// Eta returns the regularization strength, 0 for column generation.
func (b *Booster) Eta() float64 { return b.eta }

// MaxIter returns the iteration cap of the regularized variant, 0 otherwise.
func (b *Booster) MaxIter() int { return b.maxIter }

// Nu returns the capping parameter.
func (b *Booster) Nu() float64 { return b.nu }

// Tolerance returns the convergence tolerance.
func (b *Booster) Tolerance() float64 { return b.tolerance }

// Hypotheses returns the number of hypotheses in the history.
func (b *Booster) Hypotheses() int { return len(b.hypotheses) }

// Snapshot returns the run state for reports and model metadata.
func (b *Booster) Snapshot() model.RunSnapshot { return b.state.GetState() }

// Algorithm returns the strategy name.
func (b *Booster) Algorithm() string { return b.strategy.Name() }
