package booster

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/YuminosukeSato/marginboost/hypothesis"
	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// Result summarizes a finished run.
type Result struct {
	Model       *hypothesis.WeightedMajority
	Rounds      int
	Converged   bool
	PrimalBound float64
	DualBound   float64
}

// Run preprocesses, boosts for at most maxRounds rounds and postprocesses.
// maxRounds = 0 is only allowed for the regularized variant, which stops by
// itself after MaxIter rounds. A run that ends without a convergence
// certificate raises a ConvergenceWarning through errors.Warn.
func (b *Booster) Run(oracle WeakLearner, maxRounds int) (*Result, error) {
	if maxRounds < 0 {
		return nil, errors.NewConfigurationError("max_rounds", "must not be negative", maxRounds)
	}
	if maxRounds == 0 {
		if _, ok := b.strategy.(EntropyRegularized); !ok {
			return nil, errors.NewConfigurationError("max_rounds",
				b.strategy.Name()+" has no intrinsic iteration bound and needs a round budget", maxRounds)
		}
	}

	if err := b.Preprocess(); err != nil {
		return nil, err
	}

	rounds := 0
	for round := 1; maxRounds == 0 || round <= maxRounds; round++ {
		flow, err := b.Boost(oracle, round)
		if err != nil {
			return nil, err
		}
		rounds = round
		if flow == Break {
			break
		}
	}
	if at := b.Terminated(); at > 0 {
		rounds = at
	}

	if !b.converged {
		errors.Warn(errors.NewConvergenceWarning(b.strategy.Name(), rounds, b.Gap(), ""))
	}

	wm, err := b.Postprocess()
	if err != nil {
		return nil, err
	}
	return &Result{
		Model:       wm,
		Rounds:      rounds,
		Converged:   b.converged,
		PrimalBound: b.primal,
		DualBound:   b.dual,
	}, nil
}

// InfoEntry is one row of the run description printed before boosting.
type InfoEntry struct {
	Key   string
	Value string
}

// Info describes the configured run.
func (b *Booster) Info() []InfoEntry {
	n, m := b.sample.Shape()
	entries := []InfoEntry{
		{"Algorithm", b.strategy.Name()},
		{"# of examples", humanize.Comma(int64(n))},
		{"# of features", humanize.Comma(int64(m))},
		{"Tolerance", fmt.Sprintf("%g", b.tolerance)},
		{"Capping (nu)", fmt.Sprintf("%s (%.2f%% of examples)", humanize.Ftoa(b.nu), 100*b.nu/float64(n))},
	}
	if b.maxIter > 0 {
		entries = append(entries,
			InfoEntry{"Eta", fmt.Sprintf("%g", b.eta)},
			InfoEntry{"Max iteration", humanize.Comma(int64(b.maxIter))},
		)
	}
	return entries
}
