package booster

import (
	"github.com/YuminosukeSato/marginboost/pkg/log"
)

// Option configures a Booster at construction. The capping parameter and
// tolerance cannot change once a Booster exists.
type Option func(*Booster)

// WithTolerance sets the convergence tolerance. Defaults to 1/n.
func WithTolerance(tol float64) Option {
	return func(b *Booster) {
		b.tolerance = tol
		b.toleranceSet = true
	}
}

// WithNu sets the capping parameter nu in [1, n]. Defaults to 1.
func WithNu(nu float64) Option {
	return func(b *Booster) {
		b.nu = nu
		b.nuRatio = nil
	}
}

// WithNuRatio sets nu = max(1, ratio * n) from an expected outlier ratio.
func WithNuRatio(ratio float64) Option {
	return func(b *Booster) {
		b.nuRatio = &ratio
	}
}

// WithLogger overrides the default "booster" logger.
func WithLogger(logger log.Logger) Option {
	return func(b *Booster) {
		b.logger = logger
	}
}

// WithOptimizer replaces the strategy's default distribution optimizer.
func WithOptimizer(opt DistributionOptimizer) Option {
	return func(b *Booster) {
		b.optimizer = opt
	}
}
