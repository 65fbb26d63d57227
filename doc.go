// Package marginboost implements soft margin maximizing boosting for binary
// classification: LPBoost (column generation) and ERLPBoost (entropy
// regularized LPBoost).
//
// Both algorithms keep a distribution over the training examples, ask a weak
// learner for the hypothesis with the largest edge under it, and re-solve an
// optimization problem over every hypothesis collected so far. A run stops
// when the gap between the primal and dual bounds falls below the tolerance.
// The output is a weighted majority vote of the collected hypotheses.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/marginboost/booster"
//	    "github.com/YuminosukeSato/marginboost/core/sample"
//	    "github.com/YuminosukeSato/marginboost/metrics"
//	    "github.com/YuminosukeSato/marginboost/weaklearner"
//	)
//
//	func main() {
//	    s, err := sample.FromCSVFile("train.csv", "class")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    b, err := booster.NewERLPBoost(s,
//	        booster.WithTolerance(0.01),
//	        booster.WithNuRatio(0.1), // tolerate about 10% outliers
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    res, err := b.Run(weaklearner.NewStumpLearner(), 0)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("accuracy:", metrics.Accuracy(s, res.Model))
//	}
//
// LPBoost has no intrinsic iteration bound, so Run needs a positive round
// budget. ERLPBoost stops after at most MaxIter rounds.
//
// # Packages
//
//   - booster: the boosting engine and the two strategies
//   - solver: LP and QP distribution optimizers built on gonum
//   - hypothesis: the weighted majority vote produced by a run
//   - weaklearner: a decision stump oracle
//   - metrics: accuracy, zero-one loss, AUC and the soft margin objective
//   - research: round-by-round logging to CSV, convergence plots and
//     ensemble diagrams
//   - core/sample: training data and npy/CSV loaders
//   - core/model: the Classifier interface, run state and model export
//   - core/distribution: edges, relative entropy and the capped simplex
//   - core/parallel: parallel loops used by the weak learner
//   - pkg/config: YAML run configuration
//   - pkg/errors, pkg/log: error types, warnings and structured logging
//
// The marginboost command (cmd/marginboost) runs a YAML configuration end to
// end.
//
// # License
//
// marginboost is released under the MIT License.
package marginboost
