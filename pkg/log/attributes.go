// Package log defines standard attribute keys for boosting runs.
//
// Using these keys keeps the output of boosters, solvers and the research
// runner consistent, so that a run can be filtered by round or by bound.
//
// The keys follow a hierarchical naming convention (e.g. "boost.round",
// "data.samples").

package log

// Run context
const (
	// AlgorithmKey identifies the boosting algorithm.
	// Examples: "LPBoost", "ERLPBoost"
	AlgorithmKey = "boost.algorithm"

	// ComponentKey identifies which package is logging.
	// Examples: "booster", "solver.lp", "research"
	ComponentKey = "component"

	// OperationKey specifies the operation being performed.
	// Standard values: "preprocess", "boost", "postprocess", "update"
	OperationKey = "boost.operation"

	// LearnerKey names the weak learner that produced a hypothesis.
	LearnerKey = "boost.learner"
)

// Data shape
const (
	// SamplesKey indicates the number of examples in the training sample.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features per example.
	FeaturesKey = "data.features"

	// HypothesesKey indicates the number of hypotheses in the history or ensemble.
	HypothesesKey = "data.hypotheses"
)

// Boosting state
// These attributes track the convergence certificate of a run.
const (
	// RoundKey records the 1-based boosting round.
	RoundKey = "boost.round"

	// MaxIterKey records the intrinsic iteration cap of the regularized variant.
	MaxIterKey = "boost.max_iter"

	// EdgeKey records the edge of the hypothesis produced in this round.
	EdgeKey = "boost.edge"

	// PrimalBoundKey records the best (smallest) primal bound seen so far.
	PrimalBoundKey = "boost.primal_bound"

	// DualBoundKey records the dual objective returned by the optimizer.
	DualBoundKey = "boost.dual_bound"

	// GapKey records primal_bound - dual_bound.
	GapKey = "boost.gap"

	// EtaKey records the entropy regularization strength.
	EtaKey = "boost.eta"

	// NuKey records the capping parameter.
	NuKey = "boost.nu"

	// ToleranceKey records the convergence tolerance.
	ToleranceKey = "boost.tolerance"

	// EntropyKey records the relative entropy of the distribution from uniform.
	EntropyKey = "boost.entropy"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// IterationKey records the inner solver iterations spent on one update.
	IterationKey = "perf.iterations"

	// AccuracyKey records classification accuracy in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// LossKey records the zero-one loss in [0, 1].
	LossKey = "metrics.loss"

	// ObjectiveKey records the soft margin objective of a combined hypothesis.
	ObjectiveKey = "metrics.objective"
)

// Error context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// StacktraceKey contains stack trace information for debugging.
	// Populated by the zerolog logger from cockroachdb/errors details.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides a hint for resolving the issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationPreprocess  = "preprocess"
	OperationBoost       = "boost"
	OperationPostprocess = "postprocess"
	OperationUpdate      = "update"

	ErrorInvalidConfig = "INVALID_CONFIGURATION"
	ErrorOptimizer     = "OPTIMIZER_FAILURE"
	ErrorConvergence   = "CONVERGENCE_FAILURE"
	ErrorWrongState    = "WRONG_STATE"
)
