// Package config loads boosting run configurations from YAML.
package config

import "time"

// Algorithm names accepted in the algorithm field.
const (
	AlgorithmLPBoost   = "lpboost"
	AlgorithmERLPBoost = "erlpboost"
)

// Config describes one boosting run.
type Config struct {
	Algorithm   string      `yaml:"algorithm"`
	Tolerance   float64     `yaml:"tolerance,omitempty"` // 0 = 1/n
	Nu          float64     `yaml:"nu,omitempty"`        // absolute capping, 0 = use nu_ratio
	NuRatio     float64     `yaml:"nu_ratio,omitempty"`  // ν = max(1, ratio·n)
	MaxRounds   int         `yaml:"max_rounds"`
	LogLevel    string      `yaml:"log_level"`
	Data        Data        `yaml:"data"`
	WeakLearner WeakLearner `yaml:"weak_learner"`
	Output      Output      `yaml:"output"`
}

// Data points at the train and optional test samples.
type Data struct {
	Train Source  `yaml:"train"`
	Test  *Source `yaml:"test,omitempty"`
}

// Source is either a pair of .npy files or a CSV file with a label column.
type Source struct {
	Features     string  `yaml:"features,omitempty"`
	Target       string  `yaml:"target,omitempty"`
	CSV          string  `yaml:"csv,omitempty"`
	TargetColumn string  `yaml:"target_column,omitempty"`
	Positive     float64 `yaml:"positive,omitempty"` // label mapped to +1, 0 = labels already ±1
}

// IsCSV reports whether the source is a CSV file.
func (s Source) IsCSV() bool { return s.CSV != "" }

// WeakLearner selects the oracle.
type WeakLearner struct {
	Kind              string `yaml:"kind"`
	ParallelThreshold int    `yaml:"parallel_threshold,omitempty"`
}

// Output lists the artifacts written after the run. Empty paths are skipped.
type Output struct {
	LogCSV     string `yaml:"log_csv,omitempty"`
	Plot       string `yaml:"plot,omitempty"`
	Graph      string `yaml:"graph,omitempty"`
	ModelJSON  string `yaml:"model_json,omitempty"`
	PrintEvery int    `yaml:"print_every,omitempty"`
	TimeLimit  string `yaml:"time_limit,omitempty"` // e.g. "10m"
}

// GetTimeLimit parses the time limit, 0 when unset.
func (o Output) GetTimeLimit() (time.Duration, error) {
	if o.TimeLimit == "" {
		return 0, nil
	}
	return time.ParseDuration(o.TimeLimit)
}
