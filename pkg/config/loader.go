package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/marginboost/pkg/errors"
)

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config yaml")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encode config yaml")
	}
	return out, nil
}

func (c *Config) applyDefaults() {
	c.Algorithm = strings.ToLower(c.Algorithm)
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmERLPBoost
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.WeakLearner.Kind == "" {
		c.WeakLearner.Kind = "stump"
	}
}

// Validate checks fields that do not depend on the sample size. ν against n
// is checked when the booster is built.
func (c *Config) Validate() error {
	switch c.Algorithm {
	case AlgorithmLPBoost:
		if c.MaxRounds <= 0 && c.Output.TimeLimit == "" {
			return errors.NewConfigurationError("max_rounds", "lpboost needs a round budget or a time limit", c.MaxRounds)
		}
	case AlgorithmERLPBoost:
		if c.Tolerance >= 2 {
			return errors.NewConfigurationError("tolerance", "must be below 2 for erlpboost", c.Tolerance)
		}
	default:
		return errors.NewConfigurationError("algorithm", "must be lpboost or erlpboost", c.Algorithm)
	}

	if c.Tolerance < 0 {
		return errors.NewConfigurationError("tolerance", "must not be negative", c.Tolerance)
	}
	if c.MaxRounds < 0 {
		return errors.NewConfigurationError("max_rounds", "must not be negative", c.MaxRounds)
	}
	if c.Nu != 0 && c.NuRatio != 0 {
		return errors.NewConfigurationError("nu", "set either nu or nu_ratio, not both", c.Nu)
	}
	if c.Nu != 0 && c.Nu < 1 {
		return errors.NewConfigurationError("nu", "must be at least 1", c.Nu)
	}
	if c.NuRatio < 0 || c.NuRatio > 1 {
		return errors.NewConfigurationError("nu_ratio", "must lie in [0, 1]", c.NuRatio)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.NewConfigurationError("log_level", "must be debug, info, warn, or error", c.LogLevel)
	}

	if c.WeakLearner.Kind != "stump" {
		return errors.NewConfigurationError("weak_learner.kind", "only stump is supported", c.WeakLearner.Kind)
	}

	if err := validateSource("data.train", c.Data.Train); err != nil {
		return err
	}
	if c.Data.Test != nil {
		if err := validateSource("data.test", *c.Data.Test); err != nil {
			return err
		}
	}

	if _, err := c.Output.GetTimeLimit(); err != nil {
		return errors.NewConfigurationError("output.time_limit", err.Error(), c.Output.TimeLimit)
	}
	if c.Output.PrintEvery < 0 {
		return errors.NewConfigurationError("output.print_every", "must not be negative", c.Output.PrintEvery)
	}
	return nil
}

func validateSource(name string, s Source) error {
	switch {
	case s.IsCSV() && (s.Features != "" || s.Target != ""):
		return errors.NewConfigurationError(name, "set either csv or features/target", s.CSV)
	case s.IsCSV():
		if s.TargetColumn == "" {
			return errors.NewConfigurationError(name+".target_column", "required for csv input", "")
		}
	case s.Features == "" || s.Target == "":
		return errors.NewConfigurationError(name, "features and target are required", s.Features)
	}
	return nil
}
