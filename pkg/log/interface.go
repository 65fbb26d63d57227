// Package log provides the structured logging interface used by marginboost.
//
// Boosters, solvers and the research runner log through the Logger interface
// below. The default implementation is backed by zerolog; tests swap in a
// TestLogger that captures JSON lines in memory.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("booster").With(
//	    log.AlgorithmKey, "LPBoost",
//	)
//	logger.Info("preprocess",
//	    log.SamplesKey, 1000,
//	    log.NuKey, 10.0,
//	    log.ToleranceKey, 0.01,
//	)

package log

import (
	"context"
)

// Logger is a leveled, key-value logger. Fields alternate keys (usually the
// constants in attributes.go) and values.
//
// Round level detail goes to Debug, run level events (preprocess, termination)
// to Info. An error passed as the first field of Error is logged under
// ErrAttrKey together with its stack trace:
//
//	logger.Error("distribution update failed", err, log.RoundKey, 3)
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record, e.g. the
	// algorithm name for all records of one booster.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted. Use it to
	// skip computing expensive fields such as the relative entropy of a
	// distribution.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a log level. The values match slog.Level.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates loggers that share one destination and level.
type LoggerProvider interface {
	GetLogger() Logger

	// GetLoggerWithName tags the logger with ComponentKey = name.
	GetLoggerWithName(name string) Logger

	SetLevel(level Level)
}
