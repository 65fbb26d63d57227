package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	mberrors "github.com/YuminosukeSato/marginboost/pkg/errors"
)

const (
	// ErrAttrKey is the field key under which an error value gets its stack trace attached.
	ErrAttrKey = "error"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelInfo)
)

// SetProvider replaces the global provider. Tests use it with a TestLoggerProvider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns a logger from the global provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with the given component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetupLogger function setup logger.
// It installs a zerolog provider on stderr and routes errors.Warn through it.
func SetupLogger(loglevel string) error {
	return SetupLoggerWithWriter(loglevel, os.Stderr)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(loglevel string, w io.Writer) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}
	p := NewZerologProvider(w, level)
	SetProvider(p)

	warnLogger := p.Zerolog().With().Str(ComponentKey, "warnings").Logger()
	mberrors.SetZerologWarnFunc(func(warning error) {
		e := warnLogger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			e = e.Object("warning", obj)
		}
		e.Msg(warning.Error())
	})
	return nil
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, mberrors.NewConfigurationError("log_level", "must be one of debug, info, warn, error", level)
	}
}
