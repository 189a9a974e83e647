// Package log provides the package-wide zerolog logger, mirroring the
// way gnark's own logger package exposes a single configurable,
// concurrency-safe Logger() accessor instead of threading a logger
// through every call.
package log

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// Logger returns the current package-wide logger. Safe for concurrent use.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the package-wide logger, e.g. to redirect output
// during tests or to raise the level for debugging a proving run.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetLevel adjusts the minimum level the package-wide logger emits.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(level)
}

// Disable silences all output, e.g. for library consumers that configure
// their own logging and don't want this package writing to stderr.
func Disable() {
	SetLevel(zerolog.Disabled)
}
