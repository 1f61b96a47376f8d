// Package logging sets up the zap-backed logr.Logger used across the
// optimizer. Packages log through logr so callers can plug in any sink;
// the defaults here write structured JSON to stderr.
package logging

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels used with logr's V().
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

var (
	mu  sync.RWMutex
	log = logr.Discard()
)

// SetLogger installs the process-wide logger returned by Log.
func SetLogger(l logr.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Log returns the process-wide logger. Defaults to a discard logger until
// SetLogger is called.
func Log() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// NewLogger builds a production logger writing JSON to stderr. verbosity
// controls how deep V() levels are emitted: 0 keeps INFO only, 1 adds
// DEBUG, 2 adds TRACE.
func NewLogger(verbosity int) logr.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	zl := zap.Must(cfg.Build())
	return zapr.NewLogger(zl)
}

// NewTestLogger builds a development logger at TRACE verbosity, installs it
// as the process-wide logger, and returns it. Intended for test suites.
func NewTestLogger() logr.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-TRACE))
	zl := zap.Must(cfg.Build())
	l := zapr.NewLogger(zl)
	SetLogger(l)
	return l
}
