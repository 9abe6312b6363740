// Package logging provides the process-wide structured logger used by every
// engine component. It wraps zap behind a small printf-style API so callers
// never depend on zap types directly.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger = zap.NewNop().Sugar()
)

// InitFromEnv initializes the global logger from the LOG_LEVEL environment
// variable (debug, info, warn, error; default info). Output goes to stderr in
// console encoding unless LOG_FORMAT=json.
func InitFromEnv() (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := level.Set(strings.ToLower(v)); err != nil {
			return nil, err
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	if strings.ToLower(os.Getenv("LOG_FORMAT")) != "json" {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	mu.Lock()
	logger = l.Sugar()
	mu.Unlock()
	return logger, nil
}

// SetLogger replaces the global logger. Intended for tests.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { get().Infof(format, args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...interface{}) { get().Warnf(format, args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Fatalf logs a formatted message and exits the process.
func Fatalf(format string, args ...interface{}) { get().Fatalf(format, args...) }

// Sync flushes any buffered log entries.
func Sync() error { return get().Sync() }
