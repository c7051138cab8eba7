package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Package-level logging surface for the query engine. Wraps a single zap
// logger so call sites stay terse.

var (
	mu   sync.RWMutex
	base = newZap(zapcore.InfoLevel)
)

func newZap(level zapcore.Level) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core).Sugar()
}

// SetLevel sets the minimum log level from a config string
// (debug, info, warn, error). Unknown values keep info.
func SetLevel(level string) {
	parsed := zapcore.InfoLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		parsed = zapcore.DebugLevel
	case "info":
		parsed = zapcore.InfoLevel
	case "warn", "warning":
		parsed = zapcore.WarnLevel
	case "error":
		parsed = zapcore.ErrorLevel
	}
	mu.Lock()
	base = newZap(parsed)
	mu.Unlock()
}

// Replace swaps the underlying logger. Tests use this with zap.NewNop().
func Replace(l *zap.SugaredLogger) {
	mu.Lock()
	base = l
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debugf logs a debug message.
func Debugf(format string, args ...interface{}) {
	current().Debugf(format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	current().Infof(format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	current().Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	current().Errorf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = current().Sync()
}
