// Package logging provides the process-wide structured logger every
// other package logs through, so a caller embedding this module can
// redirect or reconfigure logging once, at the top, instead of each
// package rolling its own.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	globalMu     sync.RWMutex
)

func init() {
	globalLogger, _ = zap.NewProduction()
}

// New builds a logger at the given level ("debug", "info", "warn",
// "error"; anything else defaults to "info").
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build(zap.AddCallerSkip(1))
}

// Global returns the process-wide logger.
func Global() *zap.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobal replaces the process-wide logger, e.g. with one built by New
// from a CLI --log-level flag.
func SetGlobal(l *zap.Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

func Info(msg string, fields ...zap.Field) { Global().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Global().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { Global().Error(msg, fields...) }

func Debug(msg string, fields ...zap.Field) { Global().Debug(msg, fields...) }

// With returns a child of the global logger carrying fields, e.g. an
// analyzer's name or the current archive.
func With(fields ...zap.Field) *zap.Logger { return Global().With(fields...) }

// Sync flushes any buffered log entries. Callers should defer this in
// main after SetGlobal.
func Sync() { _ = Global().Sync() }
