// Package mlogger exposes a simple zap logger, with log levels
package mlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelNone disables logging
	LogLevelNone = "none"
)

// New returns a zap logger with the specified level.
//
// Level "none" yields a nop logger. Any other value must parse as a zap
// level ("debug", "info", "warn", "error", ...).
func New(logLevel string) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	zapConfig := zap.NewProductionConfig()
	zapConfig.DisableStacktrace = true
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, err
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	return zapConfig.Build()
}

// MustNew returns a zap logger with the specified level or panics
func MustNew(logLevel string) *zap.Logger {
	l, err := New(logLevel)
	if err != nil {
		panic(err)
	}
	return l
}
