// Package log provides the shared structured logger for sgex.
// It wraps zap behind a small leveled API so packages can log
// key/value pairs without carrying a logger through every call.
package log

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

// Configure installs the process-wide logger. Level is one of
// "debug", "info", "warn", "error"; unknown values fall back to info.
// When debug is requested the development encoder is used so output
// stays readable on a terminal.
func Configure(level string) error {
	var cfg zap.Config
	if level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	logger = l.Sugar()
	return nil
}

// SetLogger replaces the process-wide logger. Tests use this with
// zap.NewNop() or an observed core.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l.Sugar()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message with key/value pairs.
func Debug(msg string, kv ...interface{}) { get().Debugw(msg, kv...) }

// Info logs an informational message with key/value pairs.
func Info(msg string, kv ...interface{}) { get().Infow(msg, kv...) }

// Warn logs a warning with key/value pairs.
func Warn(msg string, kv ...interface{}) { get().Warnw(msg, kv...) }

// Error logs an error with key/value pairs.
func Error(msg string, kv ...interface{}) { get().Errorw(msg, kv...) }

// Sync flushes buffered log entries. Safe to call on exit.
func Sync() {
	_ = get().Sync()
}
