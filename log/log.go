// Package log builds the zap loggers used across the sequencer.
package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

var jsonLog atomic.Bool

// JSONLog turns JSON format on or off.
func JSONLog(b bool) {
	jsonLog.Store(b)
}

func encoder() zapcore.Encoder {
	if jsonLog.Load() {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}

// NewWithLevel creates a named logger writing to stdout with the given level.
func NewWithLevel(module string, level zap.AtomicLevel, opts ...zap.Option) *zap.Logger {
	core := zapcore.NewCore(encoder(), zapcore.AddSync(logWriter), level)
	return zap.New(core, opts...).Named(module)
}

// ParseLevel converts a textual level (debug, info, warn, error) to an atomic level.
// Empty string yields the fallback.
func ParseLevel(text string, fallback zapcore.Level) (zap.AtomicLevel, error) {
	if text == "" {
		return zap.NewAtomicLevelAt(fallback), nil
	}
	lvl, err := zap.ParseAtomicLevel(text)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("parse log level %q: %w", text, err)
	}
	return lvl, nil
}
