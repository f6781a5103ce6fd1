package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ShortStringer is implemented by identifiers that have an abbreviated form for logs.
type ShortStringer interface {
	ShortString() string
}

type shortStringAdapter struct {
	val ShortStringer
}

func (a shortStringAdapter) String() string {
	return a.val.ShortString()
}

// ZShortStringer logs the abbreviated form of val.
func ZShortStringer(name string, val ShortStringer) zap.Field {
	return zap.Stringer(name, shortStringAdapter{val: val})
}

const maxErrorLen = 256

// TrimmedError logs an error cut to a bounded length. Remote services may return arbitrarily large bodies.
func TrimmedError(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	msg := err.Error()
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen] + "..."
	}
	return zap.String("error", msg)
}

// DebugField returns field only if the logger is at debug level, so expensive fields are not built otherwise.
func DebugField(logger *zap.Logger, build func() zap.Field) zap.Field {
	if logger.Core().Enabled(zapcore.DebugLevel) {
		return build()
	}
	return zap.Skip()
}
