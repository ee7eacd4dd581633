// Package logutil holds the process-wide zap logger.
package logutil

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxLogKeyType struct{}

var ctxLogKey = ctxLogKeyType{}

var global atomic.Pointer[zap.Logger]

func init() {
	global.Store(zap.NewNop())
}

// BgLogger returns the background logger. It is a no-op logger until
// InitLogger or ReplaceGlobal is called.
func BgLogger() *zap.Logger {
	return global.Load()
}

// ReplaceGlobal swaps the background logger and returns the previous one.
func ReplaceGlobal(l *zap.Logger) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return global.Swap(l)
}

// Logger gets the logger attached to ctx, or the background logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxLogKey).(*zap.Logger); ok {
			return l
		}
	}
	return BgLogger()
}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLogKey, l)
}

// InitLogger builds a console logger at the given level ("debug", "info",
// "warn", "error") and installs it as the background logger.
func InitLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel

	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	ReplaceGlobal(l)
	return l, nil
}
