// Package logging carries a zap logger through a context.
package logging

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

// New returns a console logger writing to w. Verbose enables debug
// messages; otherwise only warnings and errors are written.
func New(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        "logger",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)).Named("tid")
}

// WithLogger returns a context carrying log.
func WithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Get returns the context's logger, or a no-op logger.
func Get(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

// With returns a context whose logger carries fields.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}
