package logger

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Interface is the logging contract injected into use cases, handlers and
// infrastructure services. The *w variants take alternating key/value pairs.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type slogLogger struct {
	logger *slog.Logger
}

func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

func (l *slogLogger) Debug(msg string, args ...any) { logCaller(l.logger, slog.LevelDebug, msg, args) }
func (l *slogLogger) Info(msg string, args ...any)  { logCaller(l.logger, slog.LevelInfo, msg, args) }
func (l *slogLogger) Warn(msg string, args ...any)  { logCaller(l.logger, slog.LevelWarn, msg, args) }
func (l *slogLogger) Error(msg string, args ...any) { logCaller(l.logger, slog.LevelError, msg, args) }

func (l *slogLogger) With(args ...any) Interface {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Named(name string) Interface {
	return &slogLogger{logger: l.logger.With("logger", name)}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...any) {
	logCaller(l.logger, slog.LevelDebug, msg, keysAndValues)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...any) {
	logCaller(l.logger, slog.LevelInfo, msg, keysAndValues)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...any) {
	logCaller(l.logger, slog.LevelWarn, msg, keysAndValues)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...any) {
	logCaller(l.logger, slog.LevelError, msg, keysAndValues)
}

// logCaller stamps the record with the PC of the wrapper's caller.
func logCaller(l *slog.Logger, level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip runtime.Callers, logCaller and the wrapper
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}

// NewNopLogger discards everything; used by tests.
func NewNopLogger() Interface {
	return &nopLogger{}
}

type nopLogger struct{}

func (n *nopLogger) Debug(string, ...any)         {}
func (n *nopLogger) Info(string, ...any)          {}
func (n *nopLogger) Warn(string, ...any)          {}
func (n *nopLogger) Error(string, ...any)         {}
func (n *nopLogger) With(...any) Interface        { return n }
func (n *nopLogger) Named(string) Interface       { return n }
func (n *nopLogger) Debugw(string, ...any)        {}
func (n *nopLogger) Infow(string, ...any)         {}
func (n *nopLogger) Warnw(string, ...any)         {}
func (n *nopLogger) Errorw(string, ...any)        {}
