package logger

import (
	"log/slog"
	"time"
)

// LogStore logs score store operations
func LogStore(op string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", "store"),
		slog.String("op", op),
		slog.Duration("took", duration),
	}

	if err != nil {
		slog.Error("Store operation failed", append(attrs, slog.Any("error", err))...)
	} else {
		slog.Info("Store operation completed", attrs...)
	}
}

// LogSystem logs system events
func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

// LogError logs error events
func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}
