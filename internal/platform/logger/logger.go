package logger

import (
	"context"
)

// Logger is the logging contract every service depends on. Keeping it an
// interface lets tests inject a no-op implementation and keeps the slog
// dependency out of the application layers.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}
