package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"note-app/services"
)

// Dispatch runs one user action against the note service and logs its outcome.
// Expected user errors are logged as warnings, anything else as errors.
func (a *App) Dispatch(action string, fn func(*services.NoteService) error, attrs ...slog.Attr) error {
	start := time.Now()
	actionID := uuid.New().String()

	err := fn(a.Notes)

	logAttrs := append([]slog.Attr{
		slog.String("action_id", actionID),
		slog.String("action", action),
		slog.Duration("latency", time.Since(start)),
	}, attrs...)

	switch {
	case err == nil:
		a.Logger.LogAttrs(context.Background(), slog.LevelInfo, "action completed", logAttrs...)
	case services.IsUserError(err):
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
		a.Logger.LogAttrs(context.Background(), slog.LevelWarn, "action rejected", logAttrs...)
	default:
		logAttrs = append(logAttrs, slog.String("error", err.Error()))
		a.Logger.LogAttrs(context.Background(), slog.LevelError, "action failed", logAttrs...)
	}

	return err
}
