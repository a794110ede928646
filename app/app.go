package app

import (
	"log/slog"

	"note-app/config"
	"note-app/services"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Config *config.Config
	Notes  *services.NoteService
	Logger *slog.Logger
}

// New creates a new App instance with all dependencies
func New(cfg *config.Config, notes *services.NoteService, logger *slog.Logger) *App {
	return &App{
		Config: cfg,
		Notes:  notes,
		Logger: logger,
	}
}
