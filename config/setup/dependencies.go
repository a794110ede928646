package setup

import (
	"log/slog"

	"note-app/app"
	"note-app/config"
	"note-app/database"
	"note-app/pkg/clipboard"
	"note-app/services"
)

// InitDatabase opens the backing store and ensures the schema exists
func InitDatabase(cfg *config.Config, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(cfg.DB)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", "driver", cfg.DB.Driver, "target", cfg.DB.Redacted())
	return db, nil
}

// InitApp initializes the application with all dependencies
func InitApp(cfg *config.Config, db *database.DB, logger *slog.Logger) *app.App {
	repo := database.NewRepository(db)

	var clip services.Clipboard = clipboard.System{}
	if !clipboard.Available() {
		logger.Warn("system clipboard unavailable, using in-memory clipboard")
		clip = &clipboard.Memory{}
	}

	notes := services.NewNoteService(repo, clip, logger)

	application := app.New(cfg, notes, logger)
	logger.Info("application initialized", "page_size", cfg.PageSize)

	return application
}

// Shutdown releases the backing store connection
func Shutdown(db *database.DB, logger *slog.Logger) {
	logger.Info("shutting down...")

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Info("database closed")
	}
}
