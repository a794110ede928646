package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"note-app/config"
	"note-app/config/setup"
	"note-app/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logFile, err := setup.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	db, err := setup.InitDatabase(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return fmt.Errorf("open database %s: %w", cfg.DB.Redacted(), err)
	}
	defer setup.Shutdown(db, logger)

	application := setup.InitApp(cfg, db, logger)

	logger.Info("starting ui", "env", cfg.Env)
	if _, err := tea.NewProgram(ui.New(application), tea.WithAltScreen()).Run(); err != nil {
		logger.Error("ui stopped with error", "error", err)
		return err
	}
	return nil
}
