package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tasknote/internal/adapters/editor"
	"tasknote/internal/adapters/filesystem"
	"tasknote/internal/adapters/markdown"
	"tasknote/internal/adapters/tui"
	"tasknote/internal/config"
	"tasknote/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the log file is closed on every path
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The alt screen owns stdout, so logs go to a file or nowhere.
	logger, closer, err := logging.NewFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format, "tasknote")
	if err != nil {
		return err
	}
	defer closer.Close()

	// Initialize adapters
	repo := filesystem.NewRepository(cfg.Notes.Dir)
	renderer, err := markdown.NewRenderer(cfg.Render.CacheSize, logger)
	if err != nil {
		return err
	}
	editorOpener := editor.NewOpener(cfg.Editor)

	logger.Info("starting", "notes", repo.Root())

	// Create and run TUI app
	app := tui.NewApp(repo, renderer, editorOpener, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		return err
	}
	return nil
}
