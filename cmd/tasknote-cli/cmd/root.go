package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasknote/internal/adapters/filesystem"
	"tasknote/internal/adapters/markdown"
	"tasknote/internal/config"
	"tasknote/internal/logging"
	"tasknote/internal/ports"
)

var (
	configPath string
	notesDir   string

	cfg    *config.Config
	repo   ports.NoteRepository
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tasknote-cli",
	Short: "CLI for Markdown checklists",
	Long: `tasknote-cli works with the task lists of Markdown notes kept in a
single notes directory.

It lists the directory, toggles tasks by their 0-based index, renders notes
to sanitized HTML, and keeps a SQLite index of checklist progress.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if notesDir != "" {
			cfg.Notes.Dir = notesDir
		}

		logger = logging.NewFromConfig(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format, "tasknote-cli")
		repo = filesystem.NewRepository(cfg.Notes.Dir)
		logger.Debug("notes directory", "root", repo.Root())
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&notesDir, "dir", "d", "", "path to the notes directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file")
}

// GetRepo returns the initialized repository
func GetRepo() ports.NoteRepository {
	return repo
}

// newRenderer builds the Markdown renderer from config
func newRenderer() (*markdown.Renderer, error) {
	return markdown.NewRenderer(cfg.Render.CacheSize, logger)
}
