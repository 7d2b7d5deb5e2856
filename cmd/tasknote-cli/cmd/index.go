package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tasknote/internal/adapters/sqlite"
)

var fullSync bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain the checklist index",
	Long: `Maintain the SQLite index of checklist progress.

Examples:
  tasknote-cli index sync
  tasknote-cli index sync --full
  tasknote-cli index pending`,
}

var indexSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update the index from the notes directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := openIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		// Open already resets an index built for another directory or schema.
		run := idx.SyncIncremental
		if fullSync {
			run = idx.SyncFull
		}
		stats, err := run()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Scanned %d notes: %d added, %d updated, %d deleted (%s)\n",
			stats.FilesScanned, stats.NotesAdded, stats.NotesUpdated, stats.NotesDeleted, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

var indexPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List indexed notes with open tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := openIndex()
		if err != nil {
			return err
		}
		defer idx.Close()

		records, err := idx.Incomplete()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No open tasks")
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(out, "%s  %d/%d  %.0f%%\n", r.Path, r.Completed, r.Total, r.Progress())
		}
		return nil
	},
}

func openIndex() (*sqlite.Index, error) {
	idx := sqlite.NewIndex(cfg.Index.Path, logger)
	if err := idx.Open(cfg.Notes.Dir); err != nil {
		return nil, err
	}
	return idx, nil
}

func init() {
	indexSyncCmd.Flags().BoolVar(&fullSync, "full", false, "rebuild the index from scratch")

	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexSyncCmd)
	indexCmd.AddCommand(indexPendingCmd)
}
