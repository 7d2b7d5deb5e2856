package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasknote/internal/application/commands"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the notes directory",
	Long: `List every entry of the notes directory, one name per line.

If the directory cannot be read, a diagnostic is printed on standard output
and the command still exits with status 0.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		entries, err := commands.NewListEntriesCommand(GetRepo()).Execute(cmd.Context())
		if err != nil {
			logger.Debug("list failed", "err", err)
			fmt.Fprintf(out, "Unable to scan directory: %v\n", err)
			return nil
		}

		for _, e := range entries {
			fmt.Fprintln(out, e.Name)
		}
		return nil
	},
}

var incompleteOnly bool

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List notes with their checklist progress",
	Long: `List every Markdown note under the notes directory with its checklist
progress.

Examples:
  tasknote-cli notes
  tasknote-cli notes --incomplete`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := commands.NewListNotesCommand(GetRepo(), incompleteOnly).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, n := range notes {
			s := n.Stats()
			fmt.Fprintf(out, "%s  %d/%d", n.Name, s.Completed, s.Total)
			if n.Title != "" {
				fmt.Fprintf(out, "  %s", n.Title)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	notesCmd.Flags().BoolVarP(&incompleteOnly, "incomplete", "i", false, "only notes with open tasks")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(notesCmd)
}
