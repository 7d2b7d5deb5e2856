package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasknote/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes and tasks",
	Long: `Search note names, titles and task labels.

Results are ranked by relevance using fuzzy matching.

Examples:
  tasknote-cli search milk
  tasknote-cli search groceries`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetRepo(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			if r.Line < 0 {
				fmt.Fprintf(out, "%s  %s\n", r.Name, r.MatchedText)
				continue
			}
			fmt.Fprintf(out, "%s:%d  %s\n", r.Name, r.Line+1, r.MatchedText)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
