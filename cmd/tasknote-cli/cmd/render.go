package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasknote/internal/adapters/preview"
	"tasknote/internal/application/commands"
)

var (
	inlineImages bool
	openPreview  bool
)

var renderCmd = &cobra.Command{
	Use:   "render <note>",
	Short: "Render a note to sanitized HTML",
	Long: `Render a note to sanitized HTML on standard output.

Every task checkbox carries a data-task-index attribute matching the index
taken by the toggle command.

Examples:
  tasknote-cli render groceries.md
  tasknote-cli render trip.md --inline-images > trip.html
  tasknote-cli render trip.md --inline-images --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := newRenderer()
		if err != nil {
			return err
		}

		result, err := commands.NewRenderCommand(GetRepo(), renderer, args[0], inlineImages).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if openPreview {
			path, err := preview.NewOpener("").Open(result.Note.Name, result.HTML)
			if err != nil {
				return err
			}
			logger.Debug("preview written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), result.HTML)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <note>",
	Short: "Show the tasks and progress of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewStatsCommand(GetRepo(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s := result.Stats
		fmt.Fprintf(out, "%s: %d/%d done (%.0f%%)\n", result.Note.Name, s.Completed, s.Total, s.Progress)
		for _, t := range result.Tasks {
			box := "[ ]"
			if t.Checked {
				box = "[x]"
			}
			fmt.Fprintf(out, "%d  %s %s\n", t.Ordinal, box, t.Label)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&inlineImages, "inline-images", false, "embed local images as data URIs")
	renderCmd.Flags().BoolVar(&openPreview, "open", false, "open the HTML in the default browser instead of printing it")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(statsCmd)
}
