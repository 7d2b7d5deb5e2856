package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tasknote/internal/application/commands"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <note> <index>",
	Short: "Flip the task at a 0-based index",
	Long: `Flip the checked state of one task of a note.

Tasks are numbered from 0 in document order, the same numbering the
data-task-index attribute of rendered HTML uses. Task lines inside the
frontmatter or fenced code blocks are not counted. An index past the last
task leaves the note untouched.

Examples:
  tasknote-cli toggle groceries.md 0
  tasknote-cli toggle work/sprint.md 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}

		result, err := commands.NewToggleCommand(GetRepo(), args[0], index).Execute(cmd.Context())
		if err != nil {
			return err
		}

		logger.Debug("toggle", "note", args[0], "index", index, "changed", result.Changed)
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var checkAllCmd = &cobra.Command{
	Use:   "check-all <note>",
	Short: "Check every task of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAll(cmd, args[0], true)
	},
}

var uncheckAllCmd = &cobra.Command{
	Use:   "uncheck-all <note>",
	Short: "Uncheck every task of a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAll(cmd, args[0], false)
	},
}

func setAll(cmd *cobra.Command, name string, checked bool) error {
	result, err := commands.NewSetAllCommand(GetRepo(), name, checked).Execute(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func init() {
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(checkAllCmd)
	rootCmd.AddCommand(uncheckAllCmd)
}
