package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/todotree/internal/diff"
)

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show how the to-do tree changed between two markdown files",
		Long: `Show how the to-do tree changed between two markdown files.

Both files are parsed and rendered in the selected format (tree by default)
before diffing, so edits to body text that leave the outline alone produce no
output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			result, err := diff.Generate(args[0], args[1], diff.Options{
				Format: a.outputFormat(),
				Plain:  a.plainOutput(out),
				Parse:  a.cfg.ParseOptions(),
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, result)
			return err
		},
	}
}
