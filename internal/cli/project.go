package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/brick"
	"github.com/matzehuels/slabtower/pkg/render/projection"
)

// projectCommand creates the project command: a text side view.
func (c *CLI) projectCommand() *cobra.Command {
	var (
		axis string
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "project FILE",
		Short: "Print a text side view of the stack",
		Long: `Project prints the stack as seen along one horizontal axis. Each brick is
shown by its letter (A for the first line of the snapshot), '?' marks a
cell where several bricks hide behind each other.

By default the stack is settled first; --raw shows the snapshot as given.`,
		Example: `  slabtower project snapshot.txt --axis y
  slabtower project snapshot.txt --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ax, err := parseAxis(axis)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			runner, closeRunner, err := c.newRunner(ctx, true, false)
			if err != nil {
				return err
			}
			defer closeRunner()

			var bricks []brick.Brick
			if raw {
				bricks, err = runner.Parse(ctx, input)
			} else {
				res, perr := runner.Prepare(ctx, input)
				if perr == nil {
					bricks = res.Bricks
				}
				err = perr
			}
			if err != nil {
				return err
			}

			view, err := projection.Project(bricks, ax)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := view.Render(&buf); err != nil {
				return err
			}
			return writeOutput(cmd, "", buf.Bytes())
		},
	}

	cmd.Flags().StringVar(&axis, "axis", "x", "horizontal axis shown left to right: x or y")
	cmd.Flags().BoolVar(&raw, "raw", false, "show the snapshot before settling")
	return cmd
}
