package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/brick"
)

// settleCommand creates the settle command: drop every brick and print the
// resting snapshot.
func (c *CLI) settleCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "settle FILE",
		Short: "Drop every brick and print the settled snapshot",
		Long: `Settle reads a snapshot (one brick per line, x,y,z~x,y,z) and lets every
brick fall until it rests on the ground or on another brick. The result is
printed in the same notation. Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			prog := newProgress(loggerFromContext(ctx))
			res, err := runner.Prepare(ctx, input)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Settled %d bricks, %d moved", len(res.Bricks), res.Moved))

			var buf bytes.Buffer
			if err := brick.Format(&buf, res.Bricks); err != nil {
				return err
			}
			if err := writeOutput(cmd, output, buf.Bytes()); err != nil {
				return err
			}
			if output != "" {
				printNextStep("Analyze it", appName+" analyze "+output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the settled snapshot to a file")
	return cmd
}
