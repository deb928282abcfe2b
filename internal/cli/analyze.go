package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/pipeline"
	"github.com/matzehuels/slabtower/pkg/report"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		format  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Count removable bricks and chain-reaction sizes",
		Long: `Analyze settles a snapshot and reports how many bricks can be disintegrated
without anything else falling, and the sum over all bricks of how many other
bricks would fall if that one were disintegrated.

Results are cached by input content; --refresh recomputes them and --save
stores the report so "slabtower reports" can find it again.`,
		Example: `  slabtower analyze snapshot.txt
  slabtower analyze snapshot.txt --detailed
  slabtower analyze snapshot.txt --format json --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			runner, closeRunner, err := c.newRunner(ctx, noCache, opts.Save)
			if err != nil {
				return err
			}
			defer closeRunner()

			rep, cached, err := runner.Analyze(ctx, input, c.pipelineOptions(opts))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != pipeline.FormatTable {
				return report.Encode(out, rep, format)
			}
			if err := writeReportTable(out, rep); err != nil {
				return err
			}
			printStats([]string{
				fmt.Sprintf("%d bricks", rep.BrickCount),
				fmt.Sprintf("%d removable", rep.Removable),
				fmt.Sprintf("%d would fall", rep.CascadeSum),
			}, cached)
			if opts.Save {
				printSuccess("Saved report %s", StyleHighlight.Render(rep.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatTable, "output format: table, json, yaml")
	cmd.Flags().BoolVarP(&opts.Detailed, "detailed", "d", false, "include a per-brick breakdown")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "persist the report in the configured store")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	return cmd
}
