package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/pipeline"
	"github.com/matzehuels/slabtower/pkg/robots"
)

// robotsCommand creates the robots command.
func (c *CLI) robotsCommand() *cobra.Command {
	var (
		opts    pipeline.RobotsOptions
		show    bool
		jsonOut bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "robots FILE",
		Short: "Simulate wrapping robots and compute the safety factor",
		Long: `Robots reads one robot per line (p=x,y v=dx,dy), moves every robot for the
given number of seconds on a floor that wraps at its edges, and multiplies
the robot counts of the four quadrants. Robots on the middle row or column
do not count.

--easter-egg also searches every distinct layout for the first second with
the lowest safety factor, where the robots cluster into a picture.
Width and height default to the config file, then to the smallest floor
holding every starting position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("seconds") {
				opts.Seconds = c.Config.Robots.Seconds
			}
			if !flags.Changed("width") {
				opts.Width = c.Config.Robots.Width
			}
			if !flags.Changed("height") {
				opts.Height = c.Config.Robots.Height
			}

			ctx := cmd.Context()
			input, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			runner, closeRunner, err := c.newRunner(ctx, noCache, false)
			if err != nil {
				return err
			}
			defer closeRunner()

			var sp *spinner
			if opts.EasterEgg {
				sp = newSpinner(ctx, cmd.ErrOrStderr(), "Searching for the easter egg...")
				sp.start()
			}
			res, cached, err := runner.Robots(ctx, input, opts)
			if sp != nil {
				if err != nil {
					sp.fail("Easter egg search failed")
				} else {
					sp.succeed("Easter egg at %d s", res.EasterEgg)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			printKeyValue("Robots", fmt.Sprint(res.Robots))
			printKeyValue("Space", res.Space.String())
			printKeyValue("Seconds", fmt.Sprint(res.Seconds))
			printKeyValue("Quadrants", fmt.Sprint(res.Quadrants))
			printKeyValue("Safety", StyleNumber.Render(fmt.Sprint(res.SafetyFactor)))
			if res.EasterEgg >= 0 {
				printKeyValue("Easter egg", StyleNumber.Render(fmt.Sprintf("%d s", res.EasterEgg)))
			}
			printStats(nil, cached)

			if !show {
				return nil
			}
			at := res.Seconds
			if res.EasterEgg >= 0 {
				at = res.EasterEgg
			}
			list, err := robots.ParseAll(bytes.NewReader(input))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "reparse robots")
			}
			fmt.Fprintln(out)
			return robots.Render(out, list, res.Space, at)
		},
	}

	f := cmd.Flags()
	f.Int64Var(&opts.Seconds, "seconds", 100, "seconds to simulate")
	f.Int64Var(&opts.Width, "width", 0, "floor width (0 infers it)")
	f.Int64Var(&opts.Height, "height", 0, "floor height (0 infers it)")
	f.BoolVar(&opts.EasterEgg, "easter-egg", false, "search for the most clustered second")
	f.BoolVar(&show, "show", false, "draw the floor at --seconds, or at the easter egg")
	f.BoolVar(&jsonOut, "json", false, "print the result as JSON")
	f.BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
