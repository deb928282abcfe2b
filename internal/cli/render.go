package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/render/nodelink"
	"github.com/matzehuels/slabtower/pkg/render/tower"
)

const (
	renderFormatSVG  = "svg"
	renderFormatJSON = "json"
	renderFormatDOT  = "dot"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string
	axis     string
	format   string
	cellSize float64
	static   bool
}

// renderCommand creates the render command: an SVG side view of the
// settled stack.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{axis: "x", cellSize: tower.DefaultCellSize}

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw the settled stack as an SVG side view",
		Long: `Render settles a snapshot and draws it as seen along one horizontal axis.
Removable bricks are green, bricks that hold others up alone are orange.
Hovering a brick in a browser highlights the bricks it rests on.

With --format json the computed block positions are written instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := parseAxis(opts.axis)
			if err != nil {
				return err
			}
			format := formatFromOutput(opts.output, opts.format, renderFormatSVG)
			if format != renderFormatSVG && format != renderFormatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown render format %q (want svg or json)", format)
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

			res, err := runner.Prepare(ctx, input)
			if err != nil {
				return err
			}
			sum, err := runner.Query(ctx, res)
			if err != nil {
				return err
			}
			l, err := tower.Build(res, sum, axis, tower.WithCellSize(opts.cellSize))
			if err != nil {
				return err
			}

			if format == renderFormatJSON {
				data, err := json.MarshalIndent(l, "", "  ")
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
				}
				return writeOutput(cmd, opts.output, append(data, '\n'))
			}
			var ropts []tower.RenderOption
			if opts.static {
				ropts = append(ropts, tower.WithoutInteraction())
			}
			return writeOutput(cmd, opts.output, tower.RenderSVG(l, ropts...))
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.axis, "axis", opts.axis, "horizontal axis shown left to right: x or y")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg or json (default from --output extension)")
	cmd.Flags().Float64Var(&opts.cellSize, "cell", opts.cellSize, "cell size in pixels")
	cmd.Flags().BoolVar(&opts.static, "static", false, "omit the hover script")
	return cmd
}

// graphCommand creates the graph command: the support graph as DOT or SVG.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Draw the support graph (DOT or SVG)",
		Long: `Graph settles a snapshot and draws which bricks rest on which. Bricks on
the ground have a double border; bricks that hold another brick up alone are
filled. The format follows the --output extension (.svg or .dot) unless
--format is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := formatFromOutput(output, format, renderFormatDOT)
			if format != renderFormatDOT && format != renderFormatSVG {
				return errors.New(errors.ErrCodeInvalidFormat, "unknown graph format %q (want dot or svg)", format)
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

			res, err := runner.Prepare(ctx, input)
			if err != nil {
				return err
			}
			sum, err := runner.Query(ctx, res)
			if err != nil {
				return err
			}

			dot := nodelink.ToDOT(res.Graph, sum, nodelink.Options{Detailed: detailed})
			if format == renderFormatDOT {
				return writeOutput(cmd, output, []byte(dot))
			}
			svg, err := nodelink.RenderSVG(ctx, dot)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, svg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: dot or svg")
	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "show heights and cascade sizes in labels")
	return cmd
}

// formatFromOutput picks the explicit format, else the output file's
// extension, else def.
func formatFromOutput(output, explicit, def string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return def
}
