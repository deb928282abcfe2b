package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/internal/server"
	"github.com/matzehuels/slabtower/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve exposes analysis, stored reports and the robots simulation as a JSON
API. The server shares the configured cache and report store with the CLI.

  POST /v1/analyze            snapshot in the body
  GET  /v1/reports[/{id}]
  POST /v1/robots/safety      robots in the body
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			ctx := cmd.Context()
			runner, closeRunner, err := c.newRunner(ctx, false, true)
			if err != nil {
				return err
			}
			defer closeRunner()

			srv := server.New(runner,
				server.WithMaxBody(c.Config.Server.MaxBody),
				server.WithRobotsDefaults(pipeline.RobotsOptions{
					Width:   c.Config.Robots.Width,
					Height:  c.Config.Robots.Height,
					Seconds: c.Config.Robots.Seconds,
				}),
			)
			printInfo("Listening on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
