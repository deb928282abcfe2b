package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/buildinfo"
	"github.com/matzehuels/slabtower/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: the level from the config file (info unless set)
//   - With --verbose (-v): debug level, plus a debug line per pipeline stage
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Slabtower settles falling bricks and tells you which ones you can pull out",
		Long: `Slabtower reads a snapshot of falling sand bricks, lets every brick settle,
and works out which bricks can be removed safely and how many would fall
if each one were disintegrated.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			if c.verbose {
				observability.SetPipelineHooks(&debugHooks{logger: c.Logger})
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/slabtower/config.toml)")

	root.AddCommand(c.settleCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.robotsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.reportsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
