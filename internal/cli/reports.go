package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/pipeline"
	"github.com/matzehuels/slabtower/pkg/report"
	"github.com/matzehuels/slabtower/pkg/store"
)

// reportsCommand creates the reports command for browsing saved reports.
func (c *CLI) reportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Browse reports saved with --save",
	}

	cmd.AddCommand(c.reportsListCommand())
	cmd.AddCommand(c.reportsGetCommand())

	return cmd
}

func (c *CLI) openStore(cmd *cobra.Command) (store.Store, error) {
	st, err := c.newStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "report storage is disabled (store.backend = %q)", c.Config.Store.Backend)
	}
	return st, nil
}

func (c *CLI) reportsListCommand() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			reports, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch format {
			case pipeline.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(reports)
			case pipeline.FormatYAML:
				for _, r := range reports {
					if _, err := out.Write([]byte("---\n")); err != nil {
						return err
					}
					if err := report.Encode(out, r, report.FormatYAML); err != nil {
						return err
					}
				}
				return nil
			}
			if len(reports) == 0 {
				printInfo("No saved reports")
				return nil
			}
			return writeReportList(out, reports)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of reports")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatTable, "output format: table, json, yaml")
	return cmd
}

func (c *CLI) reportsGetCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			rep, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == pipeline.FormatTable {
				return writeReportTable(cmd.OutOrStdout(), rep)
			}
			return report.Encode(cmd.OutOrStdout(), rep, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatTable, "output format: table, json, yaml")
	return cmd
}
