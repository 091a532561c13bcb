package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/qc/internal/ports/primary"
	"github.com/example/qc/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Manage the QC log",
		Long:  "Add, list and export rows of the qc_log table",
	}

	cmd.AddCommand(logAddCmd())
	cmd.AddCommand(logListCmd())
	cmd.AddCommand(logExportCmd())
	return cmd
}

func logAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a QC install without generating a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := primary.SaveEntryRequest{}
			req.Project, _ = cmd.Flags().GetString("project")
			req.Builder, _ = cmd.Flags().GetString("builder")
			req.LotNumber, _ = cmd.Flags().GetString("lot")
			req.InstallDate, _ = cmd.Flags().GetString("install-date")
			req.SubmittedBy, _ = cmd.Flags().GetString("by")

			return withContainer(cmd, func(c *wire.Container) error {
				ctx := cmd.Context()
				if err := c.EnsureSchema(ctx); err != nil {
					return err
				}
				adapter, err := c.QCLogAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return adapter.Add(ctx, req)
			})
		},
	}

	cmd.Flags().StringP("project", "p", "", "Project name")
	cmd.Flags().StringP("builder", "b", "", "Builder name")
	cmd.Flags().StringP("lot", "l", "", "Lot number")
	cmd.Flags().StringP("install-date", "d", "", "Install date (YYYY-MM-DD)")
	cmd.Flags().String("by", "", "Who performed the QC")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("builder")
	_ = cmd.MarkFlagRequired("lot")
	_ = cmd.MarkFlagRequired("install-date")
	return cmd
}

func logListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List QC log rows, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *wire.Container) error {
				adapter, err := c.QCLogAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				_, err = adapter.List(cmd.Context())
				return err
			})
		},
	}
}

func logExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.xlsx]",
		Short: "Export the QC log to a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *wire.Container) error {
				adapter, err := c.QCLogAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return adapter.Export(cmd.Context(), args[0])
			})
		},
	}
}
