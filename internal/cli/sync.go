package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/qc/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy QC install dates into Forecast_Log",
		Long: `Set Forecast_Log.actual_install from qc_log for every row matching on
project, builder and lot number. When a lot was inspected more than once the
newest QC entry wins. Safe to re-run; rows already up to date are not counted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *wire.Container) error {
				ctx := cmd.Context()
				if err := c.EnsureSchema(ctx); err != nil {
					return err
				}
				adapter, err := c.SyncAdapter(ctx, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				_, err = adapter.Reconcile(ctx)
				return err
			})
		},
	}
}
