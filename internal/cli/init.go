package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/qc/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the qc_log table",
		Long: `Create the qc_log table in the shared SQLite file if it does not exist.
Existing rows and the forecasting app's tables are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(c *wire.Container) error {
				adapter, err := c.QCLogAdapter(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return adapter.Init(cmd.Context(), c.Config().DBPath)
			})
		},
	}
}
