package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/qc/internal/cli"
	"github.com/example/qc/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "qc",
		Short:   "QC - Garage door quality-control intake",
		Version: version.String(),
		Long: `QC turns a garage door inspection into a PDF report, emails it to the office
and records the install in the qc_log table shared with the forecasting app.
"qc sync" copies those install dates into Forecast_Log.`,
		SilenceUsage: true,
	}
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SubmitCmd())
	rootCmd.AddCommand(cli.RenderCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.SyncCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
