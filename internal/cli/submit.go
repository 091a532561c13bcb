package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/qc/internal/adapters/intake"
	"github.com/example/qc/internal/ports/secondary"
	"github.com/example/qc/internal/wire"
)

// SubmitCmd returns the submit command
func SubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit [file.yaml]",
		Short: "Generate, email and log a QC report",
		Long: `Read a QC submission file, render the PDF report, email it as ` + secondary.ReportFilename + `
and record the install in qc_log.

All six photos are required. A failed email is reported but the QC entry is
still saved.

Examples:
  qc submit lot-57.yaml
  qc submit --verbose lot-57.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := intake.NewLoader().LoadFile(args[0])
			if err != nil {
				return err
			}

			return withContainer(cmd, func(c *wire.Container) error {
				ctx := cmd.Context()
				adapter, err := c.SubmissionAdapter(ctx, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if err := c.EnsureSchema(ctx); err != nil {
					return fmt.Errorf("failed to prepare qc_log: %w", err)
				}
				_, err = adapter.Submit(ctx, sub)
				return err
			})
		},
	}
}

// RenderCmd returns the render command
func RenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file.yaml]",
		Short: "Render a QC report to a PDF file without sending it",
		Long: `Render the PDF report for a submission file. Nothing is emailed or logged,
and missing photos are simply left out of the report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

			sub, err := intake.NewLoader().LoadFile(args[0])
			if err != nil {
				return err
			}

			return withContainer(cmd, func(c *wire.Container) error {
				return c.PreviewAdapter(cmd.OutOrStdout()).Render(cmd.Context(), sub, out)
			})
		},
	}

	cmd.Flags().StringP("out", "o", secondary.ReportFilename, "Output PDF path")
	return cmd
}
