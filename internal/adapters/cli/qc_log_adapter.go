package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/example/qc/internal/ports/primary"
)

// QCLogAdapter translates CLI operations to QCLogService and ForecastSyncService calls.
type QCLogAdapter struct {
	service primary.QCLogService
	out     io.Writer
}

// NewQCLogAdapter creates a new QCLogAdapter with the given service.
func NewQCLogAdapter(service primary.QCLogService, out io.Writer) *QCLogAdapter {
	return &QCLogAdapter{
		service: service,
		out:     out,
	}
}

// Init creates the qc_log table.
func (a *QCLogAdapter) Init(ctx context.Context, dbPath string) error {
	if err := a.service.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	fmt.Fprintf(a.out, "%s qc_log ready in %s\n", okMark, dbPath)
	return nil
}

// Add saves one entry.
func (a *QCLogAdapter) Add(ctx context.Context, req primary.SaveEntryRequest) error {
	if err := a.service.SaveEntry(ctx, req); err != nil {
		return fmt.Errorf("failed to save qc entry: %w", err)
	}
	fmt.Fprintf(a.out, "%s Saved QC entry for %s / %s lot %s (installed %s)\n",
		okMark, req.Project, req.Builder, req.LotNumber, req.InstallDate)
	return nil
}

// List prints every entry as a table.
func (a *QCLogAdapter) List(ctx context.Context) ([]*primary.QCLogEntry, error) {
	entries, err := a.service.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No QC entries found.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tBUILDER\tLOT\tINSTALLED\tBY\tLOGGED")
	fmt.Fprintln(w, "--\t-------\t-------\t---\t---------\t--\t------")

	for _, e := range entries {
		by := e.SubmittedBy
		if by == "" {
			by = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Project,
			e.Builder,
			e.LotNumber,
			e.InstallDate,
			by,
			e.Timestamp,
		)
	}

	w.Flush()
	return entries, nil
}

// Export writes the log as an .xlsx workbook at path.
func (a *QCLogAdapter) Export(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := a.service.Export(ctx, f)
	if err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "%s Exported %d QC entr%s to %s\n", okMark, n, plural(n, "y", "ies"), path)
	return nil
}

// SyncAdapter translates the sync command to ForecastSyncService calls.
type SyncAdapter struct {
	service primary.ForecastSyncService
	out     io.Writer
}

// NewSyncAdapter creates a new SyncAdapter with the given service.
func NewSyncAdapter(service primary.ForecastSyncService, out io.Writer) *SyncAdapter {
	return &SyncAdapter{
		service: service,
		out:     out,
	}
}

// Reconcile runs one sync and prints the count of updated QC rows.
func (a *SyncAdapter) Reconcile(ctx context.Context) (*primary.SyncResponse, error) {
	resp, err := a.service.Reconcile(ctx)
	if err != nil {
		if resp != nil && resp.Updated > 0 {
			fmt.Fprintf(a.out, "%s Sync stopped after %d update(s)\n", warnMark, resp.Updated)
		}
		return resp, fmt.Errorf("forecast sync failed: %w", err)
	}

	fmt.Fprintf(a.out, "%s Updated %d forecast record(s) from %d QC entr%s\n",
		okMark, resp.Updated, resp.Scanned, plural(resp.Scanned, "y", "ies"))
	return resp, nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
