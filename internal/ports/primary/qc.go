// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI calls into.
package primary

import (
	"context"
	"io"

	"github.com/example/qc/internal/core/submission"
)

// SubmissionService defines the primary port for the intake-to-report flow.
type SubmissionService interface {
	// Submit validates, renders, emails, archives and logs one submission.
	// Email and archive failures are reported in the response, not as an error.
	Submit(ctx context.Context, s *submission.Submission) (*SubmitResponse, error)

	// Preview renders the report for a submission to w without any other side effect.
	Preview(ctx context.Context, s *submission.Submission, w io.Writer) error
}

// SubmitResponse contains the outcome of a submission.
type SubmitResponse struct {
	SubmissionID string
	ReportBytes  int
	Emailed      bool
	EmailError   error
	ArchiveURL   string
	ArchiveError error
	Logged       bool
}

// QCLogService defines the primary port for QC log operations.
type QCLogService interface {
	// EnsureSchema creates the qc_log table if needed. Safe to call repeatedly.
	EnsureSchema(ctx context.Context) error

	// SaveEntry appends one row to the QC log.
	SaveEntry(ctx context.Context, req SaveEntryRequest) error

	// ListEntries returns every QC log row, oldest first.
	ListEntries(ctx context.Context) ([]*QCLogEntry, error)

	// Export writes the QC log as a spreadsheet to w and returns the row count.
	Export(ctx context.Context, w io.Writer) (int, error)
}

// SaveEntryRequest contains parameters for saving a QC log entry.
type SaveEntryRequest struct {
	Project     string
	Builder     string
	LotNumber   string
	InstallDate string
	SubmittedBy string
}

// QCLogEntry represents a QC log row at the port boundary.
type QCLogEntry struct {
	ID          int64
	Project     string
	Builder     string
	LotNumber   string
	InstallDate string
	SubmittedBy string
	Timestamp   string
}

// ForecastSyncService defines the primary port for reconciling QC dates into Forecast_Log.
type ForecastSyncService interface {
	// Reconcile applies QC install dates to matching forecast rows.
	Reconcile(ctx context.Context) (*SyncResponse, error)
}

// SyncResponse reports a reconciliation run.
// Updated counts QC rows that caused at least one forecast write.
type SyncResponse struct {
	Scanned           int
	Candidates        int
	Updated           int
	ForecastRowsWrote int64
}
