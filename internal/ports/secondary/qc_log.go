package secondary

import (
	"context"
	"io"
)

// QCLogRecord represents a qc_log row as stored in persistence.
type QCLogRecord struct {
	ID          int64
	Project     string
	Builder     string
	LotNumber   string
	InstallDate string
	SubmittedBy string // Empty string means null
	Timestamp   string
}

// QCLogRepository defines the secondary port for the append-only QC log.
type QCLogRepository interface {
	// EnsureSchema creates the qc_log table if it does not exist.
	EnsureSchema(ctx context.Context) error

	// Append inserts a new row. ID and Timestamp are assigned by the store.
	Append(ctx context.Context, record *QCLogRecord) error

	// List retrieves every row, oldest first (timestamp, then id).
	List(ctx context.Context) ([]*QCLogRecord, error)
}

// QCLogExporter writes QC log rows in a spreadsheet format.
type QCLogExporter interface {
	Export(ctx context.Context, w io.Writer, records []*QCLogRecord) error
}
