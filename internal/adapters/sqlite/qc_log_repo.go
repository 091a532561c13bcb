// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/qc/internal/db"
	"github.com/example/qc/internal/ports/secondary"
)

// QCLogRepository implements secondary.QCLogRepository with SQLite.
type QCLogRepository struct {
	db *sql.DB
}

// NewQCLogRepository creates a new SQLite QC log repository.
func NewQCLogRepository(db *sql.DB) *QCLogRepository {
	return &QCLogRepository{db: db}
}

// EnsureSchema creates the qc_log table if it does not exist.
func (r *QCLogRepository) EnsureSchema(ctx context.Context) error {
	return db.EnsureSchema(ctx, r.db)
}

// Append inserts a new QC log row.
func (r *QCLogRepository) Append(ctx context.Context, record *secondary.QCLogRecord) error {
	var submittedBy sql.NullString
	if record.SubmittedBy != "" {
		submittedBy = sql.NullString{String: record.SubmittedBy, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO qc_log (project, builder, lot_number, install_date, submitted_by) VALUES (?, ?, ?, ?, ?)",
		record.Project, record.Builder, record.LotNumber, record.InstallDate, submittedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save qc entry: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	}

	return nil
}

// List retrieves every QC log row, oldest first.
func (r *QCLogRepository) List(ctx context.Context) ([]*secondary.QCLogRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project, builder, lot_number, install_date, submitted_by, COALESCE(timestamp, '')
		FROM qc_log ORDER BY timestamp ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list qc entries: %w", err)
	}
	defer rows.Close()

	var records []*secondary.QCLogRecord
	for rows.Next() {
		var submittedBy sql.NullString

		record := &secondary.QCLogRecord{}
		err := rows.Scan(&record.ID, &record.Project, &record.Builder, &record.LotNumber,
			&record.InstallDate, &submittedBy, &record.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qc entry: %w", err)
		}
		record.SubmittedBy = submittedBy.String

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list qc entries: %w", err)
	}

	return records, nil
}

// Ensure QCLogRepository implements the interface
var _ secondary.QCLogRepository = (*QCLogRepository)(nil)
