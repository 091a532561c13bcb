package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/qc/internal/ports/primary"
	"github.com/example/qc/internal/ports/secondary"
)

// QCLogServiceImpl implements the QCLogService interface.
type QCLogServiceImpl struct {
	repo     secondary.QCLogRepository
	exporter secondary.QCLogExporter
}

// NewQCLogService creates a new QCLogService with injected dependencies.
func NewQCLogService(repo secondary.QCLogRepository, exporter secondary.QCLogExporter) *QCLogServiceImpl {
	return &QCLogServiceImpl{
		repo:     repo,
		exporter: exporter,
	}
}

// EnsureSchema creates the qc_log table if needed.
func (s *QCLogServiceImpl) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureSchema(ctx)
}

// SaveEntry appends one row to the QC log.
func (s *QCLogServiceImpl) SaveEntry(ctx context.Context, req primary.SaveEntryRequest) error {
	var blank []string
	for _, f := range []struct{ name, value string }{
		{"project", req.Project},
		{"builder", req.Builder},
		{"lot number", req.LotNumber},
		{"install date", req.InstallDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			blank = append(blank, f.name)
		}
	}
	if len(blank) > 0 {
		return fmt.Errorf("qc entry is missing required fields: %s", strings.Join(blank, ", "))
	}

	return s.repo.Append(ctx, &secondary.QCLogRecord{
		Project:     req.Project,
		Builder:     req.Builder,
		LotNumber:   req.LotNumber,
		InstallDate: req.InstallDate,
		SubmittedBy: req.SubmittedBy,
	})
}

// ListEntries returns every QC log row, oldest first.
func (s *QCLogServiceImpl) ListEntries(ctx context.Context) ([]*primary.QCLogEntry, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list qc entries: %w", err)
	}

	entries := make([]*primary.QCLogEntry, len(records))
	for i, r := range records {
		entries[i] = s.recordToEntry(r)
	}
	return entries, nil
}

// Export writes the QC log as a spreadsheet.
func (s *QCLogServiceImpl) Export(ctx context.Context, w io.Writer) (int, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list qc entries: %w", err)
	}
	if err := s.exporter.Export(ctx, w, records); err != nil {
		return 0, fmt.Errorf("failed to export qc log: %w", err)
	}
	return len(records), nil
}

// Helper methods

func (s *QCLogServiceImpl) recordToEntry(r *secondary.QCLogRecord) *primary.QCLogEntry {
	return &primary.QCLogEntry{
		ID:          r.ID,
		Project:     r.Project,
		Builder:     r.Builder,
		LotNumber:   r.LotNumber,
		InstallDate: r.InstallDate,
		SubmittedBy: r.SubmittedBy,
		Timestamp:   r.Timestamp,
	}
}

// Ensure QCLogServiceImpl implements the interface.
var _ primary.QCLogService = (*QCLogServiceImpl)(nil)
