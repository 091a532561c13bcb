package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/example/qc/internal/core/report"
	"github.com/example/qc/internal/core/submission"
	"github.com/example/qc/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement their interfaces
var (
	_ secondary.ReportRenderer     = (*mockRenderer)(nil)
	_ secondary.Mailer             = (*mockMailer)(nil)
	_ secondary.ReportArchive      = (*mockArchive)(nil)
	_ secondary.QCLogRepository    = (*mockQCLogRepository)(nil)
	_ secondary.QCLogExporter      = (*mockExporter)(nil)
	_ secondary.ForecastRepository = (*mockForecastRepository)(nil)
)

// mockRenderer implements secondary.ReportRenderer for testing.
type mockRenderer struct {
	output    []byte
	renderErr error
	calls     int
	lastDoc   report.Document
}

func newMockRenderer() *mockRenderer {
	return &mockRenderer{output: []byte("%PDF-1.3 mock report")}
}

func (m *mockRenderer) Render(ctx context.Context, w io.Writer, doc report.Document) error {
	m.calls++
	m.lastDoc = doc
	if m.renderErr != nil {
		return m.renderErr
	}
	_, err := w.Write(m.output)
	return err
}

// mockMailer implements secondary.Mailer for testing.
type mockMailer struct {
	sent    []secondary.MailMessage
	sendErr error
	calls   int
}

func newMockMailer() *mockMailer {
	return &mockMailer{}
}

func (m *mockMailer) Send(ctx context.Context, msg secondary.MailMessage) error {
	m.calls++
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// mockArchive implements secondary.ReportArchive for testing.
type mockArchive struct {
	objects map[string][]byte
	putErr  error
}

func newMockArchive() *mockArchive {
	return &mockArchive{objects: make(map[string][]byte)}
}

func (m *mockArchive) Put(ctx context.Context, key string, document []byte) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.objects[key] = document
	return "s3://reports-bucket/" + key, nil
}

// mockQCLogRepository implements secondary.QCLogRepository for testing.
type mockQCLogRepository struct {
	records   []*secondary.QCLogRecord
	nextID    int64
	appendErr error
	listErr   error
	ensured   int
}

func newMockQCLogRepository() *mockQCLogRepository {
	return &mockQCLogRepository{nextID: 1}
}

func (m *mockQCLogRepository) EnsureSchema(ctx context.Context) error {
	m.ensured++
	return nil
}

func (m *mockQCLogRepository) Append(ctx context.Context, record *secondary.QCLogRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	record.ID = m.nextID
	record.Timestamp = fmt.Sprintf("2025-09-10 08:00:%02d", m.nextID)
	m.nextID++
	m.records = append(m.records, record)
	return nil
}

func (m *mockQCLogRepository) List(ctx context.Context) ([]*secondary.QCLogRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.QCLogRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// mockExporter implements secondary.QCLogExporter for testing.
type mockExporter struct {
	exported  []*secondary.QCLogRecord
	exportErr error
}

func (m *mockExporter) Export(ctx context.Context, w io.Writer, records []*secondary.QCLogRecord) error {
	if m.exportErr != nil {
		return m.exportErr
	}
	m.exported = records
	_, err := io.WriteString(w, "xlsx")
	return err
}

// mockForecastRepository implements secondary.ForecastRepository as an
// in-memory Forecast_Log keyed by (project, builder, lot).
type mockForecastRepository struct {
	rows      map[secondary.ForecastKey][]*string
	updates   []secondary.ForecastKey
	failOnKey *secondary.ForecastKey
}

func newMockForecastRepository() *mockForecastRepository {
	return &mockForecastRepository{rows: make(map[secondary.ForecastKey][]*string)}
}

// addRow seeds one forecast row; actual may be nil.
func (m *mockForecastRepository) addRow(key secondary.ForecastKey, actual *string) {
	m.rows[key] = append(m.rows[key], actual)
}

func (m *mockForecastRepository) SetActualInstall(ctx context.Context, key secondary.ForecastKey, installDate string) (int64, error) {
	if m.failOnKey != nil && *m.failOnKey == key {
		return 0, errors.New("database is locked")
	}
	m.updates = append(m.updates, key)
	var n int64
	for i, actual := range m.rows[key] {
		if actual == nil || *actual != installDate {
			d := installDate
			m.rows[key][i] = &d
			n++
		}
	}
	return n, nil
}

func (m *mockForecastRepository) actuals(key secondary.ForecastKey) []string {
	var out []string
	for _, a := range m.rows[key] {
		if a == nil {
			out = append(out, "<nil>")
		} else {
			out = append(out, *a)
		}
	}
	sort.Strings(out)
	return out
}

// ============================================================================
// Fixtures
// ============================================================================

func testJob() submission.Job {
	return submission.Job{
		Project:       "TESORO",
		Builder:       "LENNAR",
		LotNumber:     "57",
		QCDate:        "2025-09-10",
		InstallDate:   "2025-09-06",
		InstallerName: "Joe",
		QCManager:     "Ana",
	}
}

// completeSubmission returns a submission with every photo slot filled.
func completeSubmission() *submission.Submission {
	s := submission.New(testJob())
	for _, slot := range submission.PhotoSlots {
		_ = s.SetPhoto(slot, []byte("jpeg:"+slot))
	}
	return s
}
