package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/qc/internal/core/submission"
	"github.com/example/qc/internal/ports/primary"
)

// mockSubmissionService implements primary.SubmissionService for testing
type mockSubmissionService struct {
	submitFn  func(ctx context.Context, s *submission.Submission) (*primary.SubmitResponse, error)
	previewFn func(ctx context.Context, s *submission.Submission, w io.Writer) error
}

func (m *mockSubmissionService) Submit(ctx context.Context, s *submission.Submission) (*primary.SubmitResponse, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, s)
	}
	return &primary.SubmitResponse{SubmissionID: "sub-1", ReportBytes: 2048, Emailed: true, Logged: true}, nil
}

func (m *mockSubmissionService) Preview(ctx context.Context, s *submission.Submission, w io.Writer) error {
	if m.previewFn != nil {
		return m.previewFn(ctx, s, w)
	}
	_, err := io.WriteString(w, "%PDF-1.3")
	return err
}

// mockQCLogService implements primary.QCLogService for testing
type mockQCLogService struct {
	entries []*primary.QCLogEntry
	saveErr error
	lastReq primary.SaveEntryRequest
	ensured bool
}

func (m *mockQCLogService) EnsureSchema(ctx context.Context) error {
	m.ensured = true
	return nil
}

func (m *mockQCLogService) SaveEntry(ctx context.Context, req primary.SaveEntryRequest) error {
	m.lastReq = req
	return m.saveErr
}

func (m *mockQCLogService) ListEntries(ctx context.Context) ([]*primary.QCLogEntry, error) {
	return m.entries, nil
}

func (m *mockQCLogService) Export(ctx context.Context, w io.Writer) (int, error) {
	_, err := io.WriteString(w, "PK")
	return len(m.entries), err
}

// mockForecastSyncService implements primary.ForecastSyncService for testing
type mockForecastSyncService struct {
	resp *primary.SyncResponse
	err  error
}

func (m *mockForecastSyncService) Reconcile(ctx context.Context) (*primary.SyncResponse, error) {
	return m.resp, m.err
}

func testSubmission() *submission.Submission {
	return submission.New(submission.Job{Project: "TESORO", Builder: "LENNAR", LotNumber: "57"})
}

func TestSubmissionAdapter_Submit_Success(t *testing.T) {
	var out bytes.Buffer
	adapter := NewSubmissionAdapter(&mockSubmissionService{}, &out)

	if _, err := adapter.Submit(context.Background(), testSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{"TESORO / LENNAR lot 57", "2048 bytes", "Report emailed", "submission sub-1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestSubmissionAdapter_Submit_EmailFailure(t *testing.T) {
	var out bytes.Buffer
	service := &mockSubmissionService{
		submitFn: func(ctx context.Context, s *submission.Submission) (*primary.SubmitResponse, error) {
			return &primary.SubmitResponse{
				SubmissionID: "sub-1",
				EmailError:   errors.New("status 401"),
				ArchiveError: errors.New("access denied"),
				Logged:       true,
			}, nil
		},
	}
	adapter := NewSubmissionAdapter(service, &out)

	if _, err := adapter.Submit(context.Background(), testSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "Email not sent: status 401") {
		t.Errorf("expected email failure in output, got: %s", output)
	}
	if !strings.Contains(output, "Archive failed: access denied") {
		t.Errorf("expected archive failure in output, got: %s", output)
	}
}

func TestSubmissionAdapter_Submit_Rejected(t *testing.T) {
	var out bytes.Buffer
	service := &mockSubmissionService{
		submitFn: func(ctx context.Context, s *submission.Submission) (*primary.SubmitResponse, error) {
			return nil, &submission.MissingPhotosError{Slots: []string{"Motor"}}
		},
	}
	adapter := NewSubmissionAdapter(service, &out)

	_, err := adapter.Submit(context.Background(), testSubmission())
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for rejected submission, got: %s", out.String())
	}
}

func TestSubmissionAdapter_Render(t *testing.T) {
	var out bytes.Buffer
	adapter := NewSubmissionAdapter(&mockSubmissionService{}, &out)
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := adapter.Render(context.Background(), testSubmission(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if string(data) != "%PDF-1.3" {
		t.Errorf("unexpected report contents %q", data)
	}
}

func TestSubmissionAdapter_Render_RemovesPartialFile(t *testing.T) {
	service := &mockSubmissionService{
		previewFn: func(ctx context.Context, s *submission.Submission, w io.Writer) error {
			return errors.New("corrupt image")
		},
	}
	adapter := NewSubmissionAdapter(service, &bytes.Buffer{})
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := adapter.Render(context.Background(), testSubmission(), path); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected partial report to be removed, stat err = %v", err)
	}
}

func TestQCLogAdapter_List_WithResults(t *testing.T) {
	var out bytes.Buffer
	service := &mockQCLogService{entries: []*primary.QCLogEntry{
		{ID: 1, Project: "TESORO", Builder: "LENNAR", LotNumber: "57", InstallDate: "2025-09-06", SubmittedBy: "Joe", Timestamp: "2025-09-10 08:00:00"},
		{ID: 2, Project: "TESORO", Builder: "PULTE", LotNumber: "12", InstallDate: "2025-09-07"},
	}}
	adapter := NewQCLogAdapter(service, &out)

	entries, err := adapter.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
	output := out.String()
	for _, want := range []string{"PROJECT", "LENNAR", "PULTE", "Joe"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestQCLogAdapter_List_Empty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewQCLogAdapter(&mockQCLogService{}, &out)

	if _, err := adapter.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No QC entries found.") {
		t.Errorf("expected empty message, got: %s", out.String())
	}
}

func TestQCLogAdapter_Add(t *testing.T) {
	var out bytes.Buffer
	service := &mockQCLogService{}
	adapter := NewQCLogAdapter(service, &out)

	req := primary.SaveEntryRequest{Project: "TESORO", Builder: "LENNAR", LotNumber: "57", InstallDate: "2025-09-06"}
	if err := adapter.Add(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if service.lastReq != req {
		t.Errorf("expected request to be passed through, got %+v", service.lastReq)
	}
	if !strings.Contains(out.String(), "installed 2025-09-06") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestQCLogAdapter_Add_Error(t *testing.T) {
	service := &mockQCLogService{saveErr: errors.New("database is locked")}
	adapter := NewQCLogAdapter(service, &bytes.Buffer{})

	err := adapter.Add(context.Background(), primary.SaveEntryRequest{})
	if err == nil || !strings.Contains(err.Error(), "failed to save qc entry") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestQCLogAdapter_Export(t *testing.T) {
	var out bytes.Buffer
	service := &mockQCLogService{entries: []*primary.QCLogEntry{{ID: 1}}}
	adapter := NewQCLogAdapter(service, &out)
	path := filepath.Join(t.TempDir(), "qc.xlsx")

	if err := adapter.Export(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Exported 1 QC entry") {
		t.Errorf("unexpected output: %s", out.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected export file: %v", err)
	}
}

func TestQCLogAdapter_Init(t *testing.T) {
	var out bytes.Buffer
	service := &mockQCLogService{}
	adapter := NewQCLogAdapter(service, &out)

	if err := adapter.Init(context.Background(), "forecast.db"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !service.ensured {
		t.Error("expected schema to be ensured")
	}
}

func TestSyncAdapter_Reconcile(t *testing.T) {
	var out bytes.Buffer
	service := &mockForecastSyncService{resp: &primary.SyncResponse{Scanned: 4, Candidates: 3, Updated: 2}}
	adapter := NewSyncAdapter(service, &out)

	if _, err := adapter.Reconcile(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Updated 2 forecast record(s) from 4 QC entries") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestSyncAdapter_Reconcile_PartialFailure(t *testing.T) {
	var out bytes.Buffer
	service := &mockForecastSyncService{
		resp: &primary.SyncResponse{Scanned: 3, Candidates: 3, Updated: 1},
		err:  errors.New("database is locked"),
	}
	adapter := NewSyncAdapter(service, &out)

	_, err := adapter.Reconcile(context.Background())
	if err == nil || !strings.Contains(err.Error(), "forecast sync failed") {
		t.Errorf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(out.String(), "Sync stopped after 1 update(s)") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
