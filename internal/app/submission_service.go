package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"regexp"

	"github.com/google/uuid"

	"github.com/example/qc/internal/core/report"
	"github.com/example/qc/internal/core/submission"
	"github.com/example/qc/internal/ports/primary"
	"github.com/example/qc/internal/ports/secondary"
)

// SubmissionDeps are the collaborators of the submission flow.
type SubmissionDeps struct {
	Renderer  secondary.ReportRenderer
	Mailer    secondary.Mailer
	Archive   secondary.ReportArchive // optional
	QCLog     secondary.QCLogRepository
	Recipient string
	TempDir   string // empty means os.TempDir()
	Logger    *slog.Logger
}

// SubmissionServiceImpl implements the SubmissionService interface.
type SubmissionServiceImpl struct {
	renderer  secondary.ReportRenderer
	mailer    secondary.Mailer
	archive   secondary.ReportArchive
	qcLog     secondary.QCLogRepository
	recipient string
	tempDir   string
	logger    *slog.Logger
	newID     func() string
}

// NewSubmissionService creates a new SubmissionService with injected dependencies.
func NewSubmissionService(deps SubmissionDeps) *SubmissionServiceImpl {
	return &SubmissionServiceImpl{
		renderer:  deps.Renderer,
		mailer:    deps.Mailer,
		archive:   deps.Archive,
		qcLog:     deps.QCLog,
		recipient: deps.Recipient,
		tempDir:   deps.TempDir,
		logger:    loggerOrDiscard(deps.Logger),
		newID:     uuid.NewString,
	}
}

// Submit runs one submission through render, email, archive and log.
// A submission with missing photos is rejected before any of that starts.
// Email and archive failures are logged and returned in the response; the
// temporary report file is removed in every case.
func (s *SubmissionServiceImpl) Submit(ctx context.Context, sub *submission.Submission) (*primary.SubmitResponse, error) {
	if err := submission.CanDispatch(sub).Error(); err != nil {
		return nil, err
	}

	resp := &primary.SubmitResponse{SubmissionID: s.newID()}
	logger := s.logger.With(
		"submission", resp.SubmissionID,
		"project", sub.Job.Project,
		"builder", sub.Job.Builder,
		"lot", sub.Job.LotNumber,
	)

	document, err := s.renderToTemp(ctx, sub, logger)
	if err != nil {
		return nil, err
	}
	resp.ReportBytes = len(document)
	logger.Info("report generated", "bytes", len(document))

	err = s.mailer.Send(ctx, secondary.MailMessage{
		To:         s.recipient,
		Subject:    sub.EmailSubject(),
		Body:       submission.EmailBody,
		Attachment: document,
	})
	if err != nil {
		logger.Warn("email failed", "to", s.recipient, "error", err)
		resp.EmailError = err
	} else {
		logger.Info("report emailed", "to", s.recipient)
		resp.Emailed = true
	}

	if s.archive != nil {
		key := ArchiveKey(sub.Job, resp.SubmissionID)
		loc, err := s.archive.Put(ctx, key, document)
		if err != nil {
			logger.Warn("archive failed", "key", key, "error", err)
			resp.ArchiveError = err
		} else {
			resp.ArchiveURL = loc
		}
	}

	err = s.qcLog.Append(ctx, &secondary.QCLogRecord{
		Project:     sub.Job.Project,
		Builder:     sub.Job.Builder,
		LotNumber:   sub.Job.LotNumber,
		InstallDate: sub.Job.InstallDate,
		SubmittedBy: sub.Submitter(),
	})
	if err != nil {
		return resp, fmt.Errorf("failed to save qc entry: %w", err)
	}
	resp.Logged = true
	logger.Info("qc entry saved", "install_date", sub.Job.InstallDate)

	return resp, nil
}

// renderToTemp renders the report into a scoped temp file and returns its
// contents. The file is closed before reading and removed before returning.
func (s *SubmissionServiceImpl) renderToTemp(ctx context.Context, sub *submission.Submission, logger *slog.Logger) ([]byte, error) {
	tmp, err := os.CreateTemp(s.tempDir, "qc-report-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("failed to remove report file", "path", tmpPath, "error", err)
		}
	}()

	if err := s.renderer.Render(ctx, tmp, report.DocumentFor(sub)); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close report file: %w", err)
	}

	document, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}
	return document, nil
}

// Preview renders the report to w. Missing photos are simply left out.
func (s *SubmissionServiceImpl) Preview(ctx context.Context, sub *submission.Submission, w io.Writer) error {
	if err := s.renderer.Render(ctx, w, report.DocumentFor(sub)); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	return nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ArchiveKey builds the object key under which a submission's report is archived.
func ArchiveKey(job submission.Job, submissionID string) string {
	return path.Join("reports", keyPart(job.Project), keyPart(job.Builder), keyPart(job.LotNumber), submissionID+".pdf")
}

func keyPart(s string) string {
	s = unsafeKeyChars.ReplaceAllString(s, "_")
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Ensure SubmissionServiceImpl implements the interface.
var _ primary.SubmissionService = (*SubmissionServiceImpl)(nil)
