package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/example/qc/internal/core/submission"
	"github.com/example/qc/internal/ports/primary"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// SubmissionAdapter translates CLI operations to SubmissionService calls.
type SubmissionAdapter struct {
	service primary.SubmissionService
	out     io.Writer
}

// NewSubmissionAdapter creates a new SubmissionAdapter with the given service.
func NewSubmissionAdapter(service primary.SubmissionService, out io.Writer) *SubmissionAdapter {
	return &SubmissionAdapter{
		service: service,
		out:     out,
	}
}

// Submit dispatches a submission and reports each step.
func (a *SubmissionAdapter) Submit(ctx context.Context, sub *submission.Submission) (*primary.SubmitResponse, error) {
	resp, err := a.service.Submit(ctx, sub)
	if resp != nil {
		a.printResult(sub, resp)
	}
	return resp, err
}

func (a *SubmissionAdapter) printResult(sub *submission.Submission, resp *primary.SubmitResponse) {
	fmt.Fprintf(a.out, "%s Report generated for %s / %s lot %s (%d bytes)\n",
		okMark, sub.Job.Project, sub.Job.Builder, sub.Job.LotNumber, resp.ReportBytes)

	if resp.Emailed {
		fmt.Fprintf(a.out, "%s Report emailed\n", okMark)
	} else if resp.EmailError != nil {
		fmt.Fprintf(a.out, "%s Email not sent: %v\n", warnMark, resp.EmailError)
	}

	if resp.ArchiveURL != "" {
		fmt.Fprintf(a.out, "%s Archived to %s\n", okMark, resp.ArchiveURL)
	} else if resp.ArchiveError != nil {
		fmt.Fprintf(a.out, "%s Archive failed: %v\n", warnMark, resp.ArchiveError)
	}

	if resp.Logged {
		fmt.Fprintf(a.out, "%s QC entry saved (submission %s)\n", okMark, resp.SubmissionID)
	}
}

// Render writes the report for a submission to path.
func (a *SubmissionAdapter) Render(ctx context.Context, sub *submission.Submission, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := a.service.Preview(ctx, sub, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "%s Report written to %s\n", okMark, path)
	return nil
}
