package secondary

import (
	"context"
	"io"

	"github.com/example/qc/internal/core/report"
)

// ReportRenderer paints a report document as a PDF.
type ReportRenderer interface {
	// Render writes the complete document to w.
	Render(ctx context.Context, w io.Writer, doc report.Document) error
}
