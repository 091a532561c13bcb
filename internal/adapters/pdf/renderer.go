// Package pdf paints laid-out QC reports onto PDF pages with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/example/qc/internal/core/report"
	"github.com/example/qc/internal/ports/secondary"
)

// ZapfDingbats code points for the checklist markers.
const (
	passMark = "4" // heavy check mark
	failMark = "8" // heavy ballot x
)

// glyphGap is the horizontal space reserved for a checklist marker.
const glyphGap = 16.0

// Renderer implements secondary.ReportRenderer.
type Renderer struct {
	// Compress deflates page content streams. Disable to inspect output.
	Compress bool
}

// NewRenderer creates a renderer producing compressed PDFs.
func NewRenderer() *Renderer {
	return &Renderer{Compress: true}
}

// Render lays out doc and writes the finished PDF to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, doc report.Document) error {
	plan := report.Layout(doc)

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(r.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator("qc", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for pi, page := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()

		for oi, op := range page.Ops {
			switch op.Kind {
			case report.OpText:
				setFont(pdf, op.Font)
				pdf.Text(op.X, op.Y, tr(op.Text))

			case report.OpCheck:
				pdf.SetFont("ZapfDingbats", "", op.Font.Size)
				pdf.Text(op.X, op.Y, glyphText(op.Glyph))
				setFont(pdf, op.Font)
				pdf.Text(op.X+glyphGap, op.Y, tr(op.Text))

			case report.OpImage:
				thumb, err := Thumbnail(op.Image, report.MaxImageDim)
				if err != nil {
					return fmt.Errorf("photo %q: %w", op.Text, err)
				}
				name := fmt.Sprintf("photo-%d-%d", pi, oi)
				opts := fpdf.ImageOptions{ImageType: "PNG"}
				pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(thumb))
				pdf.ImageOptions(name, op.X, op.Y, op.W, op.H, false, opts, 0, "")
			}

			if pdf.Err() {
				return fmt.Errorf("failed to draw report: %w", pdf.Error())
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func setFont(pdf *fpdf.Fpdf, f report.Font) {
	pdf.SetFont(f.Family, f.Style, f.Size)
}

func glyphText(g report.Glyph) string {
	if g == report.GlyphPass {
		return passMark
	}
	return failMark
}

// Ensure Renderer implements the interface
var _ secondary.ReportRenderer = (*Renderer)(nil)
