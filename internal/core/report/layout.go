// Package report computes the page layout of a QC report.
// Layout is a pure function from a Document to a Plan of positioned drawing
// operations; painting the plan onto a PDF is the job of an adapter.
//
// Coordinates are PDF points on US Letter with the origin at the top-left corner.
// Text Y values are baselines; image Y values are the top edge of the image.
package report

import (
	"strings"

	"github.com/example/qc/internal/core/submission"
)

// Title is printed at the top of page 1.
const Title = "Garage Door QC Report"

// Page geometry and spacing, in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	TopMargin   = 50.0 // cursor position after a page break
	LeftMargin  = 50.0
	IndentX     = 70.0
	BodyStartY  = 80.0
	FieldStep   = 20.0
	HeaderStep  = 20.0
	ItemStep    = 15.0
	PhotosGap   = 30.0
	LabelStep   = 15.0
	ImageSize   = 150.0 // photos are placed as ImageSize x ImageSize squares
	PhotoStep   = 170.0
	BreakBefore = 200.0 // minimum space left on the page to start a photo block

	// MaxImageDim bounds both dimensions of a photo before it is embedded.
	MaxImageDim = 300
)

// Font selects a typeface for text operations.
type Font struct {
	Family string
	Style  string // "" or "B"
	Size   float64
}

var (
	TitleFont  = Font{Family: "Helvetica", Style: "B", Size: 16}
	BodyFont   = Font{Family: "Helvetica", Size: 12}
	PhotosFont = Font{Family: "Helvetica", Style: "B", Size: 14}
)

// Glyph is the pass/fail marker drawn in front of a checklist line.
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphPass
	GlyphFail
)

// GlyphFor returns the marker for a checklist result.
func GlyphFor(passed bool) Glyph {
	if passed {
		return GlyphPass
	}
	return GlyphFail
}

// OpKind distinguishes drawing operations.
type OpKind int

const (
	OpText OpKind = iota
	OpCheck
	OpImage
)

// Section tags an operation with the part of the report it belongs to.
type Section string

const (
	SectionTitle     Section = "title"
	SectionForm      Section = "form"
	SectionChecklist Section = "checklist"
	SectionNotes     Section = "notes"
	SectionPhotos    Section = "photos"
)

// Op is one positioned drawing operation.
type Op struct {
	Kind    OpKind
	Section Section
	X, Y    float64
	Font    Font
	Text    string
	Glyph   Glyph  // OpCheck only
	Image   []byte // OpImage only: raw, undecoded image bytes
	W, H    float64
}

// Page is the ordered list of operations drawn on one page.
type Page struct {
	Ops []Op
}

// Plan is a laid-out report.
type Plan struct {
	Pages []Page
}

// Document is everything that goes into a report, in display order.
type Document struct {
	FormData  []submission.Field
	Checklist []submission.CheckItem
	Notes     string
	Photos    []submission.Photo
}

// DocumentFor builds the report document for a submission.
func DocumentFor(s *submission.Submission) Document {
	return Document{
		FormData:  s.FormData(),
		Checklist: s.Checklist,
		Notes:     s.Notes,
		Photos:    s.Photos,
	}
}

type cursor struct {
	plan *Plan
	y    float64
}

func (c *cursor) emit(op Op) {
	page := &c.plan.Pages[len(c.plan.Pages)-1]
	page.Ops = append(page.Ops, op)
}

func (c *cursor) newPage() {
	c.plan.Pages = append(c.plan.Pages, Page{})
	c.y = TopMargin
}

func (c *cursor) text(section Section, x float64, font Font, s string) {
	c.emit(Op{Kind: OpText, Section: section, X: x, Y: c.y, Font: font, Text: s})
}

// Layout places every element of the document.
// Only photo blocks trigger page breaks; the form, checklist and notes are
// expected to fit on the first page and are not paginated.
func Layout(doc Document) Plan {
	plan := Plan{}
	c := &cursor{plan: &plan}
	c.newPage()

	c.text(SectionTitle, LeftMargin, TitleFont, Title)

	c.y = BodyStartY
	for _, f := range doc.FormData {
		c.text(SectionForm, LeftMargin, BodyFont, f.Label+": "+f.Value)
		c.y += FieldStep
	}

	c.text(SectionChecklist, LeftMargin, BodyFont, "QC Checklist:")
	c.y += HeaderStep
	for _, item := range doc.Checklist {
		c.emit(Op{
			Kind:    OpCheck,
			Section: SectionChecklist,
			X:       IndentX,
			Y:       c.y,
			Font:    BodyFont,
			Text:    item.Label,
			Glyph:   GlyphFor(item.Passed),
		})
		c.y += ItemStep
	}

	c.text(SectionNotes, LeftMargin, BodyFont, "Notes:")
	c.y += HeaderStep
	for _, line := range NoteLines(doc.Notes) {
		c.text(SectionNotes, IndentX, BodyFont, line)
		c.y += ItemStep
	}

	c.y += PhotosGap
	c.text(SectionPhotos, LeftMargin, PhotosFont, "Photos:")
	c.y += HeaderStep

	for _, p := range doc.Photos {
		if p.Empty() {
			continue
		}
		if PageHeight-c.y < BreakBefore {
			c.newPage()
		}
		c.text(SectionPhotos, LeftMargin, BodyFont, p.Slot)
		c.y += LabelStep
		c.emit(Op{
			Kind:    OpImage,
			Section: SectionPhotos,
			X:       IndentX,
			Y:       c.y,
			Text:    p.Slot,
			Image:   p.Data,
			W:       ImageSize,
			H:       ImageSize,
		})
		c.y += PhotoStep
	}

	return plan
}

// NoteLines splits free-text notes into printed lines.
// Empty notes still produce one blank line.
func NoteLines(notes string) []string {
	lines := strings.Split(notes, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}
