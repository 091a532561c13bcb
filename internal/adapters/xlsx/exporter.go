// Package xlsx exports the QC log as an Excel workbook.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/example/qc/internal/ports/secondary"
)

// SheetName is the worksheet holding the exported rows.
const SheetName = "QC Log"

var headers = []string{"ID", "Project", "Builder", "Lot Number", "Install Date", "Submitted By", "Timestamp"}

// Exporter implements secondary.QCLogExporter.
type Exporter struct{}

// NewExporter creates a new spreadsheet exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes one header row followed by one row per record.
func (e *Exporter) Export(ctx context.Context, w io.Writer, records []*secondary.QCLogRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E7E6E6"},
			Pattern: 1,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(SheetName, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(SheetName, "A1", lastHeader, headerStyle)

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []interface{}{r.ID, r.Project, r.Builder, r.LotNumber, r.InstallDate, r.SubmittedBy, r.Timestamp}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "G", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Ensure Exporter implements the interface
var _ secondary.QCLogExporter = (*Exporter)(nil)
