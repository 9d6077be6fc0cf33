// internal/output/excel.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/valpere/PeopleScrapexter/pkg/types"
)

// excelMaxCellLength is the maximum characters Excel allows in one cell.
const excelMaxCellLength = 32767

// ExcelWriter exports records to an XLSX workbook with a styled, frozen
// header row.
type ExcelWriter struct {
	file  *excelize.File
	path  string
	sheet string
	row   int
}

// NewExcelWriter prepares the workbook and header.
func NewExcelWriter(opts Options) (*ExcelWriter, error) {
	if opts.File == "" {
		return nil, fmt.Errorf("Excel file path is required")
	}
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "People"
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	w := &ExcelWriter{file: f, path: opts.File, sheet: sheet, row: 1}
	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *ExcelWriter) writeHeader() error {
	styleID, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	for i, h := range types.RecordHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write header cell: %w", err)
		}
		if err := w.file.SetCellStyle(w.sheet, cell, cell, styleID); err != nil {
			return fmt.Errorf("failed to style header cell: %w", err)
		}
	}
	if err := w.file.SetPanes(w.sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}
	return nil
}

// Write appends one row per record.
func (w *ExcelWriter) Write(records []types.Record) error {
	for _, rec := range records {
		w.row++
		for i, v := range rec.Row() {
			if len(v) > excelMaxCellLength {
				v = v[:excelMaxCellLength]
			}
			cell, err := excelize.CoordinatesToCellName(i+1, w.row)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}
	return nil
}

// Close saves the workbook to disk.
func (w *ExcelWriter) Close() error {
	defer w.file.Close()
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
