package exporter

import (
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "cbxreport/internal/errors"
)

// Sheet names of the generated workbook.
const (
	SheetOriginal  = "Original Data"
	SheetUnpivoted = "Unpivoted Data"
)

const defaultColumnWidth = 18

// WorkbookWriter writes a Report as a two-sheet Excel workbook.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write builds the workbook for report and saves it to path. Nothing is
// written when the report has no records.
func (w *WorkbookWriter) Write(path string, report Report) error {
	layout, err := BuildLayout(report.Records, report.Unpivoted)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetOriginal); err != nil {
		return apperrors.NewStorageError("failed to name sheet", err)
	}
	if _, err := f.NewSheet(SheetUnpivoted); err != nil {
		return apperrors.NewStorageError("failed to create sheet", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#808080", Style: 1},
		},
	})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	original := make([][]interface{}, 0, len(report.Records))
	for _, rec := range report.Records {
		original = append(original, layout.OriginalRow(rec))
	}
	if err := writeSheet(f, SheetOriginal, layout.Original, original, headerStyle); err != nil {
		return err
	}

	pivot := make([][]interface{}, 0, len(report.Unpivoted))
	for _, rec := range report.Unpivoted {
		pivot = append(pivot, layout.UnpivotedRow(rec))
	}
	if err := writeSheet(f, SheetUnpivoted, layout.Unpivoted, pivot, headerStyle); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	w.logger.Info("Workbook written",
		slog.String("path", path),
		slog.Int("original_rows", len(original)),
		slog.Int("unpivoted_rows", len(pivot)),
		slog.Int("max_levels", layout.MaxLevels))
	return nil
}

// writeSheet streams the header and rows into sheet. Column widths and panes
// must be set before the first row.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return apperrors.NewStorageError("failed to open sheet writer", err).WithContext("sheet", sheet)
	}

	if err := sw.SetColWidth(1, len(headers), defaultColumnWidth); err != nil {
		return apperrors.NewStorageError("failed to set column width", err).WithContext("sheet", sheet)
	}
	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return apperrors.NewStorageError("failed to freeze header row", err).WithContext("sheet", sheet)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return apperrors.NewStorageError("failed to write header", err).WithContext("sheet", sheet)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("invalid cell reference", err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return apperrors.NewStorageError("failed to write row", err).
				WithContext("sheet", sheet).
				WithContext("row", i+2)
		}
	}

	if err := sw.Flush(); err != nil {
		return apperrors.NewStorageError("failed to flush sheet", err).WithContext("sheet", sheet)
	}
	return nil
}
