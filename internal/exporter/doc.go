// Package exporter writes the accumulated take-off records as a two-sheet
// Excel workbook and, optionally, as CSV copies.
//
// BuildLayout fixes the column order of both sheets. WorkbookWriter streams
// "Original Data" and "Unpivoted Data" through excelize with a styled,
// frozen header row. CSVWriter writes the same rows to original_data.csv and
// unpivoted_data.csv with a UTF-8 BOM for Excel compatibility.
//
// Example usage:
//
//	report := exporter.Report{Records: records, Unpivoted: unpivoted}
//	if err := exporter.NewWorkbookWriter(logger).Write("output_materials.xlsx", report); err != nil {
//		return err
//	}
package exporter
