package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "cbxreport/internal/errors"
)

// CSV copies written next to the workbook when a CSV directory is configured.
const (
	OriginalCSVName  = "original_data.csv"
	UnpivotedCSVName = "unpivoted_data.csv"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return apperrors.NewStorageError("failed to create file", err).WithContext("path", filePath)
	}
	defer file.Close()

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("failed to write BOM", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("failed to write headers", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("failed to flush CSV", err)
	}
	return file.Close()
}

// WriteReport writes both report sheets as CSV files into dir and returns
// their paths.
func (w *CSVWriter) WriteReport(dir string, report Report) ([]string, error) {
	layout, err := BuildLayout(report.Records, report.Unpivoted)
	if err != nil {
		return nil, err
	}

	original := make([][]string, 0, len(report.Records))
	for _, rec := range report.Records {
		original = append(original, textRow(layout.OriginalRow(rec)))
	}
	pivot := make([][]string, 0, len(report.Unpivoted))
	for _, rec := range report.Unpivoted {
		pivot = append(pivot, textRow(layout.UnpivotedRow(rec)))
	}

	outputs := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{OriginalCSVName, layout.Original, original},
		{UnpivotedCSVName, layout.Unpivoted, pivot},
	}

	paths := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(dir, out.name)
		if err := w.WriteCSV(path, WriteOptions{Headers: out.headers, Records: out.rows, BOMPrefix: true}); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func textRow(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatCell(v)
	}
	return out
}
