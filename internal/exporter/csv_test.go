package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing UTF-8 BOM")

	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	err := NewCSVWriter(nil).WriteCSV(path, WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "x,y"}, {"2", ""}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x,y"}, {"2", ""}}, readCSV(t, path))
}

func TestCSVWriter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()

	paths, err := NewCSVWriter(nil).WriteReport(dir, report)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, OriginalCSVName),
		filepath.Join(dir, UnpivotedCSVName),
	}, paths)

	layout, err := BuildLayout(report.Records, report.Unpivoted)
	require.NoError(t, err)

	original := readCSV(t, paths[0])
	require.Len(t, original, len(report.Records)+1)
	assert.Equal(t, layout.Original, original[0])
	assert.Equal(t, "99", original[3][0])
	assert.Equal(t, "=HYPERLINK(\"x\")", original[2][3], "CSV copies keep raw values")

	pivot := readCSV(t, paths[1])
	require.Len(t, pivot, len(report.Unpivoted)+1)
	assert.Equal(t, []string{"one.CBX", "B1", "", "Alpha", "", "3", ""}, pivot[1])
}

func TestCSVWriter_WriteReportNoRecords(t *testing.T) {
	dir := t.TempDir()

	_, err := NewCSVWriter(nil).WriteReport(dir, Report{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
