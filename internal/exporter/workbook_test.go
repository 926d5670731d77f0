package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "cbxreport/internal/errors"
	"cbxreport/pkg/contracts/domain"
)

func TestWorkbookWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	report := sampleReport()

	require.NoError(t, NewWorkbookWriter(nil).Write(path, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetOriginal, SheetUnpivoted}, f.GetSheetList())

	layout, err := BuildLayout(report.Records, report.Unpivoted)
	require.NoError(t, err)

	t.Run("original sheet", func(t *testing.T) {
		rows, err := f.GetRows(SheetOriginal)
		require.NoError(t, err)
		require.Len(t, rows, len(report.Records)+1)
		assert.Equal(t, layout.Original, rows[0])

		level, err := f.GetCellValue(SheetOriginal, "A4")
		require.NoError(t, err)
		assert.Equal(t, "99", level)

		desc, err := f.GetCellValue(SheetOriginal, "D3")
		require.NoError(t, err)
		assert.Equal(t, "=HYPERLINK(\"x\")", desc)

		qty, err := f.GetCellValue(SheetOriginal, "F3")
		require.NoError(t, err)
		assert.Equal(t, "-5", qty)

		source, err := f.GetCellValue(SheetOriginal, "G4")
		require.NoError(t, err)
		assert.Equal(t, "two.CBX", source)
	})

	t.Run("unpivoted sheet", func(t *testing.T) {
		rows, err := f.GetRows(SheetUnpivoted)
		require.NoError(t, err)
		require.Len(t, rows, len(report.Unpivoted)+1)
		assert.Equal(t, layout.Unpivoted, rows[0])
		assert.Equal(t, []string{"two.CBX", "", "X1", "Alpha", "=HYPERLINK(\"x\")", "10", "1.5"}, rows[2])
	})

	t.Run("header row is frozen", func(t *testing.T) {
		panes, err := f.GetPanes(SheetOriginal)
		require.NoError(t, err)
		assert.True(t, panes.Freeze)
		assert.Equal(t, 1, panes.YSplit)
	})
}

func TestWorkbookWriter_ValuesAreWrittenUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.xlsx")
	report := Report{
		Records: []domain.FlatRecord{
			{
				Source:        domain.SourceComponent,
				Path:          "A",
				Code:          "A",
				Description:   "- Labour",
				BillReference: "+ 10% contingency",
				Fields:        []domain.Field{{Name: "Note", Value: "=1+1"}},
				SourceFile:    "x.CBX",
			},
		},
		Unpivoted: []domain.UnpivotedRecord{
			{SourceFile: "x.CBX", BillReference: "+ 10% contingency", Levels: []string{"- Labour"}},
		},
	}

	require.NoError(t, NewWorkbookWriter(nil).Write(path, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetOriginal)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"0", "A", "A", "- Labour", "+ 10% contingency", "=1+1", "x.CBX"}, rows[1])

	formula, err := f.GetCellFormula(SheetOriginal, "F2")
	require.NoError(t, err)
	assert.Empty(t, formula, "text values must not become formulas")

	rows, err = f.GetRows(SheetUnpivoted)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"x.CBX", "+ 10% contingency", "", "- Labour"}, rows[1])
}

func TestWorkbookWriter_NoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	err := NewWorkbookWriter(nil).Write(path, Report{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no workbook should be written")
}

func TestWorkbookWriter_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "report.xlsx")

	err := NewWorkbookWriter(nil).Write(path, sampleReport())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
