package exporter

import (
	"cbxreport/pkg/contracts/domain"
	apperrors "cbxreport/internal/errors"
)

// Layout holds the column order of both report sheets.
type Layout struct {
	Original  []string
	Unpivoted []string
	MaxLevels int
}

// BuildLayout derives the sheet columns from the accumulated records.
//
// Original Data lists every cell name in order of first appearance, each
// record contributing its cells followed by the source file column.
// Unpivoted Data starts with the source file, bill reference and assigned
// code, then Level 1..MaxLevels, then the remaining fields in order of first
// appearance. MaxLevels is the deepest path over all flat records.
func BuildLayout(records []domain.FlatRecord, unpivoted []domain.UnpivotedRecord) (*Layout, error) {
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError("records to export")
	}

	original := newColumnSet()
	maxLevels := 0
	for _, rec := range records {
		for _, c := range rec.Cells() {
			original.add(c.Name)
		}
		original.add(domain.ColumnSourceFile)
		if n := len(rec.PathSegments()); n > maxLevels {
			maxLevels = n
		}
	}

	pivot := newColumnSet()
	pivot.add(domain.ColumnSourceFile)
	pivot.add(domain.ColumnBillReference)
	pivot.add(domain.ColumnAssignedCode)
	for i := 1; i <= maxLevels; i++ {
		pivot.add(domain.LevelColumn(i))
	}
	for _, rec := range unpivoted {
		for _, f := range rec.Fields {
			pivot.add(f.Name)
		}
	}

	return &Layout{
		Original:  original.names,
		Unpivoted: pivot.names,
		MaxLevels: maxLevels,
	}, nil
}

// OriginalRow maps a flat record onto the Original Data columns. Absent
// cells are nil.
func (l *Layout) OriginalRow(rec domain.FlatRecord) []interface{} {
	values := make(map[string]interface{}, len(rec.Fields)+12)
	for _, c := range rec.Cells() {
		values[c.Name] = c.Value
	}
	values[domain.ColumnLevel] = rec.Level
	values[domain.ColumnSourceFile] = rec.SourceFile

	return project(l.Original, values)
}

// UnpivotedRow maps an unpivoted record onto the Unpivoted Data columns.
func (l *Layout) UnpivotedRow(rec domain.UnpivotedRecord) []interface{} {
	values := make(map[string]interface{}, len(rec.Fields)+len(rec.Levels)+3)
	values[domain.ColumnSourceFile] = rec.SourceFile
	values[domain.ColumnBillReference] = rec.BillReference
	values[domain.ColumnAssignedCode] = rec.AssignedCode
	for i, desc := range rec.Levels {
		values[domain.LevelColumn(i+1)] = desc
	}
	for _, f := range rec.Fields {
		values[f.Name] = f.Value
	}

	return project(l.Unpivoted, values)
}

func project(columns []string, values map[string]interface{}) []interface{} {
	row := make([]interface{}, len(columns))
	for i, name := range columns {
		if v, ok := values[name]; ok {
			row[i] = v
		}
	}
	return row
}

// columnSet is an insertion-ordered set of column names.
type columnSet struct {
	names []string
	seen  map[string]struct{}
}

func newColumnSet() *columnSet {
	return &columnSet{seen: make(map[string]struct{})}
}

func (s *columnSet) add(name string) {
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.names = append(s.names, name)
}
