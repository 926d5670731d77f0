package dataprocessing

import (
	"cbxreport/pkg/contracts/domain"
)

// Unpivot keeps the records that carry a bill reference or an assigned code
// and spreads their path over Level columns. Level i holds the description
// of the first record in records whose code equals the i-th path segment.
func Unpivot(records []domain.FlatRecord) []domain.UnpivotedRecord {
	descriptions := describeCodes(records)

	var out []domain.UnpivotedRecord
	for _, rec := range records {
		if !rec.IsKeyed() {
			continue
		}

		segments := rec.PathSegments()
		levels := make([]string, len(segments))
		for i, seg := range segments {
			levels[i] = descriptions[seg]
		}

		out = append(out, domain.UnpivotedRecord{
			SourceFile:    rec.SourceFile,
			BillReference: rec.BillReference,
			AssignedCode:  rec.AssignedCode,
			Levels:        levels,
			Fields:        passThrough(rec),
		})
	}
	return out
}

// describeCodes maps each code to the description of its first record.
func describeCodes(records []domain.FlatRecord) map[string]string {
	m := make(map[string]string)
	for _, rec := range records {
		if !rec.HasCode() {
			continue
		}
		if _, seen := m[rec.Code]; !seen {
			m[rec.Code] = rec.Description
		}
	}
	return m
}

func passThrough(rec domain.FlatRecord) []domain.Field {
	cells := rec.Cells()
	fields := make([]domain.Field, 0, len(cells))
	for _, c := range cells {
		switch c.Name {
		case domain.ColumnLevel, domain.ColumnPath, domain.ColumnCode, domain.ColumnDescription,
			domain.ColumnBillReference, domain.ColumnAssignedCode:
			continue
		}
		fields = append(fields, c)
	}
	return fields
}
