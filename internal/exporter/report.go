package exporter

import "cbxreport/pkg/contracts/domain"

// Report is the accumulated output of a run, ready to be written.
type Report struct {
	Records   []domain.FlatRecord
	Unpivoted []domain.UnpivotedRecord
}
