package operations

import (
	"time"

	"cbxreport/internal/exporter"
	apperrors "cbxreport/internal/errors"
	"cbxreport/pkg/contracts/domain"
)

// FileStatus is the outcome of processing one archive.
type FileStatus string

const (
	StatusSucceeded FileStatus = "succeeded"
	StatusFailed    FileStatus = "failed"
)

// FileResult records how one archive was processed.
type FileResult struct {
	Name      string              `json:"name"`
	Path      string              `json:"path"`
	Status    FileStatus          `json:"status"`
	ErrorType apperrors.ErrorType `json:"error_type,omitempty"`
	Message   string              `json:"message,omitempty"`
	Records   int                 `json:"records"`
	Unpivoted int                 `json:"unpivoted"`
	Duration  time.Duration       `json:"duration"`
}

// Failed reports whether the archive was skipped.
func (r FileResult) Failed() bool {
	return r.Status == StatusFailed
}

// Batch accumulates the output of a run in file order.
type Batch struct {
	RunID     string                   `json:"run_id"`
	Records   []domain.FlatRecord      `json:"records"`
	Unpivoted []domain.UnpivotedRecord `json:"unpivoted"`
	Results   []FileResult             `json:"results"`
}

// Summary counts the per-file outcomes of a batch.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Records   int
	Unpivoted int
}

// Summary returns the outcome counts of the batch.
func (b *Batch) Summary() Summary {
	s := Summary{
		Total:     len(b.Results),
		Records:   len(b.Records),
		Unpivoted: len(b.Unpivoted),
	}
	for _, r := range b.Results {
		if r.Failed() {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// Report returns the accumulated rows in the form the exporters write.
func (b *Batch) Report() exporter.Report {
	return exporter.Report{Records: b.Records, Unpivoted: b.Unpivoted}
}
