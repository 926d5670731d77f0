package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"cbxreport/internal/operations"
)

// renderSummary prints one row per processed archive followed by the totals line.
func renderSummary(w io.Writer, batch *operations.Batch) {
	if batch == nil || len(batch.Results) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "File", "Status", "Records", "Unpivoted", "Duration", "Reason"})

	for i, r := range batch.Results {
		reason := ""
		if r.Failed() {
			reason = fmt.Sprintf("%s: %s", r.ErrorType, r.Message)
		}
		t.AppendRow(table.Row{
			i + 1,
			r.Name,
			string(r.Status),
			r.Records,
			r.Unpivoted,
			r.Duration.Round(time.Millisecond),
			reason,
		})
	}
	t.Render()

	s := batch.Summary()
	_, _ = fmt.Fprintf(w, "Processed %d files: %d succeeded, %d failed\n", s.Total, s.Succeeded, s.Failed)
}
