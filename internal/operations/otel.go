package operations

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cbxreport/internal/files"
	"cbxreport/internal/infrastructure"
)

const (
	TracerName = "cbxreport.operations"
)

// traceFile creates a span for processing one archive
func (r *Runner) traceFile(ctx context.Context, runID string, index int, info files.FileInfo) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "cbx.process_file",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("file.index", index),
			attribute.String("file.name", info.Name),
			attribute.Int64("file.size", info.Size),
		),
	)
}

// finishFileSpan records the archive outcome on the span held by ctx and ends it
func finishFileSpan(ctx context.Context, span trace.Span, result FileResult, err error) {
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"file.status":       string(result.Status),
		"records.original":  result.Records,
		"records.unpivoted": result.Unpivoted,
	})
	if err != nil {
		span.SetAttributes(attribute.String("error.type", string(result.ErrorType)))
		infrastructure.RecordError(ctx, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
