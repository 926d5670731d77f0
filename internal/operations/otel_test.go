package operations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func spanAttr(span tracetest.SpanStub, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRunner_TracesEachFile(t *testing.T) {
	dir := t.TempDir()
	componentArchive(t, dir, "a.CBX")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.CBX"), []byte("junk"), 0644))

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	runner, _ := newTestRunner(t, RunnerOptions{Tracer: tp.Tracer(TracerName)})
	batch, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	for i, span := range spans {
		assert.Equal(t, "cbx.process_file", span.Name)
		name, ok := spanAttr(span, "file.name")
		require.True(t, ok)
		assert.Equal(t, batch.Results[i].Name, name.AsString())
		runID, ok := spanAttr(span, "run.id")
		require.True(t, ok)
		assert.Equal(t, batch.RunID, runID.AsString())
	}

	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	records, ok := spanAttr(spans[0], "records.original")
	require.True(t, ok)
	assert.Equal(t, int64(1), records.AsInt64())

	assert.Equal(t, codes.Error, spans[1].Status.Code)
	errType, ok := spanAttr(spans[1], "error.type")
	require.True(t, ok)
	assert.Equal(t, "ARCHIVE", errType.AsString())
}
