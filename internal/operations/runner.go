package operations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"cbxreport/internal/dataprocessing"
	apperrors "cbxreport/internal/errors"
	"cbxreport/internal/files"
	"cbxreport/internal/infrastructure"
	"cbxreport/internal/xmltree"
)

// ArchiveLoader opens an archive and returns its parsed take-off document.
type ArchiveLoader interface {
	Load(ctx context.Context, archivePath string) (*xmltree.Element, error)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Extension     string
	CaseSensitive bool
	FailFast      bool

	// Progress receives one "Processing file i of n" line per archive.
	Progress io.Writer
	Tracer   trace.Tracer
	Metrics  *infrastructure.RunMetrics
}

// Runner processes every archive of a folder and accumulates the results.
type Runner struct {
	discovery *files.Discovery
	loader    ArchiveLoader
	processor dataprocessing.Processor
	opts      RunnerOptions
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewRunner creates a runner over loader and processor.
func NewRunner(loader ArchiveLoader, processor dataprocessing.Processor, opts RunnerOptions, logger *slog.Logger) *Runner {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return &Runner{
		discovery: files.NewDiscovery(""),
		loader:    loader,
		processor: processor,
		opts:      opts,
		tracer:    tracer,
		logger:    infrastructure.WithComponent(logger, "runner"),
	}
}

// Run processes the archives found in dir in name order.
//
// A failing archive is recorded in the batch and skipped, unless FailFast is
// set, in which case Run stops and returns the partial batch with the error.
// Finding no archives is a NOT_FOUND error.
func (r *Runner) Run(ctx context.Context, dir string) (*Batch, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	batch := &Batch{RunID: infrastructure.GetTraceID(ctx)}

	archives, err := r.discovery.FindArchives(dir, r.opts.Extension, r.opts.CaseSensitive)
	if err != nil {
		return batch, apperrors.NewStorageError("failed to list input directory", err).WithContext("dir", dir)
	}
	if len(archives) == 0 {
		return batch, apperrors.NewNotFoundError(fmt.Sprintf("no %s files in %s", r.opts.Extension, dir)).
			WithContext("dir", dir).
			WithContext("extension", r.opts.Extension)
	}

	r.logRunStart(ctx, dir, len(archives))
	tracker := NewProgressTracker("export", len(archives))

	for i, info := range archives {
		fmt.Fprintf(r.opts.Progress, "Processing file %d of %d: %s\n", i+1, len(archives), info.Name)

		result, err := r.processFile(ctx, batch, i, info)
		batch.Results = append(batch.Results, result)
		tracker.Increment(info.Name)
		r.logFileProgress(ctx, tracker)

		if err != nil {
			r.logFileError(ctx, result, err)
			if r.opts.FailFast {
				r.logRunComplete(ctx, batch.Summary(), tracker)
				return batch, fmt.Errorf("processing %s: %w", info.Name, err)
			}
			continue
		}
		r.logFileComplete(ctx, result)
	}

	r.logRunComplete(ctx, batch.Summary(), tracker)
	return batch, nil
}

// processFile loads and flattens one archive, appending its rows to batch
// only when the whole file succeeds.
func (r *Runner) processFile(ctx context.Context, batch *Batch, index int, info files.FileInfo) (FileResult, error) {
	ctx, span := r.traceFile(ctx, batch.RunID, index, info)
	start := time.Now()

	result := FileResult{Name: info.Name, Path: info.Path, Status: StatusSucceeded}
	out, err := r.loadAndProcess(ctx, info.Path)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusFailed
		result.ErrorType = apperrors.TypeOf(err)
		result.Message = err.Error()
	} else {
		for i := range out.Records {
			out.Records[i].SourceFile = info.Name
		}
		for i := range out.Unpivoted {
			out.Unpivoted[i].SourceFile = info.Name
		}
		batch.Records = append(batch.Records, out.Records...)
		batch.Unpivoted = append(batch.Unpivoted, out.Unpivoted...)
		result.Records = len(out.Records)
		result.Unpivoted = len(out.Unpivoted)
	}

	infrastructure.RecordFileMetrics(ctx, r.opts.Metrics, string(result.Status), result.Records, result.Unpivoted, result.Duration)
	finishFileSpan(ctx, span, result, err)
	return result, err
}

func (r *Runner) loadAndProcess(ctx context.Context, path string) (*dataprocessing.Result, error) {
	root, err := r.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return r.processor.Process(root)
}
