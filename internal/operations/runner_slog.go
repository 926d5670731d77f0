package operations

import (
	"context"
	"log/slog"
	"time"

	"cbxreport/internal/infrastructure"
)

// logRunStart logs the start of a run
func (r *Runner) logRunStart(ctx context.Context, dir string, files int) {
	r.logger.InfoContext(ctx, "run_start",
		slog.String("input_dir", dir),
		slog.String("extension", r.opts.Extension),
		slog.Bool("case_sensitive", r.opts.CaseSensitive),
		slog.Bool("fail_fast", r.opts.FailFast),
		slog.Int("files", files))
}

// logRunComplete logs the completion of a run
func (r *Runner) logRunComplete(ctx context.Context, summary Summary, tracker *ProgressTracker) {
	r.logger.InfoContext(ctx, "run_complete",
		slog.Int("files", summary.Total),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
		slog.Int("records", summary.Records),
		slog.Int("unpivoted", summary.Unpivoted),
		slog.String("elapsed", tracker.GetElapsedTimeString()))
}

// logFileComplete logs a processed archive
func (r *Runner) logFileComplete(ctx context.Context, result FileResult) {
	r.logger.InfoContext(ctx, "file_complete",
		slog.String("file", result.Name),
		slog.Int("records", result.Records),
		slog.Int("unpivoted", result.Unpivoted),
		slog.Duration("duration", result.Duration))
}

// logFileError logs a skipped archive
func (r *Runner) logFileError(ctx context.Context, result FileResult, err error) {
	r.logger.WarnContext(ctx, "file_skipped",
		slog.String("file", result.Name),
		slog.String("error_type", string(result.ErrorType)),
		infrastructure.ErrorAttr(err),
		slog.Duration("duration", result.Duration))
}

// logFileProgress logs run progress after each archive
func (r *Runner) logFileProgress(ctx context.Context, tracker *ProgressTracker) {
	current, total, pct, message := tracker.GetProgress()
	r.logger.DebugContext(ctx, "file_progress",
		slog.Int("current", current),
		slog.Int("total", total),
		slog.Float64("percentage", pct),
		slog.String("message", message),
		slog.String("eta", tracker.GetETA()),
		slog.Duration("elapsed", time.Since(tracker.StartTime)))
}
