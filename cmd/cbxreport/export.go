package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cbxreport/internal/config"
	"cbxreport/internal/container"
	"cbxreport/internal/dataprocessing"
	"cbxreport/internal/exporter"
	"cbxreport/internal/files"
	"cbxreport/internal/infrastructure"
	"cbxreport/internal/operations"
	"cbxreport/internal/validation"
	"cbxreport/internal/xmltree"
)

// ExportOptions holds the flags of the export command.
type ExportOptions struct {
	InputDir      string
	Workbook      string
	Extension     string
	CaseSensitive bool
	Member        string
	CSVDir        string
	FailFast      bool
	MetricsFile   string
	Trace         bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert a folder of CBX archives into an Excel report",
		Long: `Read every take-off archive in the input folder in name order, flatten its
trade hierarchy and write the accumulated rows to a two-sheet workbook.

Archives that cannot be read are reported and skipped unless --fail-fast is set.`,
		Example: `  # Convert the archives in the current directory
  cbxreport export

  # Read from a folder, write elsewhere and keep CSV copies
  cbxreport export --in ./takeoffs --out reports/materials.xlsx --csv-dir reports/csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InputDir, "in", config.DefaultInputDir, "folder holding the archives")
	cmd.Flags().StringVar(&opts.Workbook, "out", config.DefaultWorkbook, "output workbook (.xlsx)")
	cmd.Flags().StringVar(&opts.Extension, "ext", config.DefaultExtension, "archive file extension")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "match the extension case-sensitively")
	cmd.Flags().StringVar(&opts.Member, "member", config.DefaultMember, "document member inside each archive")
	cmd.Flags().StringVar(&opts.CSVDir, "csv-dir", "", "also write both sheets as CSV files into this folder")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first archive that fails")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print per-file trace spans to stderr")

	return cmd
}

// loadExportConfig resolves defaults, the config file, CBX_* variables and
// the flags that were set explicitly, in that order of precedence.
func loadExportConfig(flags *pflag.FlagSet, opts *ExportOptions) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if flags.Changed("in") {
		cfg.Input.Dir = opts.InputDir
	}
	if flags.Changed("out") {
		cfg.Output.Workbook = opts.Workbook
	}
	if flags.Changed("ext") {
		cfg.Input.Extension = opts.Extension
	}
	if flags.Changed("case-sensitive") {
		cfg.Input.CaseSensitive = opts.CaseSensitive
	}
	if flags.Changed("member") {
		cfg.Input.Member = opts.Member
	}
	if flags.Changed("csv-dir") {
		cfg.Output.CSVDir = opts.CSVDir
	}
	if flags.Changed("fail-fast") {
		cfg.Processing.FailFast = opts.FailFast
	}
	if flags.Changed("metrics-file") {
		cfg.Telemetry.MetricsFile = opts.MetricsFile
	}
	if flags.Changed("trace") && opts.Trace {
		cfg.Telemetry.TraceExporter = config.TraceExporterStdout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	cfg, err := loadExportConfig(cmd.Flags(), opts)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(cmd.Context())
	out := cmd.OutOrStdout()

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(cfg.Input.Dir); err != nil {
		return err
	}
	if err := validator.ValidateWorkbookPath(cfg.Output.Workbook); err != nil {
		return err
	}
	if cfg.Output.CSVDir != "" {
		if err := validator.ValidateOutputDirectory(cfg.Output.CSVDir); err != nil {
			return err
		}
	}

	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:    infrastructure.ServiceName,
		ServiceVersion: cmd.Root().Version,
		TraceExporter:  cfg.Telemetry.TraceExporter,
		TraceWriter:    cmd.ErrOrStderr(),
		EnableMetrics:  cfg.Telemetry.MetricsFile != "",
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", infrastructure.ErrorAttr(err))
		}
	}()

	metrics, err := infrastructure.CreateRunMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	logger.InfoContext(ctx, "Starting export",
		slog.String("input_dir", cfg.Input.Dir),
		slog.String("extension", cfg.Input.Extension),
		slog.String("workbook", cfg.Output.Workbook),
		slog.String("csv_dir", cfg.Output.CSVDir),
		slog.Bool("fail_fast", cfg.Processing.FailFast))

	loader := container.NewLoader(container.Options{
		Member:         cfg.Input.Member,
		MaxMemberBytes: cfg.Processing.MaxMemberBytes,
		Limits: xmltree.Limits{
			// two elements per trade level plus the envelope and rate sheet
			MaxDepth:    2*cfg.Processing.MaxDepth + 16,
			MaxElements: cfg.Processing.MaxElements,
		},
	}, files.NewManager(logger), logger)
	processor := dataprocessing.NewTakeoffProcessor(dataprocessing.ProcessingOptions{
		MaxDepth: cfg.Processing.MaxDepth,
	})
	runner := operations.NewRunner(loader, processor, operations.RunnerOptions{
		Extension:     cfg.Input.Extension,
		CaseSensitive: cfg.Input.CaseSensitive,
		FailFast:      cfg.Processing.FailFast,
		Progress:      out,
		Tracer:        providers.Tracer,
		Metrics:       metrics,
	}, logger)

	batch, runErr := runner.Run(ctx, cfg.Input.Dir)
	if runErr == nil {
		runErr = writeReport(ctx, cfg, batch, logger)
		if runErr == nil {
			_, _ = fmt.Fprintf(out, "Report written to %s\n", cfg.Output.Workbook)
		}
	}

	renderSummary(out, batch)

	if cfg.Telemetry.MetricsFile != "" {
		if err := providers.WriteMetricsFile(cfg.Telemetry.MetricsFile); err != nil {
			logger.ErrorContext(ctx, "Failed to write metrics file", infrastructure.ErrorAttr(err))
			runErr = errors.Join(runErr, err)
		}
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "Export failed", infrastructure.ErrorAttr(runErr))
	}
	return runErr
}

func writeReport(ctx context.Context, cfg *config.Config, batch *operations.Batch, logger *slog.Logger) error {
	report := batch.Report()

	if err := exporter.NewWorkbookWriter(logger).Write(cfg.Output.Workbook, report); err != nil {
		return err
	}

	if cfg.Output.CSVDir != "" {
		paths, err := exporter.NewCSVWriter(logger).WriteReport(cfg.Output.CSVDir, report)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "CSV copies written", slog.Any("paths", paths))
	}
	return nil
}
