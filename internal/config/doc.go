// Package config provides configuration management for cbxreport.
// It loads settings from multiple sources, validates them, and exposes a
// typed Config used by the CLI and the batch runner.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command-line flags (highest priority, applied by the CLI)
//	2. Environment variables
//	3. YAML configuration file given with --config
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CBX_<SECTION>_<FIELD>:
//
//	CBX_INPUT_DIR=/projects/takeoffs
//	CBX_INPUT_EXTENSION=.CBX
//	CBX_OUTPUT_WORKBOOK=report.xlsx
//	CBX_PROCESSING_FAIL_FAST=true
//	CBX_LOGGING_LEVEL=debug
//	CBX_TELEMETRY_METRICS_FILE=run.prom
//
// # Configuration File
//
//	input:
//	  dir: ./takeoffs
//	  extension: .CBX
//	  member: TakeoffJob.xml
//	output:
//	  workbook: output_materials.xlsx
//	  csv_dir: ./csv
//	processing:
//	  fail_fast: false
//	  max_depth: 256
//	logging:
//	  level: info
//	  output: console
//
// # Validation
//
// Validate uses go-playground/validator struct tags and reports every
// invalid field in a single ErrTypeConfig AppError.
package config
