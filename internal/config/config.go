package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input      InputConfig      `yaml:"input" envconfig:"INPUT"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// InputConfig selects the archives to read
type InputConfig struct {
	Dir           string `yaml:"dir" envconfig:"DIR" validate:"required"`
	Extension     string `yaml:"extension" envconfig:"EXTENSION" validate:"required,extension"`
	CaseSensitive bool   `yaml:"case_sensitive" envconfig:"CASE_SENSITIVE"`
	Member        string `yaml:"member" envconfig:"MEMBER" validate:"required,member"`
}

// OutputConfig contains the report destinations
type OutputConfig struct {
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK" validate:"required"`
	CSVDir   string `yaml:"csv_dir" envconfig:"CSV_DIR"`
}

// ProcessingConfig contains batch policy and document limits
type ProcessingConfig struct {
	FailFast       bool  `yaml:"fail_fast" envconfig:"FAIL_FAST"`
	MaxDepth       int   `yaml:"max_depth" envconfig:"MAX_DEPTH" validate:"min=1,max=4096"`
	MaxElements    int   `yaml:"max_elements" envconfig:"MAX_ELEMENTS" validate:"min=1"`
	MaxMemberBytes int64 `yaml:"max_member_bytes" envconfig:"MAX_MEMBER_BYTES" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// TelemetryConfig contains tracing and metrics export settings
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, the YAML file at configFile
// (skipped when empty) and CBX_* environment variables, in that order of
// increasing precedence, then validates it.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	// Load from config file if given
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables override the file
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys missing from the file
// keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:       DefaultInputDir,
			Extension: DefaultExtension,
			Member:    DefaultMember,
		},
		Output: OutputConfig{
			Workbook: DefaultWorkbook,
		},
		Processing: ProcessingConfig{
			MaxDepth:       DefaultMaxDepth,
			MaxElements:    DefaultMaxElements,
			MaxMemberBytes: DefaultMaxMemberBytes,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: TraceExporterNone,
		},
	}
}
