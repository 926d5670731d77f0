package config

// Application constants
const (
	// Application Info
	AppName = "cbxreport"

	// EnvPrefix namespaces every environment variable, e.g. CBX_INPUT_DIR
	EnvPrefix = "CBX"

	// Input defaults
	DefaultInputDir  = "."
	DefaultExtension = ".CBX"
	DefaultMember    = "TakeoffJob.xml"

	// Output defaults
	DefaultWorkbook = "output_materials.xlsx"

	// Processing limits
	DefaultMaxDepth       = 256
	DefaultMaxElements    = 5_000_000
	DefaultMaxMemberBytes = 256 << 20

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/cbxreport.log"

	// Telemetry defaults
	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
)
