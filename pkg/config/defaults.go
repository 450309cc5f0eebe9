package config

import "time"

// Analysis Defaults
const (
	// DefaultEvidenceLimit is how many evidence lines verbose output shows
	DefaultEvidenceLimit = 15

	// DefaultMatchTimeout bounds a single regex evaluation
	DefaultMatchTimeout = 2 * time.Second
)

// Scan Defaults
const (
	// DefaultMinConfidence is the lowest confidence a scan reports
	DefaultMinConfidence = 0.3

	// DefaultWorkers is the number of files analyzed concurrently
	DefaultWorkers = 4

	// DefaultMaxFileSize skips files larger than this many bytes
	DefaultMaxFileSize = 1 << 20 // 1 MiB
)

// DefaultExtensions are the suffixes a scan considers when none are given
var DefaultExtensions = []string{
	".py", ".js", ".ts", ".java", ".cpp", ".c", ".go", ".rs",
	".rb", ".php", ".swift", ".kt", ".sql", ".html", ".css",
}

// Logging Defaults
const (
	// DefaultLogLevel keeps routine events off stderr
	DefaultLogLevel = "warn"
)

// File Permissions
const (
	// PermDirectory is the file permission for directories
	PermDirectory = 0755

	// PermConfigFile is the file permission for config files
	PermConfigFile = 0644

	// PermReportFile is the file permission for written reports
	PermReportFile = 0644
)

// Path Constants - Local
const (
	// LocalConfigDir is the base directory for guesslex configuration
	LocalConfigDir = ".guesslex"

	// LocalConfigFile is the filename for the main config
	LocalConfigFile = "config.ini"
)
