// Package config provides centralized configuration management for the
// extraction tooling. It loads settings from environment variables with
// sensible defaults and validates the result on startup to fail fast on
// misconfiguration.
package config

// Config holds all tool configuration.
// All settings can be configured via environment variables.
type Config struct {
	Extraction ExtractionConfig
	Input      InputConfig
	Logging    LoggingConfig
}

// ExtractionConfig holds engine tuning settings.
type ExtractionConfig struct {
	// Threshold is the minimum relevance score for a table to be selected
	// on its own (default: 3)
	Threshold int `env:"HEXTRACT_THRESHOLD" default:"3"`

	// InclusionFloor is the minimum number of non-empty cells for a row
	// with no recognised field values to still yield a record (default: 2)
	InclusionFloor int `env:"HEXTRACT_INCLUSION_FLOOR" default:"2"`

	// NamePrefix is the prefix for synthesized equipment names when a row
	// carries no name of its own (default: HEX)
	NamePrefix string `env:"HEXTRACT_NAME_PREFIX" default:"HEX"`

	// TaxonomyPath is an optional YAML file overriding keyword tables.
	// Empty means the built-in taxonomy.
	TaxonomyPath string `env:"HEXTRACT_TAXONOMY"`
}

// InputConfig holds workbook reading settings.
type InputConfig struct {
	// Sheets is a comma-separated list of worksheet names to read.
	// Empty means every sheet.
	Sheets []string `env:"HEXTRACT_SHEETS"`

	// MaxRows caps the number of data rows read per sheet (default: 0,
	// meaning no cap)
	MaxRows int `env:"HEXTRACT_MAX_ROWS" default:"0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
