// Package config defines pipeline configuration structures and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's sentinels.
package config

// Config contains process configuration for the pipeline stages.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// StoreRoot is the root of the partitioned submission store.
	StoreRoot string `koanf:"store_root"`

	// SchemaPath points at the JSON Schema descriptor used by the
	// optional generic validation pass. Empty disables the pass.
	SchemaPath string `koanf:"schema_path"`

	// ValidatorVersion is reported in validation envelopes.
	ValidatorVersion string `koanf:"validator_version"`

	// MaxExtractBytes caps the body size fed to the O(n²) balanced-brace
	// scan. Bodies beyond the cap still get the fenced and line-buffered
	// strategies.
	MaxExtractBytes int `koanf:"max_extract_bytes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		StoreRoot:        "submissions",
		SchemaPath:       "",
		ValidatorVersion: "1.0.0",
		MaxExtractBytes:  1 << 20,
	}
}
