package config

import "fmt"

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string
	// Format is the logging format (json, console).
	Format string
	// Output is the output destination (stdout, stderr, or file path).
	// File paths are opened by zap in append mode.
	Output string
}

// LoadLoggerConfigFromEnv loads logger configuration from environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:  GetEnv("LOG_LEVEL", "info"),
		Format: GetEnv("LOG_FORMAT", "json"),
		Output: GetEnv("LOG_OUTPUT", "stdout"),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !oneOf(c.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", c.Level)
	}
	if !oneOf(c.Format, "json", "console") {
		return fmt.Errorf("invalid LOG_FORMAT: %s (must be: json, console)", c.Format)
	}
	if c.Output == "" {
		return fmt.Errorf("LOG_OUTPUT must not be empty")
	}
	return nil
}

// IsProduction returns true if logger is configured for production.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}
