// Package config provides environment-driven configuration for the review metrics service.
package config

import "fmt"

// Config holds application configuration.
type Config struct {
	// Server holds HTTP server configuration.
	Server ServerConfig
	// Logger holds logger configuration.
	Logger LoggerConfig
	// GitLab holds hosting API configuration.
	GitLab GitLabConfig
	// Report holds metrics engine and report output configuration.
	Report ReportConfig
	// GinMode is the Gin framework mode (debug, release, test).
	GinMode string
}

// LoadFromEnv loads all configuration from environment variables.
func LoadFromEnv() Config {
	return Config{
		Server:  LoadServerConfigFromEnv(),
		Logger:  LoadLoggerConfigFromEnv(),
		GitLab:  LoadGitLabConfigFromEnv(),
		Report:  LoadReportConfigFromEnv(),
		GinMode: GetEnv("GIN_MODE", "release"),
	}
}

// Validate validates all configuration.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config validation failed: %w", err)
	}

	if err := c.GitLab.Validate(); err != nil {
		return fmt.Errorf("gitlab config validation failed: %w", err)
	}

	if err := c.Report.Validate(); err != nil {
		return fmt.Errorf("report config validation failed: %w", err)
	}

	if !oneOf(c.GinMode, "debug", "release", "test") {
		return fmt.Errorf("invalid GIN_MODE: %s (must be: debug, release, test)", c.GinMode)
	}

	return nil
}
