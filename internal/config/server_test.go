package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serverEnvKeys = map[string]string{
	"SERVER_HOST":             "",
	"SERVER_PORT":             "",
	"SERVER_READ_TIMEOUT":     "",
	"SERVER_WRITE_TIMEOUT":    "",
	"SERVER_IDLE_TIMEOUT":     "",
	"SERVER_SHUTDOWN_TIMEOUT": "",
}

func withServerEnv(values map[string]string) map[string]string {
	env := make(map[string]string, len(serverEnvKeys))
	for k, v := range serverEnvKeys {
		env[k] = v
	}
	for k, v := range values {
		env[k] = v
	}
	return env
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected ServerConfig
	}{
		{
			name: "defaults leave room for slow report runs",
			env:  nil,
			expected: ServerConfig{
				Port:            ":8080",
				ReadTimeout:     10 * time.Second,
				WriteTimeout:    120 * time.Second,
				IdleTimeout:     120 * time.Second,
				ShutdownTimeout: 30 * time.Second,
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"SERVER_HOST":             "0.0.0.0",
				"SERVER_PORT":             "9090",
				"SERVER_READ_TIMEOUT":     "5s",
				"SERVER_WRITE_TIMEOUT":    "5m",
				"SERVER_IDLE_TIMEOUT":     "300s",
				"SERVER_SHUTDOWN_TIMEOUT": "1m30s",
			},
			expected: ServerConfig{
				Host:            "0.0.0.0",
				Port:            "9090",
				ReadTimeout:     5 * time.Second,
				WriteTimeout:    5 * time.Minute,
				IdleTimeout:     300 * time.Second,
				ShutdownTimeout: 90 * time.Second,
			},
		},
		{
			name: "unparsable durations fall back to defaults",
			env: map[string]string{
				"SERVER_WRITE_TIMEOUT":    "two minutes",
				"SERVER_SHUTDOWN_TIMEOUT": "soon",
			},
			expected: ServerConfig{
				Port:            ":8080",
				ReadTimeout:     10 * time.Second,
				WriteTimeout:    120 * time.Second,
				IdleTimeout:     120 * time.Second,
				ShutdownTimeout: 30 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore := setupAndRestoreEnv(t, withServerEnv(tt.env))
			defer restore()

			assert.Equal(t, tt.expected, LoadServerConfigFromEnv())
		})
	}
}

func TestServerConfig_GetAddress(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{name: "port only with colon", port: ":8080", expected: ":8080"},
		{name: "port only without colon", port: "8080", expected: "8080"},
		{name: "host and port", host: "localhost", port: "8080", expected: "localhost:8080"},
		{name: "host and port with colon", host: "0.0.0.0", port: ":8080", expected: "0.0.0.0:8080"},
		{name: "ipv6 host", host: "::1", port: ":8080", expected: "[::1]:8080"},
		{name: "empty host and empty port", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ServerConfig{Host: tt.host, Port: tt.port}
			assert.Equal(t, tt.expected, cfg.GetAddress())
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := func() ServerConfig {
		return ServerConfig{
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    120 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *ServerConfig)
		wantErr string
	}{
		{name: "valid config", mutate: func(c *ServerConfig) {}},
		{name: "zero shutdown timeout stops at once", mutate: func(c *ServerConfig) { c.ShutdownTimeout = 0 }},
		{name: "equal read and write timeouts", mutate: func(c *ServerConfig) { c.WriteTimeout = c.ReadTimeout }},
		{
			name:    "zero read timeout",
			mutate:  func(c *ServerConfig) { c.ReadTimeout = 0 },
			wantErr: "SERVER_READ_TIMEOUT",
		},
		{
			name:    "negative write timeout",
			mutate:  func(c *ServerConfig) { c.WriteTimeout = -time.Second },
			wantErr: "SERVER_WRITE_TIMEOUT",
		},
		{
			name:    "write timeout shorter than read timeout",
			mutate:  func(c *ServerConfig) { c.WriteTimeout = 5 * time.Second },
			wantErr: "must not be shorter than SERVER_READ_TIMEOUT",
		},
		{
			name:    "zero idle timeout",
			mutate:  func(c *ServerConfig) { c.IdleTimeout = 0 },
			wantErr: "SERVER_IDLE_TIMEOUT",
		},
		{
			name:    "negative shutdown timeout",
			mutate:  func(c *ServerConfig) { c.ShutdownTimeout = -time.Second },
			wantErr: "SERVER_SHUTDOWN_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
