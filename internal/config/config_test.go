package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so ambient environment cannot leak into
// a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AIOPS_LOG_LEVEL",
		"AIOPS_METRICS_ENABLED",
		"AIOPS_METRICS_PORT",
		"AIOPS_SERVICE_NAME",
		"PORT",
		"AIOPS_GRPC_HEALTH_PORT",
		"AIOPS_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Global.LogLevel)
	assert.True(t, cfg.Global.MetricsEnabled)
	assert.Equal(t, 9090, cfg.Global.MetricsPort)
	assert.Equal(t, "aiops-demo-service", cfg.Service.Name)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, 0, cfg.Service.GRPCHealthPort)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.Service.ShutdownTimeout))
	assert.Empty(t, cfg.Simulations)
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
global:
  logLevel: debug
  metricsEnabled: false
  metricsPort: 9191

service:
  name: staging-demo
  port: 8088
  grpcHealthPort: 8181
  shutdownTimeout: 30s

simulations:
  slow:
    min_delay: 10ms
    max_delay: 50ms
  memory_leak:
    chunk_mb: 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Global.LogLevel)
	assert.False(t, cfg.Global.MetricsEnabled)
	assert.Equal(t, 9191, cfg.Global.MetricsPort)
	assert.Equal(t, "staging-demo", cfg.Service.Name)
	assert.Equal(t, 8088, cfg.Service.Port)
	assert.Equal(t, 8181, cfg.Service.GRPCHealthPort)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Service.ShutdownTimeout))

	require.Contains(t, cfg.Simulations, "slow")
	assert.Equal(t, "10ms", cfg.Simulations["slow"]["min_delay"])
	assert.Equal(t, "50ms", cfg.Simulations["slow"]["max_delay"])
	require.Contains(t, cfg.Simulations, "memory_leak")
	assert.Equal(t, 2, cfg.Simulations["memory_leak"]["chunk_mb"])
}

func TestLoadConfigDurationAsNanoseconds(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
service:
  shutdownTimeout: 10000000000
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.Service.ShutdownTimeout))
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
service:
  shutdownTimeout: soon
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "global: [not a mapping")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing config file")
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AIOPS_LOG_LEVEL", "warning")
	t.Setenv("AIOPS_METRICS_ENABLED", "false")
	t.Setenv("AIOPS_METRICS_PORT", "9999")
	t.Setenv("AIOPS_SERVICE_NAME", "env-demo")
	t.Setenv("PORT", "8089")
	t.Setenv("AIOPS_GRPC_HEALTH_PORT", "8282")
	t.Setenv("AIOPS_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.Global.LogLevel)
	assert.False(t, cfg.Global.MetricsEnabled)
	assert.Equal(t, 9999, cfg.Global.MetricsPort)
	assert.Equal(t, "env-demo", cfg.Service.Name)
	assert.Equal(t, 8089, cfg.Service.Port)
	assert.Equal(t, 8282, cfg.Service.GRPCHealthPort)
	assert.Equal(t, 5*time.Second, time.Duration(cfg.Service.ShutdownTimeout))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	path := writeConfig(t, `
service:
  port: 8088
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Service.Port)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config { return DefaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Global.LogLevel = "loud" },
			wantErr: "invalid log level",
		},
		{
			name:    "empty service name",
			mutate:  func(c *Config) { c.Service.Name = "" },
			wantErr: "service name",
		},
		{
			name:    "service port out of range",
			mutate:  func(c *Config) { c.Service.Port = 70000 },
			wantErr: "service port",
		},
		{
			name:    "metrics port out of range",
			mutate:  func(c *Config) { c.Global.MetricsPort = 0 },
			wantErr: "metrics port",
		},
		{
			name: "metrics port collides with service port",
			mutate: func(c *Config) {
				c.Global.MetricsPort = c.Service.Port
			},
			wantErr: "metrics port must differ",
		},
		{
			name: "grpc port collides with service port",
			mutate: func(c *Config) {
				c.Service.GRPCHealthPort = c.Service.Port
			},
			wantErr: "gRPC health port must differ",
		},
		{
			name: "grpc port collides with metrics port",
			mutate: func(c *Config) {
				c.Service.GRPCHealthPort = c.Global.MetricsPort
			},
			wantErr: "gRPC health port must differ",
		},
		{
			name: "shutdown timeout too small",
			mutate: func(c *Config) {
				c.Service.ShutdownTimeout = Duration(100 * time.Millisecond)
			},
			wantErr: "shutdown timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.NoError(t, validateConfig(base()))
}

func TestValidateConfigDisabledMetricsSkipsPortChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Global.MetricsEnabled = false
	cfg.Global.MetricsPort = 0

	assert.NoError(t, validateConfig(cfg))
}

func TestGetConfigSummary(t *testing.T) {
	cfg := DefaultConfig()
	summary := GetConfigSummary(cfg)
	assert.Contains(t, summary, "service=aiops-demo-service")
	assert.Contains(t, summary, "port=8080")
	assert.Contains(t, summary, "metrics=:9090")
	assert.Contains(t, summary, "grpcHealth=disabled")

	cfg.Service.GRPCHealthPort = 8081
	cfg.Global.MetricsEnabled = false
	summary = GetConfigSummary(cfg)
	assert.Contains(t, summary, "metrics=disabled")
	assert.Contains(t, summary, "grpcHealth=:8081")
}
