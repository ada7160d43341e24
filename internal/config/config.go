package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Global      GlobalConfig                      `yaml:"global"`
	Service     ServiceConfig                     `yaml:"service"`
	Simulations map[string]map[string]interface{} `yaml:"simulations"`
}

// GlobalConfig contains global settings
type GlobalConfig struct {
	LogLevel       string `yaml:"logLevel"`
	MetricsEnabled bool   `yaml:"metricsEnabled"`
	MetricsPort    int    `yaml:"metricsPort"`
}

// ServiceConfig contains the HTTP service settings
type ServiceConfig struct {
	Name            string   `yaml:"name"`
	Port            int      `yaml:"port"`
	GRPCHealthPort  int      `yaml:"grpcHealthPort"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

// Duration wraps time.Duration so YAML values can be written as "10s"
type Duration time.Duration

// UnmarshalYAML parses a duration from either a string ("10s") or an
// integer nanosecond count
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err == nil {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration '%s': %w", raw, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := value.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration value: %w", err)
	}
	*d = Duration(time.Duration(ns))
	return nil
}

// DefaultConfig returns the built-in defaults. The service is expected to
// run with zero configuration, so every field has a working default.
func DefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			LogLevel:       "info",
			MetricsEnabled: true,
			MetricsPort:    9090,
		},
		Service: ServiceConfig{
			Name:            "aiops-demo-service",
			Port:            8080,
			GRPCHealthPort:  0,
			ShutdownTimeout: Duration(10 * time.Second),
		},
	}
}

// LoadConfig loads configuration from a YAML file and overrides with
// environment variables. An empty path skips the file and uses the
// built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Pick up a local .env file when present, then apply the environment
	godotenv.Load()
	overrideWithEnv(config)

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if logLevel := os.Getenv("AIOPS_LOG_LEVEL"); logLevel != "" {
		config.Global.LogLevel = logLevel
	}

	if metricsEnabled := os.Getenv("AIOPS_METRICS_ENABLED"); metricsEnabled != "" {
		config.Global.MetricsEnabled = metricsEnabled == "true"
	}

	if metricsPort := os.Getenv("AIOPS_METRICS_PORT"); metricsPort != "" {
		fmt.Sscanf(metricsPort, "%d", &config.Global.MetricsPort)
	}

	if name := os.Getenv("AIOPS_SERVICE_NAME"); name != "" {
		config.Service.Name = name
	}

	// PORT is the hosting platform's contract for the serving port
	if port := os.Getenv("PORT"); port != "" {
		fmt.Sscanf(port, "%d", &config.Service.Port)
	}

	if grpcPort := os.Getenv("AIOPS_GRPC_HEALTH_PORT"); grpcPort != "" {
		fmt.Sscanf(grpcPort, "%d", &config.Service.GRPCHealthPort)
	}

	if shutdownTimeout := os.Getenv("AIOPS_SHUTDOWN_TIMEOUT"); shutdownTimeout != "" {
		if duration, err := time.ParseDuration(shutdownTimeout); err == nil {
			config.Service.ShutdownTimeout = Duration(duration)
		}
	}
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	// Validate log level
	logLevel := strings.ToLower(config.Global.LogLevel)
	switch logLevel {
	case "debug", "info", "warning", "warn", "error", "critical", "fatal":
	default:
		return fmt.Errorf("invalid log level: %s", config.Global.LogLevel)
	}

	// Validate service identity and ports
	if config.Service.Name == "" {
		return fmt.Errorf("service name must not be empty")
	}

	if config.Service.Port < 1 || config.Service.Port > 65535 {
		return fmt.Errorf("service port must be between 1 and 65535, got %d", config.Service.Port)
	}

	if config.Global.MetricsEnabled {
		if config.Global.MetricsPort < 1 || config.Global.MetricsPort > 65535 {
			return fmt.Errorf("metrics port must be between 1 and 65535, got %d", config.Global.MetricsPort)
		}

		if config.Global.MetricsPort == config.Service.Port {
			return fmt.Errorf("metrics port must differ from the service port (%d)", config.Service.Port)
		}
	}

	// A gRPC health port of 0 disables the listener
	if config.Service.GRPCHealthPort != 0 {
		if config.Service.GRPCHealthPort < 1 || config.Service.GRPCHealthPort > 65535 {
			return fmt.Errorf("gRPC health port must be between 1 and 65535, got %d", config.Service.GRPCHealthPort)
		}

		if config.Service.GRPCHealthPort == config.Service.Port {
			return fmt.Errorf("gRPC health port must differ from the service port (%d)", config.Service.Port)
		}

		if config.Global.MetricsEnabled && config.Service.GRPCHealthPort == config.Global.MetricsPort {
			return fmt.Errorf("gRPC health port must differ from the metrics port (%d)", config.Global.MetricsPort)
		}
	}

	if time.Duration(config.Service.ShutdownTimeout) < time.Second {
		return fmt.Errorf("shutdown timeout must be at least 1 second")
	}

	return nil
}

// GetConfigSummary returns a one-line summary of the configuration
func GetConfigSummary(config *Config) string {
	grpcHealth := "disabled"
	if config.Service.GRPCHealthPort != 0 {
		grpcHealth = fmt.Sprintf(":%d", config.Service.GRPCHealthPort)
	}

	metrics := "disabled"
	if config.Global.MetricsEnabled {
		metrics = fmt.Sprintf(":%d", config.Global.MetricsPort)
	}

	return fmt.Sprintf("service=%s port=%d logLevel=%s metrics=%s grpcHealth=%s",
		config.Service.Name, config.Service.Port, config.Global.LogLevel, metrics, grpcHealth)
}
