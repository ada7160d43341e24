// Package sim implements the built-in endpoint simulators. Each simulator
// produces one HTTP response per call, drawn from a canned outcome table,
// and emits the log lines that belong to that outcome. Side effects are
// limited to logs, the shared leak buffer and the shared request counter.
package sim

import (
	"fmt"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/monitor"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

// All constructs the full built-in simulator lineup. The outcome tables
// are built here, so an invalid table aborts startup.
func All(serviceName string, sel *outcome.Selector, state *monitor.MetricsCollector) ([]plugin.Simulator, error) {
	home := NewHomeSimulator(serviceName)

	health, err := NewHealthSimulator(serviceName, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build health simulator: %w", err)
	}

	process, err := NewProcessSimulator(sel, state)
	if err != nil {
		return nil, fmt.Errorf("failed to build process simulator: %w", err)
	}

	database, err := NewDatabaseSimulator(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build database simulator: %w", err)
	}

	permission, err := NewPermissionSimulator(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build permission simulator: %w", err)
	}

	network, err := NewNetworkSimulator(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build network simulator: %w", err)
	}

	stress, err := NewStressSimulator(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to build stress simulator: %w", err)
	}

	return []plugin.Simulator{
		home,
		health,
		process,
		NewSlowSimulator(sel),
		database,
		permission,
		network,
		NewMemoryLeakSimulator(state),
		NewCrashSimulator(),
		NewCPUSpikeSimulator(),
		stress,
	}, nil
}

// emitLogs writes an outcome's canned log lines in order
func emitLogs(lines []outcome.LogLine) {
	for _, line := range lines {
		logger.Log(line.Level, "%s", line.Message)
	}
}

// toDuration converts a simulator option value to a duration. YAML
// configuration delivers strings such as "2s"; embedders may pass a
// time.Duration directly.
func toDuration(v interface{}) (time.Duration, error) {
	switch value := v.(type) {
	case time.Duration:
		return value, nil
	case string:
		return time.ParseDuration(value)
	default:
		return 0, fmt.Errorf("unsupported duration value: %v", v)
	}
}

// toInt converts a simulator option value to an int. YAML delivers ints,
// but values that travelled through JSON arrive as float64.
func toInt(v interface{}) (int, error) {
	switch value := v.(type) {
	case int:
		return value, nil
	case int64:
		return int(value), nil
	case float64:
		return int(value), nil
	default:
		return 0, fmt.Errorf("unsupported integer value: %v", v)
	}
}
