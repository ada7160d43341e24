package sim

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/monitor"
)

func TestMemoryLeakSimulatorGrows(t *testing.T) {
	buf := captureLogs(t)

	state := monitor.NewMetricsCollector()
	s := NewMemoryLeakSimulator(state)
	require.NoError(t, s.Configure(map[string]interface{}{
		"chunk_mb":    1,
		"critical_mb": 2,
	}))

	assert.Equal(t, "memory_leak", s.Name())
	assert.Equal(t, "/api/memory-leak", s.Path())

	// First request: 1MB leaked, below the critical threshold
	resp, err := s.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"status": "ok", "leaked_mb": 1}, resp.Body)
	assert.Contains(t, buf.String(), "[WARNING] Memory leak: 1MB allocated")
	assert.NotContains(t, buf.String(), "critical")

	// Second request: exactly at the threshold, still not critical
	buf.Reset()
	resp, err = s.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"status": "ok", "leaked_mb": 2}, resp.Body)
	assert.NotContains(t, buf.String(), "critical")

	// Third request crosses the threshold
	buf.Reset()
	resp, err = s.Simulate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"status": "ok", "leaked_mb": 3}, resp.Body)
	assert.Contains(t, buf.String(), "[ERROR] Memory leak critical: Over 2MB leaked!")

	assert.Equal(t, 3, state.LeakedMB())
}

func TestMemoryLeakSimulatorConfigure(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]interface{}
		errMsg  string
	}{
		{
			name:    "valid sizing",
			options: map[string]interface{}{"chunk_mb": 2, "critical_mb": 20},
		},
		{
			name:    "float values accepted",
			options: map[string]interface{}{"chunk_mb": float64(1), "critical_mb": float64(5)},
		},
		{
			name:    "chunk not a number",
			options: map[string]interface{}{"chunk_mb": "one"},
			errMsg:  "invalid chunk_mb",
		},
		{
			name:    "chunk must be positive",
			options: map[string]interface{}{"chunk_mb": 0},
			errMsg:  "chunk_mb must be positive",
		},
		{
			name:    "critical must be positive",
			options: map[string]interface{}{"critical_mb": -5},
			errMsg:  "critical_mb must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryLeakSimulator(monitor.NewMetricsCollector())
			err := s.Configure(tt.options)
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}
