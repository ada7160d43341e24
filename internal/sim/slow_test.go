package sim

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlowSimulatorDefaults(t *testing.T) {
	s := NewSlowSimulator(seededSelector(1, 1))
	assert.Equal(t, "slow", s.Name())
	assert.Equal(t, "/api/slow", s.Path())
	assert.Equal(t, 2*time.Second, s.minDelay)
	assert.Equal(t, 5*time.Second, s.maxDelay)
}

func TestSlowSimulatorSleepsWithinRange(t *testing.T) {
	buf := captureLogs(t)

	s := NewSlowSimulator(seededSelector(2, 2))
	require.NoError(t, s.Configure(map[string]interface{}{
		"min_delay": "10ms",
		"max_delay": "30ms",
	}))

	start := time.Now()
	resp, err := s.Simulate(context.Background())
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := resp.Body
	require.NotNil(t, body)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "This endpoint is intentionally slow", body["message"])

	delay, ok := body["delay"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, delay, 0.010)
	assert.LessOrEqual(t, delay, 0.030)

	output := buf.String()
	assert.Contains(t, output, "[WARNING] Slow endpoint called, sleeping for")
	assert.Contains(t, output, "[INFO] Slow endpoint completed")
}

func TestSlowSimulatorConfigure(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]interface{}
		errMsg  string
	}{
		{
			name:    "valid range",
			options: map[string]interface{}{"min_delay": "100ms", "max_delay": "200ms"},
		},
		{
			name:    "durations accepted directly",
			options: map[string]interface{}{"min_delay": 50 * time.Millisecond, "max_delay": 80 * time.Millisecond},
		},
		{
			name:    "unparseable min_delay",
			options: map[string]interface{}{"min_delay": "soon"},
			errMsg:  "invalid min_delay",
		},
		{
			name:    "numeric max_delay rejected",
			options: map[string]interface{}{"max_delay": 5},
			errMsg:  "invalid max_delay",
		},
		{
			name:    "zero min_delay",
			options: map[string]interface{}{"min_delay": "0s", "max_delay": "1s"},
			errMsg:  "min_delay must be positive",
		},
		{
			name:    "max below min",
			options: map[string]interface{}{"min_delay": "2s", "max_delay": "1s"},
			errMsg:  "must not be below min_delay",
		},
		{
			name:    "max below default min",
			options: map[string]interface{}{"max_delay": "1ms"},
			errMsg:  "must not be below min_delay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlowSimulator(seededSelector(1, 1))
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
