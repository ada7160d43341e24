package sim

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUSpikeSimulatorBurns(t *testing.T) {
	buf := captureLogs(t)

	s := NewCPUSpikeSimulator()
	require.NoError(t, s.Configure(map[string]interface{}{"duration": "20ms"}))

	assert.Equal(t, "cpu_spike", s.Name())
	assert.Equal(t, "/api/cpu-spike", s.Path())

	start := time.Now()
	resp, err := s.Simulate(context.Background())
	elapsed := time.Since(start)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := resp.Body
	require.NotNil(t, body)
	assert.Equal(t, "completed", body["status"])

	result, ok := body["computation_result"].(int64)
	require.True(t, ok)
	assert.Positive(t, result)

	output := buf.String()
	assert.Contains(t, output, "[WARNING] CPU spike endpoint called, starting intensive computation")
	assert.Contains(t, output, "[INFO] CPU spike completed")
}

func TestCPUSpikeSimulatorDefaultDuration(t *testing.T) {
	s := NewCPUSpikeSimulator()
	assert.Equal(t, 3*time.Second, s.duration)
}

func TestCPUSpikeSimulatorConfigure(t *testing.T) {
	s := NewCPUSpikeSimulator()

	err := s.Configure(map[string]interface{}{"duration": "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")

	err = s.Configure(map[string]interface{}{"duration": "-1s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duration must be positive")

	require.NoError(t, s.Configure(map[string]interface{}{"duration": "500ms"}))
	assert.Equal(t, 500*time.Millisecond, s.duration)
}
