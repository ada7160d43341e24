package sim

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

const defaultSpikeDuration = 3 * time.Second

// CPUSpikeSimulator serves /api/cpu-spike: it spins a tight arithmetic
// loop on the request goroutine for a fixed wall-clock window, pinning a
// core. Concurrent requests pin additional cores.
type CPUSpikeSimulator struct {
	duration time.Duration
}

// NewCPUSpikeSimulator creates the CPU spike simulator with the default
// 3s burn
func NewCPUSpikeSimulator() *CPUSpikeSimulator {
	return &CPUSpikeSimulator{duration: defaultSpikeDuration}
}

// Simulate burns a core for the configured duration
func (s *CPUSpikeSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	logger.Warning("CPU spike endpoint called, starting intensive computation")

	start := time.Now()
	var result int64
	for time.Since(start) < s.duration {
		for i := 0; i < 10000; i++ {
			result += int64(i)
		}
	}

	logger.Info("CPU spike completed")
	return &plugin.Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"status":             "completed",
			"computation_result": result,
		},
	}, nil
}

// Name returns the name of the simulator
func (s *CPUSpikeSimulator) Name() string {
	return "cpu_spike"
}

// Path returns the HTTP path the simulator is served on
func (s *CPUSpikeSimulator) Path() string {
	return "/api/cpu-spike"
}

// Configure sets the burn window. Options: duration (duration string).
func (s *CPUSpikeSimulator) Configure(options map[string]interface{}) error {
	if v, ok := options["duration"]; ok {
		d, err := toDuration(v)
		if err != nil {
			return fmt.Errorf("cpu_spike: invalid duration: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("cpu_spike: duration must be positive, got %s", d)
		}
		s.duration = d
	}
	return nil
}
