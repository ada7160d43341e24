package sim

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

const (
	defaultSlowMinDelay = 2 * time.Second
	defaultSlowMaxDelay = 5 * time.Second
)

// SlowSimulator serves /api/slow: it always succeeds, but only after
// blocking its request goroutine for a random interval. The block is the
// point of the simulation, so the server's concurrency capacity bounds
// how many slow requests can be in flight at once.
type SlowSimulator struct {
	minDelay time.Duration
	maxDelay time.Duration
	sel      *outcome.Selector
}

// NewSlowSimulator creates the slow simulator with the default 2-5s range
func NewSlowSimulator(sel *outcome.Selector) *SlowSimulator {
	return &SlowSimulator{
		minDelay: defaultSlowMinDelay,
		maxDelay: defaultSlowMaxDelay,
		sel:      sel,
	}
}

// Simulate sleeps for a uniformly drawn delay, then answers
func (s *SlowSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	delay := s.sel.UniformDuration(s.minDelay, s.maxDelay)
	logger.Warning("Slow endpoint called, sleeping for %.2fs", delay.Seconds())

	time.Sleep(delay)

	logger.Info("Slow endpoint completed")
	return &plugin.Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"status":  "completed",
			"delay":   delay.Seconds(),
			"message": "This endpoint is intentionally slow",
		},
	}, nil
}

// Name returns the name of the simulator
func (s *SlowSimulator) Name() string {
	return "slow"
}

// Path returns the HTTP path the simulator is served on
func (s *SlowSimulator) Path() string {
	return "/api/slow"
}

// Configure sets the delay range. Options: min_delay, max_delay
// (duration strings).
func (s *SlowSimulator) Configure(options map[string]interface{}) error {
	if v, ok := options["min_delay"]; ok {
		d, err := toDuration(v)
		if err != nil {
			return fmt.Errorf("slow: invalid min_delay: %w", err)
		}
		s.minDelay = d
	}

	if v, ok := options["max_delay"]; ok {
		d, err := toDuration(v)
		if err != nil {
			return fmt.Errorf("slow: invalid max_delay: %w", err)
		}
		s.maxDelay = d
	}

	if s.minDelay <= 0 {
		return fmt.Errorf("slow: min_delay must be positive, got %s", s.minDelay)
	}

	if s.maxDelay < s.minDelay {
		return fmt.Errorf("slow: max_delay (%s) must not be below min_delay (%s)", s.maxDelay, s.minDelay)
	}

	return nil
}
