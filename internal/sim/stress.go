package sim

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

const stressLogLines = 10

// StressSimulator serves /api/stress: each request emits a burst of log
// lines, roughly a third of them errors, to flood log pipelines with
// volume rather than to fail the request.
type StressSimulator struct {
	set *outcome.Set
	sel *outcome.Selector
}

// NewStressSimulator creates the stress simulator
func NewStressSimulator(sel *outcome.Selector) (*StressSimulator, error) {
	set, err := stressOutcomes()
	if err != nil {
		return nil, fmt.Errorf("failed to build stress outcomes: %w", err)
	}
	return &StressSimulator{set: set, sel: sel}, nil
}

// Simulate emits the log burst and reports how many lines were written
func (s *StressSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	for i := 0; i < stressLogLines; i++ {
		picked := s.sel.Pick(s.set)
		if picked.Name == "error" {
			logger.Error("Stress test error #%d: Random failure", i)
		} else {
			logger.Info("Stress test log #%d", i)
		}
	}

	return &plugin.Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"status":         "completed",
			"logs_generated": stressLogLines,
		},
	}, nil
}

// Name returns the name of the simulator
func (s *StressSimulator) Name() string {
	return "stress"
}

// Path returns the HTTP path the simulator is served on
func (s *StressSimulator) Path() string {
	return "/api/stress"
}

// Configure accepts no options
func (s *StressSimulator) Configure(options map[string]interface{}) error {
	return nil
}
