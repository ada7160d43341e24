package sim

import (
	"context"
	"net/http"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/monitor"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

// ProcessSimulator serves /api/process: mostly successful requests with a
// weighted mix of canned failures. Every call advances the process-wide
// request counter, which doubles as the request id in success bodies.
type ProcessSimulator struct {
	set   *outcome.Set
	sel   *outcome.Selector
	state *monitor.MetricsCollector
}

// NewProcessSimulator creates the process simulator
func NewProcessSimulator(sel *outcome.Selector, state *monitor.MetricsCollector) (*ProcessSimulator, error) {
	set, err := processOutcomes()
	if err != nil {
		return nil, err
	}
	return &ProcessSimulator{set: set, sel: sel, state: state}, nil
}

// Simulate draws an outcome and answers with it
func (p *ProcessSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	id := p.state.NextRequestID()
	logger.Info("Processing request #%d", id)

	picked := p.sel.Pick(p.set)
	if picked.Name != "success" {
		logger.Error("Request failed with %s: Unable to process request", picked.Name)
		emitLogs(picked.Logs)
		return &plugin.Response{StatusCode: picked.StatusCode, Body: picked.Body}, nil
	}

	logger.Info("Request #%d completed successfully", id)
	return &plugin.Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"status":     "success",
			"request_id": id,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Name returns the name of the simulator
func (p *ProcessSimulator) Name() string {
	return "process"
}

// Path returns the HTTP path the simulator is served on
func (p *ProcessSimulator) Path() string {
	return "/api/process"
}

// Configure accepts no options; the outcome table is fixed
func (p *ProcessSimulator) Configure(options map[string]interface{}) error {
	return nil
}
