package sim

import (
	"context"
	"net/http"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

// HomeSimulator serves the root path with a small identity document so
// that hitting the bare service URL confirms which service answered.
type HomeSimulator struct {
	serviceName string
}

// NewHomeSimulator creates the root path simulator
func NewHomeSimulator(serviceName string) *HomeSimulator {
	return &HomeSimulator{serviceName: serviceName}
}

// Simulate reports the service identity and the current time
func (s *HomeSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	logger.Debug("Root endpoint requested")
	return &plugin.Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"status":    "running",
			"service":   s.serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// Name returns the name of the simulator
func (s *HomeSimulator) Name() string {
	return "home"
}

// Path returns the HTTP path the simulator is served on
func (s *HomeSimulator) Path() string {
	return "/"
}

// Configure accepts no options
func (s *HomeSimulator) Configure(options map[string]interface{}) error {
	return nil
}
