package sim

import (
	"context"
	"errors"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

// ErrSimulatedCrash is the error returned by the crash simulator. The
// engine maps it to a 500 response like any other simulator failure; the
// process itself keeps serving.
var ErrSimulatedCrash = errors.New("simulated application crash")

// CrashSimulator serves /api/crash: it emits the log signature of an
// application crash and fails the request. Unlike a real crash the server
// survives, so the endpoint can be hit repeatedly while exercising
// alerting on CRITICAL log lines.
type CrashSimulator struct{}

// NewCrashSimulator creates the crash simulator
func NewCrashSimulator() *CrashSimulator {
	return &CrashSimulator{}
}

// Simulate logs the crash signature and fails
func (s *CrashSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	logger.Critical("Application crash triggered!")
	logger.Error("NullPointerException: Attempted to access null object")
	return nil, ErrSimulatedCrash
}

// Name returns the name of the simulator
func (s *CrashSimulator) Name() string {
	return "crash"
}

// Path returns the HTTP path the simulator is served on
func (s *CrashSimulator) Path() string {
	return "/api/crash"
}

// Configure accepts no options
func (s *CrashSimulator) Configure(options map[string]interface{}) error {
	return nil
}
