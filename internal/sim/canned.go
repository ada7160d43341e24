package sim

import (
	"context"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

// OutcomeSimulator serves an endpoint straight from its outcome table:
// every call draws one outcome, emits its log lines and returns its
// canned body. Single-outcome tables make the endpoint deterministic.
type OutcomeSimulator struct {
	name string
	path string
	set  *outcome.Set
	sel  *outcome.Selector
}

// NewHealthSimulator serves /health and always reports healthy
func NewHealthSimulator(serviceName string, sel *outcome.Selector) (*OutcomeSimulator, error) {
	set, err := healthOutcomes(serviceName)
	if err != nil {
		return nil, err
	}
	return &OutcomeSimulator{name: "health", path: "/health", set: set, sel: sel}, nil
}

// NewDatabaseSimulator serves /api/database with a 50/50 coin flip
// between a successful query and a connection failure
func NewDatabaseSimulator(sel *outcome.Selector) (*OutcomeSimulator, error) {
	set, err := databaseOutcomes()
	if err != nil {
		return nil, err
	}
	return &OutcomeSimulator{name: "database", path: "/api/database", set: set, sel: sel}, nil
}

// NewPermissionSimulator serves /api/permission and always denies
func NewPermissionSimulator(sel *outcome.Selector) (*OutcomeSimulator, error) {
	set, err := permissionOutcomes()
	if err != nil {
		return nil, err
	}
	return &OutcomeSimulator{name: "permission", path: "/api/permission", set: set, sel: sel}, nil
}

// NewNetworkSimulator serves /api/network and always reports the external
// service as unreachable
func NewNetworkSimulator(sel *outcome.Selector) (*OutcomeSimulator, error) {
	set, err := networkOutcomes()
	if err != nil {
		return nil, err
	}
	return &OutcomeSimulator{name: "network", path: "/api/network", set: set, sel: sel}, nil
}

// Simulate draws one outcome and returns it
func (o *OutcomeSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	picked := o.sel.Pick(o.set)
	emitLogs(picked.Logs)
	return &plugin.Response{StatusCode: picked.StatusCode, Body: picked.Body}, nil
}

// Name returns the name of the simulator
func (o *OutcomeSimulator) Name() string {
	return o.name
}

// Path returns the HTTP path the simulator is served on
func (o *OutcomeSimulator) Path() string {
	return o.path
}

// Configure accepts no options; the outcome tables are fixed
func (o *OutcomeSimulator) Configure(options map[string]interface{}) error {
	return nil
}
