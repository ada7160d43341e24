package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
)

// Response is what a simulator produces for one request
type Response struct {
	StatusCode int
	Body       map[string]interface{}
}

// Simulator is the interface that all endpoint simulator plugins must implement
type Simulator interface {
	// Simulate performs the endpoint's side effects and returns the response.
	// A returned error is treated as an unhandled application failure and is
	// mapped to a 500 response by the server.
	Simulate(ctx context.Context) (*Response, error)
	// Name returns the name of the simulator
	Name() string
	// Path returns the HTTP path the simulator is served on
	Path() string
	// Configure configures the simulator with the given options
	Configure(options map[string]interface{}) error
}

// Registry is a registry of simulator plugins
type Registry struct {
	simulators map[string]Simulator
	mu         sync.RWMutex
}

// NewRegistry creates a new plugin registry
func NewRegistry() *Registry {
	return &Registry{
		simulators: make(map[string]Simulator),
	}
}

// Register registers a simulator plugin
func (r *Registry) Register(sim Simulator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := sim.Name()
	if _, exists := r.simulators[name]; exists {
		return fmt.Errorf("simulator with name '%s' already registered", name)
	}

	r.simulators[name] = sim
	logger.Info("Registered simulator plugin: %s (%s)", name, sim.Path())
	return nil
}

// Get returns a simulator by name
func (r *Registry) Get(name string) (Simulator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sim, exists := r.simulators[name]
	if !exists {
		return nil, fmt.Errorf("simulator with name '%s' not found", name)
	}

	return sim, nil
}

// List returns all registered simulators
func (r *Registry) List() []Simulator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Simulator
	for _, sim := range r.simulators {
		result = append(result, sim)
	}

	return result
}

// Unregister removes a simulator from the registry
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.simulators[name]; !exists {
		return fmt.Errorf("simulator with name '%s' not found", name)
	}

	delete(r.simulators, name)
	logger.Info("Unregistered simulator plugin: %s", name)
	return nil
}
