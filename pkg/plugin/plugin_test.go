package plugin

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSimulator is a minimal Simulator for registry tests
type fakeSimulator struct {
	name string
	path string
}

func (f *fakeSimulator) Simulate(ctx context.Context) (*Response, error) {
	return &Response{
		StatusCode: http.StatusOK,
		Body:       map[string]interface{}{"status": "ok"},
	}, nil
}

func (f *fakeSimulator) Name() string { return f.name }

func (f *fakeSimulator) Path() string { return f.path }

func (f *fakeSimulator) Configure(options map[string]interface{}) error { return nil }

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	sim := &fakeSimulator{name: "process", path: "/api/process"}
	err := registry.Register(sim)
	assert.NoError(t, err)

	got, err := registry.Get("process")
	assert.NoError(t, err)
	assert.Same(t, Simulator(sim), got)
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(&fakeSimulator{name: "process", path: "/api/process"})
	assert.NoError(t, err)

	err = registry.Register(&fakeSimulator{name: "process", path: "/elsewhere"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry()

	assert.Empty(t, registry.List())

	assert.NoError(t, registry.Register(&fakeSimulator{name: "a", path: "/a"}))
	assert.NoError(t, registry.Register(&fakeSimulator{name: "b", path: "/b"}))

	listed := registry.List()
	assert.Len(t, listed, 2)

	names := map[string]bool{}
	for _, sim := range listed {
		names[sim.Name()] = true
	}
	assert.True(t, names["a"])
	assert.True(t, names["b"])
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewRegistry()

	assert.NoError(t, registry.Register(&fakeSimulator{name: "a", path: "/a"}))
	assert.NoError(t, registry.Unregister("a"))

	_, err := registry.Get("a")
	assert.Error(t, err)

	err = registry.Unregister("a")
	assert.Error(t, err)
}
