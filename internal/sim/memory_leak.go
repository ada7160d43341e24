package sim

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/monitor"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

const (
	defaultLeakChunkMB    = 1
	defaultLeakCriticalMB = 10
)

// MemoryLeakSimulator serves /api/memory-leak: every request allocates a
// chunk of memory and parks it in the shared collector, so the process RSS
// grows for real and never shrinks. The leak is observable from outside
// through the process metrics, which is the point.
type MemoryLeakSimulator struct {
	chunkMB    int
	criticalMB int
	state      *monitor.MetricsCollector
}

// NewMemoryLeakSimulator creates the memory leak simulator backed by the
// given collector
func NewMemoryLeakSimulator(state *monitor.MetricsCollector) *MemoryLeakSimulator {
	return &MemoryLeakSimulator{
		chunkMB:    defaultLeakChunkMB,
		criticalMB: defaultLeakCriticalMB,
		state:      state,
	}
}

// Simulate leaks one more chunk and reports the running total
func (s *MemoryLeakSimulator) Simulate(ctx context.Context) (*plugin.Response, error) {
	total := s.state.GrowLeak(s.chunkMB)

	logger.Warning("Memory leak: %dMB allocated", total)
	if total > s.criticalMB {
		logger.Error("Memory leak critical: Over %dMB leaked!", s.criticalMB)
	}

	return &plugin.Response{
		StatusCode: http.StatusOK,
		Body: map[string]interface{}{
			"status":    "ok",
			"leaked_mb": total,
		},
	}, nil
}

// Name returns the name of the simulator
func (s *MemoryLeakSimulator) Name() string {
	return "memory_leak"
}

// Path returns the HTTP path the simulator is served on
func (s *MemoryLeakSimulator) Path() string {
	return "/api/memory-leak"
}

// Configure sets the leak sizing. Options: chunk_mb, critical_mb (integers).
func (s *MemoryLeakSimulator) Configure(options map[string]interface{}) error {
	if v, ok := options["chunk_mb"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("memory_leak: invalid chunk_mb: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("memory_leak: chunk_mb must be positive, got %d", n)
		}
		s.chunkMB = n
	}

	if v, ok := options["critical_mb"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("memory_leak: invalid critical_mb: %w", err)
		}
		if n <= 0 {
			return fmt.Errorf("memory_leak: critical_mb must be positive, got %d", n)
		}
		s.criticalMB = n
	}

	return nil
}
