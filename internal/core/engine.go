package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/config"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/health"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/monitor"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/outcome"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/sim"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/plugin"
)

// Engine is the core serving engine. It owns the simulator registry, the
// HTTP server the simulators are mounted on, the shared metrics state, and
// the optional Prometheus exporter and gRPC health server.
type Engine struct {
	config     *config.Config
	registry   *plugin.Registry
	collector  *monitor.MetricsCollector
	selector   *outcome.Selector
	exporter   *monitor.PrometheusExporter
	grpcHealth *health.GRPCServer
	mux        *http.ServeMux
	server     *http.Server
	listener   net.Listener
	paths      map[string]string
}

// NewEngine creates a new serving engine
func NewEngine(cfg *config.Config) *Engine {
	e := &Engine{
		config:    cfg,
		registry:  plugin.NewRegistry(),
		collector: monitor.NewMetricsCollector(),
		selector:  outcome.NewSelector(nil),
		mux:       http.NewServeMux(),
		paths:     make(map[string]string),
	}

	if cfg.Global.MetricsEnabled {
		e.exporter = monitor.NewPrometheusExporter()
	}

	// Anything no simulator claims gets a JSON 404 instead of the
	// default text page.
	e.mux.HandleFunc("/", e.notFound)

	return e
}

// Initialize builds the built-in simulator lineup, registers each
// simulator, and applies per-simulator options from the configuration.
// An option block naming an unknown simulator aborts startup.
func (e *Engine) Initialize() error {
	simulators, err := sim.All(e.config.Service.Name, e.selector, e.collector)
	if err != nil {
		return fmt.Errorf("failed to build simulators: %w", err)
	}

	for _, s := range simulators {
		if err := e.RegisterSimulator(s); err != nil {
			return fmt.Errorf("failed to register simulator '%s': %w", s.Name(), err)
		}
	}

	for name, options := range e.config.Simulations {
		s, err := e.registry.Get(name)
		if err != nil {
			return fmt.Errorf("simulations config references unknown simulator '%s'", name)
		}
		if err := s.Configure(options); err != nil {
			return fmt.Errorf("failed to configure simulator '%s': %w", name, err)
		}
	}

	return nil
}

// RegisterSimulator adds a simulator to the registry and mounts it on the
// engine's HTTP mux. Simulators answer GET only; other methods on a
// registered path get a JSON 405.
func (e *Engine) RegisterSimulator(s plugin.Simulator) error {
	path := s.Path()
	if owner, exists := e.paths[path]; exists {
		return fmt.Errorf("path '%s' is already registered by simulator '%s'", path, owner)
	}

	if err := e.registry.Register(s); err != nil {
		return err
	}
	e.paths[path] = s.Name()

	// "/{$}" pins the root simulator to exactly "/", leaving the bare
	// "/" pattern free to act as the not-found fallback.
	pattern := path
	if path == "/" {
		pattern = "/{$}"
	}
	e.mux.Handle("GET "+pattern, e.instrument(s))
	e.mux.HandleFunc(pattern, e.methodNotAllowed)

	return nil
}

// Start starts the metrics exporter, the gRPC health server, and the HTTP
// server. The HTTP listener is opened synchronously so a bad port fails
// here rather than in a goroutine.
func (e *Engine) Start(ctx context.Context) error {
	logger.Info("Starting %s engine", e.config.Service.Name)

	if e.exporter != nil {
		if err := e.exporter.Start(e.config.Global.MetricsPort); err != nil {
			return fmt.Errorf("failed to start metrics exporter: %w", err)
		}
	}

	if e.config.Service.GRPCHealthPort > 0 {
		e.grpcHealth = health.NewGRPCServer(e.config.Service.Name)
		if err := e.grpcHealth.Start(e.config.Service.GRPCHealthPort); err != nil {
			return fmt.Errorf("failed to start gRPC health server: %w", err)
		}
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", e.config.Service.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", e.config.Service.Port, err)
	}
	e.listener = listener
	e.server = &http.Server{
		Handler:     e.mux,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := e.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error: %v", err)
		}
	}()

	logger.Info("%s listening on %s", e.config.Service.Name, listener.Addr())
	return nil
}

// Stop shuts the engine down, draining in-flight requests up to the
// configured shutdown timeout
func (e *Engine) Stop() {
	logger.Info("Stopping %s engine", e.config.Service.Name)

	if e.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(e.config.Service.ShutdownTimeout))
		defer cancel()
		if err := e.server.Shutdown(ctx); err != nil {
			logger.Warning("HTTP server shutdown did not finish cleanly: %v", err)
		}
	}

	if e.grpcHealth != nil {
		e.grpcHealth.Stop()
	}

	if e.exporter != nil {
		if err := e.exporter.Stop(); err != nil {
			logger.Error("Failed to stop metrics exporter: %v", err)
		}
	}

	logger.Info("%s engine stopped", e.config.Service.Name)
}

// Handler returns the engine's HTTP handler
func (e *Engine) Handler() http.Handler {
	return e.mux
}

// Addr returns the address the HTTP server is listening on, or "" before
// Start
func (e *Engine) Addr() string {
	if e.listener == nil {
		return ""
	}
	return e.listener.Addr().String()
}

// Collector returns the engine's shared metrics state
func (e *Engine) Collector() *monitor.MetricsCollector {
	return e.collector
}

// instrument wraps a simulator in the request plumbing: outcome recording,
// exporter updates, error-to-500 mapping, and the JSON response write.
func (e *Engine) instrument(s plugin.Simulator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if e.exporter != nil {
			e.exporter.IncInflight()
			defer e.exporter.DecInflight()
		}

		resp, err := e.simulate(r.Context(), s)
		if err != nil {
			logger.Error("Unhandled exception: %v", err)
			resp = &plugin.Response{
				StatusCode: http.StatusInternalServerError,
				Body: map[string]interface{}{
					"error":   "Internal server error",
					"message": err.Error(),
				},
			}
		}

		e.collector.RecordRequest(s.Name(), resp.StatusCode)
		if e.exporter != nil {
			e.exporter.RecordRequest(s.Name(), resp.StatusCode, time.Since(start))
			e.exporter.SetLeakedMB(e.collector.LeakedMB())
		}

		logger.Debug("%s %s -> %d (%s)", r.Method, r.URL.Path, resp.StatusCode, time.Since(start))
		writeJSON(w, resp.StatusCode, resp.Body)
	})
}

// simulate runs one simulator, converting a panic into an error so a
// misbehaving simulator cannot take the server down
func (e *Engine) simulate(ctx context.Context, s plugin.Simulator) (resp *plugin.Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in simulator '%s': %v", s.Name(), rec)
		}
	}()
	return s.Simulate(ctx)
}

func (e *Engine) notFound(w http.ResponseWriter, r *http.Request) {
	logger.Debug("No route for %s %s", r.Method, r.URL.Path)
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error": "Not found",
	})
}

func (e *Engine) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
		"error": "Method not allowed",
	})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response body: %v", err)
	}
}
