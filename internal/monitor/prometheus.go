package monitor

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports metrics to Prometheus
type PrometheusExporter struct {
	registry *prometheus.Registry
	server   *http.Server

	// Metrics
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inflight        prometheus.Gauge
	leakedMegabytes prometheus.Gauge
}

// NewPrometheusExporter creates a new Prometheus exporter
func NewPrometheusExporter() *PrometheusExporter {
	registry := prometheus.NewRegistry()

	exporter := &PrometheusExporter{
		registry: registry,
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aiops_demo_requests_total",
				Help: "Total number of requests served, by endpoint and status code",
			},
			[]string{"endpoint", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aiops_demo_request_duration_seconds",
				Help:    "Duration of request handling in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		inflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "aiops_demo_inflight_requests",
				Help: "Number of requests currently being handled",
			},
		),
		leakedMegabytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "aiops_demo_leaked_megabytes",
				Help: "Size of the deliberately leaked buffer in megabytes",
			},
		),
	}

	// Register metrics with the registry
	registry.MustRegister(
		exporter.requestCount,
		exporter.requestDuration,
		exporter.inflight,
		exporter.leakedMegabytes,
	)

	return exporter
}

// Start starts the Prometheus HTTP server
func (p *PrometheusExporter) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	mux := http.NewServeMux()

	// Add Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))

	// Add a simple health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"UP"}`))
	})

	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	logger.Info("Starting Prometheus metrics server on %s", addr)
	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Prometheus metrics server error: %v", err)
		}
	}()

	return nil
}

// Stop stops the Prometheus HTTP server
func (p *PrometheusExporter) Stop() error {
	if p.server != nil {
		logger.Info("Stopping Prometheus metrics server")
		return p.server.Close()
	}
	return nil
}

// RecordRequest records a served request
func (p *PrometheusExporter) RecordRequest(endpoint string, statusCode int, duration time.Duration) {
	p.requestCount.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
	p.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// IncInflight increments the in-flight request gauge
func (p *PrometheusExporter) IncInflight() {
	p.inflight.Inc()
}

// DecInflight decrements the in-flight request gauge
func (p *PrometheusExporter) DecInflight() {
	p.inflight.Dec()
}

// SetLeakedMB updates the leaked buffer gauge
func (p *PrometheusExporter) SetLeakedMB(mb int) {
	p.leakedMegabytes.Set(float64(mb))
}
