package monitor

import (
	"sync"
	"time"
)

// MetricsCollector owns the process-wide mutable state of the service:
// the request counter, per-endpoint tallies and the deliberately leaked
// buffer. All simulators share a single instance by reference. The leak
// only ever grows; nothing releases it within the process lifetime.
type MetricsCollector struct {
	startTime     time.Time
	requestCount  int64
	requestCounts map[string]int
	errorCounts   map[string]int
	leak          [][]byte
	leakedMB      int
	mu            sync.RWMutex
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		startTime:     time.Now(),
		requestCounts: make(map[string]int),
		errorCounts:   make(map[string]int),
	}
}

// NextRequestID increments and returns the process-wide request counter
func (m *MetricsCollector) NextRequestID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount++
	return m.requestCount
}

// RequestID returns the current value of the request counter
func (m *MetricsCollector) RequestID() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// RecordRequest records a served request and whether it was an error
func (m *MetricsCollector) RecordRequest(endpoint string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requestCounts[endpoint]++
	if statusCode >= 400 {
		m.errorCounts[endpoint]++
	}
}

// RequestCount returns the number of requests served for an endpoint
func (m *MetricsCollector) RequestCount(endpoint string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCounts[endpoint]
}

// ErrorCount returns the number of error responses for an endpoint
func (m *MetricsCollector) ErrorCount(endpoint string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errorCounts[endpoint]
}

// Totals returns the total number of requests and errors across all endpoints
func (m *MetricsCollector) Totals() (requests, errors int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, count := range m.requestCounts {
		requests += count
	}
	for _, count := range m.errorCounts {
		errors += count
	}

	return requests, errors
}

// GrowLeak allocates chunkMB megabytes, retains them forever and returns
// the total leaked size in megabytes.
func (m *MetricsCollector) GrowLeak(chunkMB int) int {
	chunk := make([]byte, chunkMB<<20)
	for i := range chunk {
		chunk[i] = 'x'
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.leak = append(m.leak, chunk)
	m.leakedMB += chunkMB
	return m.leakedMB
}

// LeakedMB returns the total leaked size in megabytes
func (m *MetricsCollector) LeakedMB() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.leakedMB
}

// Uptime returns how long the collector has been alive
func (m *MetricsCollector) Uptime() time.Duration {
	return time.Since(m.startTime)
}
