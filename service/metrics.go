package service

import (
	"sync"
	"time"
)

// Metrics aggregates request counters across the service. One lock guards
// the whole snapshot so concurrent requests update it atomically.
type Metrics struct {
	mu           sync.Mutex
	requests     int64
	perEndpoint  map[string]int64
	totalLatency time.Duration

	lastFilename string
	lastRows     int
	lastCols     int
}

// MetricsSnapshot is the JSON shape served on /metrics
type MetricsSnapshot struct {
	RequestCount    int64            `json:"request_count"`
	AvgLatencyMs    float64          `json:"avg_latency_ms"`
	PerEndpoint     map[string]int64 `json:"per_endpoint"`
	LastDatasetName string           `json:"last_dataset_name,omitempty"`
	LastDatasetRows int              `json:"last_dataset_rows"`
	LastDatasetCols int              `json:"last_dataset_cols"`
}

// NewMetrics creates an empty metrics set
func NewMetrics() *Metrics {
	return &Metrics{perEndpoint: make(map[string]int64)}
}

// Observe records one handled request
func (m *Metrics) Observe(endpoint string, latency time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.perEndpoint[endpoint]++
	m.totalLatency += latency
}

// ObserveDataset records the shape of the most recently analyzed dataset
func (m *Metrics) ObserveDataset(filename string, rows, cols int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilename = filename
	m.lastRows = rows
	m.lastCols = cols
}

// Snapshot returns a consistent copy of all counters
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := MetricsSnapshot{
		RequestCount:    m.requests,
		PerEndpoint:     make(map[string]int64, len(m.perEndpoint)),
		LastDatasetName: m.lastFilename,
		LastDatasetRows: m.lastRows,
		LastDatasetCols: m.lastCols,
	}
	for endpoint, count := range m.perEndpoint {
		snapshot.PerEndpoint[endpoint] = count
	}
	if m.requests > 0 {
		snapshot.AvgLatencyMs = float64(m.totalLatency) / float64(time.Millisecond) / float64(m.requests)
	}
	return snapshot
}
