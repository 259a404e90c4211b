package pipeline

import (
	"sync"
	"time"
)

// Metrics tracks pipeline throughput across runs.
type Metrics struct {
	mu             sync.RWMutex
	scanPasses     int64
	filesQueued    int64
	filesProcessed int64
	filesFailed    int64
	totalDuration  time.Duration
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	// ScanPasses counts scan pass attempts, aborted passes included.
	ScanPasses      int64
	FilesQueued     int64
	FilesProcessed  int64
	FilesFailed     int64
	TotalDuration   time.Duration
	AverageDuration time.Duration
}

// NewMetrics creates an empty metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordScanPass counts one producer scan pass attempt, aborted passes
// included. A pass that failed on a missing root still counts; the
// counter tracks how often the producer cycles, not how often it
// succeeds.
func (m *Metrics) RecordScanPass() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scanPasses++
}

// RecordQueued counts one file path accepted by the queue.
func (m *Metrics) RecordQueued() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filesQueued++
}

// RecordResult counts one consumer outcome.
func (m *Metrics) RecordResult(result Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.filesProcessed++
	if result.Err != nil {
		m.filesFailed++
	}
	m.totalDuration += result.Duration
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		ScanPasses:     m.scanPasses,
		FilesQueued:    m.filesQueued,
		FilesProcessed: m.filesProcessed,
		FilesFailed:    m.filesFailed,
		TotalDuration:  m.totalDuration,
	}
	if m.filesProcessed > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.filesProcessed)
	}

	return snapshot
}
