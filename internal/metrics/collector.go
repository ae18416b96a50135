// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// OperationMetrics holds aggregated metrics for a single operation type.
type OperationMetrics struct {
	Count     int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration

	// Search outcome metrics (only for provider/search operations)
	SuccessCount int64
	FailureCount int64
	TotalResults int64
	MinResults   int64
	MaxResults   int64
}

// OperationSnapshot provides computed stats from raw metrics.
type OperationSnapshot struct {
	Count       int64   `json:"count"`
	TotalTimeMs int64   `json:"totalTimeMs"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	MinTimeMs   int64   `json:"minTimeMs"`
	MaxTimeMs   int64   `json:"maxTimeMs"`

	// Search outcome stats (nil if not applicable)
	SuccessCount *int64   `json:"successCount,omitempty"`
	FailureCount *int64   `json:"failureCount,omitempty"`
	TotalResults *int64   `json:"totalResults,omitempty"`
	AvgResults   *float64 `json:"avgResults,omitempty"`
	MinResults   *int64   `json:"minResults,omitempty"`
	MaxResults   *int64   `json:"maxResults,omitempty"`
}

// Snapshot represents the full pipeline statistics at a point in time.
type Snapshot struct {
	UptimeSeconds  float64            `json:"uptimeSeconds"`
	ProviderBrave  *OperationSnapshot `json:"providerBrave,omitempty"`
	ProviderSerper *OperationSnapshot `json:"providerSerper,omitempty"`
	Search         *OperationSnapshot `json:"search,omitempty"`
	RAGRetrieve    *OperationSnapshot `json:"ragRetrieve,omitempty"`
	MemoryWrite    *OperationSnapshot `json:"memoryWrite,omitempty"`
}

// Operation names for the collector.
const (
	OpProviderBrave  = "provider_brave"
	OpProviderSerper = "provider_serper"
	OpSearch         = "search"
	OpRAGRetrieve    = "rag_retrieve"
	OpMemoryWrite    = "memory_write"
)

// Collector aggregates in-memory runtime statistics.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	ops       map[string]*OperationMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		ops:       make(map[string]*OperationMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for an operation.
// Caller must hold write lock.
func (c *Collector) getOrCreate(op string) *OperationMetrics {
	m, ok := c.ops[op]
	if !ok {
		m = &OperationMetrics{
			MinTime:    time.Duration(math.MaxInt64),
			MinResults: math.MaxInt64,
		}
		c.ops[op] = m
	}
	return m
}

// RecordTiming records timing for an operation.
func (c *Collector) RecordTiming(op string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordSearch records timing and outcome for a search operation.
func (c *Collector) RecordSearch(op string, duration time.Duration, results int64, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(op)
	m.Count++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}

	if success {
		m.SuccessCount++
	} else {
		m.FailureCount++
	}
	m.TotalResults += results

	if results < m.MinResults {
		m.MinResults = results
	}
	if results > m.MaxResults {
		m.MaxResults = results
	}
}

// snapshotOp creates a snapshot for an operation, returning nil if no data.
func snapshotOp(m *OperationMetrics, includeOutcomes bool) *OperationSnapshot {
	if m == nil || m.Count == 0 {
		return nil
	}

	snap := &OperationSnapshot{
		Count:       m.Count,
		TotalTimeMs: m.TotalTime.Milliseconds(),
		AvgTimeMs:   float64(m.TotalTime.Milliseconds()) / float64(m.Count),
		MinTimeMs:   m.MinTime.Milliseconds(),
		MaxTimeMs:   m.MaxTime.Milliseconds(),
	}

	if includeOutcomes && (m.SuccessCount > 0 || m.FailureCount > 0) {
		successes := m.SuccessCount
		failures := m.FailureCount
		total := m.TotalResults
		avg := float64(m.TotalResults) / float64(m.Count)
		minResults := m.MinResults
		maxResults := m.MaxResults

		// Reset sentinel values for display
		if minResults == math.MaxInt64 {
			minResults = 0
		}

		snap.SuccessCount = &successes
		snap.FailureCount = &failures
		snap.TotalResults = &total
		snap.AvgResults = &avg
		snap.MinResults = &minResults
		snap.MaxResults = &maxResults
	}

	return snap
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		UptimeSeconds:  time.Since(c.startTime).Seconds(),
		ProviderBrave:  snapshotOp(c.ops[OpProviderBrave], true),
		ProviderSerper: snapshotOp(c.ops[OpProviderSerper], true),
		Search:         snapshotOp(c.ops[OpSearch], true),
		RAGRetrieve:    snapshotOp(c.ops[OpRAGRetrieve], false),
		MemoryWrite:    snapshotOp(c.ops[OpMemoryWrite], false),
	}
}
