package metrics

import (
	"sync"
	"sync/atomic"
)

// Collector collects and aggregates metrics for the application.
type Collector struct {
	// API metrics
	apiRequests sync.Map // map[string]*uint64 - method -> count
	apiErrors   sync.Map // map[string]*uint64 - method -> error count
	apiDuration sync.Map // map[string]*durationValue - method -> total duration in seconds

	// Authorization decision metrics
	decisions sync.Map // map[string]*uint64 - outcome -> count
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// APIMetrics holds API request metrics.
type APIMetrics struct {
	RequestCounts        map[string]uint64
	ErrorCounts          map[string]uint64
	TotalDurationSeconds map[string]float64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordRequest records an API request.
func (c *Collector) RecordRequest(method string) {
	counter := c.getOrCreateCounter(&c.apiRequests, method)
	atomic.AddUint64(counter, 1)
}

// RecordError records an API error.
func (c *Collector) RecordError(method string) {
	counter := c.getOrCreateCounter(&c.apiErrors, method)
	atomic.AddUint64(counter, 1)
}

// RecordDuration records the duration of an API call in seconds.
func (c *Collector) RecordDuration(method string, durationSeconds float64) {
	val, _ := c.apiDuration.LoadOrStore(method, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// RecordDecision records an authorization decision outcome.
// The outcome is either "allow" or the denial code sent to the client.
func (c *Collector) RecordDecision(outcome string) {
	counter := c.getOrCreateCounter(&c.decisions, outcome)
	atomic.AddUint64(counter, 1)
}

// GetAPIMetrics returns current API metrics.
func (c *Collector) GetAPIMetrics() *APIMetrics {
	result := &APIMetrics{
		RequestCounts:        make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
	}

	// Collect request counts
	c.apiRequests.Range(func(key, value interface{}) bool {
		method := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.RequestCounts[method] = count
		return true
	})

	// Collect error counts
	c.apiErrors.Range(func(key, value interface{}) bool {
		method := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.ErrorCounts[method] = count
		return true
	})

	// Collect duration totals
	c.apiDuration.Range(func(key, value interface{}) bool {
		method := key.(string)
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[method] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	return result
}

// GetDecisionMetrics returns authorization decision counts by outcome.
func (c *Collector) GetDecisionMetrics() map[string]uint64 {
	result := make(map[string]uint64)
	c.decisions.Range(func(key, value interface{}) bool {
		outcome := key.(string)
		result[outcome] = atomic.LoadUint64(value.(*uint64))
		return true
	})
	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
