package invitation

import (
	"sync"
	"time"
)

// IssuanceMetrics counts invitation outcomes for one company since process
// start.
type IssuanceMetrics struct {
	Issued              int64
	DeliveryFailures    int64
	PersistenceFailures int64
	Cancelled           int64
	Accepted            int64
	LastIssuedAt        time.Time
}

// MetricsTracker keeps goroutine-safe IssuanceMetrics per company.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics map[string]*IssuanceMetrics
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{metrics: make(map[string]*IssuanceMetrics)}
}

// Update applies a mutation to companyID's counters under the write lock.
func (t *MetricsTracker) Update(companyID string, fn func(*IssuanceMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.metrics[companyID]
	if !ok {
		m = &IssuanceMetrics{}
		t.metrics[companyID] = m
	}
	fn(m)
}

// Snapshot returns a copy of companyID's metrics. Unknown companies read as
// zero.
func (t *MetricsTracker) Snapshot(companyID string) IssuanceMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if m, ok := t.metrics[companyID]; ok {
		return *m
	}
	return IssuanceMetrics{}
}
