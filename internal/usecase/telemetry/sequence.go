package telemetry

import (
	"context"
	"sync"
)

// MemorySequenceTracker keeps request sequences in process memory. It is
// used when no Redis is configured.
type MemorySequenceTracker struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func NewMemorySequenceTracker() *MemorySequenceTracker {
	return &MemorySequenceTracker{seqs: make(map[string]int64)}
}

func (t *MemorySequenceTracker) Advance(_ context.Context, key string, seq int64) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seq > t.seqs[key] {
		t.seqs[key] = seq
	}
	return t.seqs[key], nil
}

func (t *MemorySequenceTracker) Latest(_ context.Context, key string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seqs[key], nil
}
