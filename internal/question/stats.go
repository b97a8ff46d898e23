package question

import (
	"sync"
	"time"
)

// Stats counts how the gateway served its callers. Degraded paths are
// invisible to API callers, so operators read them here.
type Stats struct {
	mu sync.RWMutex

	DurableWrites   int64
	DegradedWrites  int64
	DurableReads    int64
	EmptyFallbacks  int64
	DegradedReads   int64
	LastDegradedErr string
	LastDegradedAt  time.Time
	LastDurableAt   time.Time
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	DurableWrites   int64     `json:"durableWrites"`
	DegradedWrites  int64     `json:"degradedWrites"`
	DurableReads    int64     `json:"durableReads"`
	EmptyFallbacks  int64     `json:"emptyFallbacks"`
	DegradedReads   int64     `json:"degradedReads"`
	LastDegradedErr string    `json:"lastDegradedError,omitempty"`
	LastDegradedAt  time.Time `json:"lastDegradedAt,omitzero"`
	LastDurableAt   time.Time `json:"lastDurableAt,omitzero"`
}

// Degraded reports whether the last store interaction failed.
func (s StatsSnapshot) Degraded() bool {
	if s.LastDegradedAt.IsZero() {
		return false
	}
	return !s.LastDurableAt.After(s.LastDegradedAt)
}

func (s *Stats) recordDurableWrite(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DurableWrites++
	s.LastDurableAt = now
}

func (s *Stats) recordDurableRead(now time.Time, empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DurableReads++
	if empty {
		s.EmptyFallbacks++
	}
	s.LastDurableAt = now
}

func (s *Stats) recordDegraded(now time.Time, write bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if write {
		s.DegradedWrites++
	} else {
		s.DegradedReads++
	}
	if err != nil {
		s.LastDegradedErr = err.Error()
	}
	s.LastDegradedAt = now
}

// Snapshot returns a copy of the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatsSnapshot{
		DurableWrites:   s.DurableWrites,
		DegradedWrites:  s.DegradedWrites,
		DurableReads:    s.DurableReads,
		EmptyFallbacks:  s.EmptyFallbacks,
		DegradedReads:   s.DegradedReads,
		LastDegradedErr: s.LastDegradedErr,
		LastDegradedAt:  s.LastDegradedAt,
		LastDurableAt:   s.LastDurableAt,
	}
}
