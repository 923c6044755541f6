package store

import (
	"sync/atomic"

	"github.com/jerseymet/weather-aggregation/internal/weather"
)

// SnapshotStore holds the current published snapshot behind an atomically
// swapped pointer. Reads never wait on a publish in flight; the Coordinator
// is the single writer. No history is kept beyond the current value and the
// one being replaced during the swap.
type SnapshotStore struct {
	current atomic.Pointer[weather.Snapshot]
}

// NewSnapshotStore creates a store seeded with the zero snapshot: one
// never-succeeded state per configured source.
func NewSnapshotStore(sources []weather.SourceID) *SnapshotStore {
	s := &SnapshotStore{}
	seed := weather.NewSnapshot(sources)
	s.current.Store(&seed)
	return s
}

// Current returns the latest published snapshot, never partially
// constructed and never blocking.
func (s *SnapshotStore) Current() weather.Snapshot {
	return *s.current.Load()
}

// Publish overwrites the visible snapshot reference atomically.
func (s *SnapshotStore) Publish(snap weather.Snapshot) {
	s.current.Store(&snap)
}
