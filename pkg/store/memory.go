package store

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/fsgraph/pkg/snapshot"
)

// MemoryStore keeps snapshots in a process-local map.
// Safe for concurrent use. Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*snapshot.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*snapshot.Snapshot)}
}

// Save stores a snapshot, replacing any existing one with the same ID.
func (s *MemoryStore) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.ID] = snap
	return nil
}

// Get returns the snapshot with the given ID, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*snapshot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snap, nil
}

// List returns all snapshots, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]*snapshot.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*snapshot.Snapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		out = append(out, snap)
	}
	slices.SortFunc(out, func(a, b *snapshot.Snapshot) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// Delete removes a snapshot. Returns ErrNotFound if absent.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.snaps[id]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, id)
	return nil
}

// Close does nothing.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
