// Package store persists snapshots.
//
// The [Store] interface is implemented by an in-memory map for CLI and
// test use, and by MongoDB for server deployments where snapshots must
// survive restarts and be shared between instances.
package store

import (
	"context"
	"errors"

	"github.com/matzehuels/fsgraph/pkg/snapshot"
)

// ErrNotFound is returned when a snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Store persists snapshots by ID.
type Store interface {
	// Save stores a snapshot, replacing any snapshot with the same ID.
	Save(ctx context.Context, snap *snapshot.Snapshot) error

	// Get returns the snapshot with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*snapshot.Snapshot, error)

	// List returns all stored snapshots, newest first.
	List(ctx context.Context) ([]*snapshot.Snapshot, error)

	// Delete removes a snapshot. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
