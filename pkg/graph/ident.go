package graph

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// ID is an opaque, globally unique identifier for nodes and edges.
// IDs are immutable value types: they are cheap to copy, usable as map
// keys, and safe to share between goroutines without synchronization.
//
// Two IDs are equal iff their underlying values are equal, so the
// built-in == operator works as expected.
type ID uint64

// FromValue constructs an ID carrying the given raw value.
// It is intended for deserialization; the resulting ID is independent
// of any Generator. Callers that mix FromValue IDs with minted IDs are
// responsible for seeding the generator past the highest raw value
// (see [NewGeneratorAt]).
func FromValue(raw uint64) ID { return ID(raw) }

// Value returns the underlying integer value of the ID.
func (id ID) Value() uint64 { return uint64(id) }

// String returns the decimal representation of the ID.
func (id ID) String() string { return fmt.Sprintf("%d", uint64(id)) }

// MarshalJSON encodes the ID as a bare non-negative integer.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(id))
}

// UnmarshalJSON decodes an ID from a bare non-negative integer.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw uint64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = FromValue(raw)
	return nil
}

// Generator mints fresh identifiers. Implementations must guarantee
// that no two calls to Mint ever return the same ID, even when called
// concurrently from multiple goroutines.
//
// Each [Graph] owns its own Generator, so separate graphs draw from
// separate identifier namespaces. Substitute a deterministic
// implementation in tests via [WithGenerator].
type Generator interface {
	// Mint returns an ID strictly greater than every ID previously
	// returned by this generator.
	Mint() ID
}

// NewGenerator returns the default Generator backed by an atomic
// counter. The first minted ID is 0.
func NewGenerator() Generator { return &counterGenerator{} }

// NewGeneratorAt returns a Generator whose first minted ID is next.
// Use this after importing a serialized graph to avoid colliding with
// identifiers already present.
func NewGeneratorAt(next uint64) Generator {
	g := &counterGenerator{}
	g.next.Store(next)
	return g
}

// counterGenerator mints sequential IDs via an atomic counter.
// Mint is safe for concurrent use; values are never duplicated or
// skipped.
type counterGenerator struct {
	next atomic.Uint64
}

func (g *counterGenerator) Mint() ID {
	return ID(g.next.Add(1) - 1)
}
