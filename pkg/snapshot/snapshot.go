// Package snapshot captures the result of a scan as an identified,
// serializable record.
//
// A snapshot pairs a UUID with the scanned path, counters, and the
// graph in its JSON wire format. Snapshots are what the cache and the
// store persist, and what the HTTP API returns.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fsgraph/pkg/graph"
	"github.com/matzehuels/fsgraph/pkg/graphio"
	"github.com/matzehuels/fsgraph/pkg/scan"
)

// Snapshot is a point-in-time capture of a scanned directory.
type Snapshot struct {
	ID        string          `json:"id" bson:"_id"`
	Path      string          `json:"path" bson:"path"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Stats     scan.Stats      `json:"stats" bson:"stats"`
	Graph     json.RawMessage `json:"graph" bson:"graph"`
}

// Take serializes a scan result into a snapshot with a fresh UUID.
func Take(path string, res *scan.Result) (*Snapshot, error) {
	var buf bytes.Buffer
	if err := graphio.Write(res.Graph, &buf); err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	return &Snapshot{
		ID:        uuid.NewString(),
		Path:      path,
		CreatedAt: time.Now().UTC(),
		Stats:     res.Stats,
		Graph:     buf.Bytes(),
	}, nil
}

// Decode reconstructs the graph stored in the snapshot.
func (s *Snapshot) Decode() (*graph.Graph[scan.Entry, scan.Link], error) {
	return graphio.Read(bytes.NewReader(s.Graph))
}

// Marshal encodes the whole snapshot as JSON, for cache storage.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a snapshot from its JSON form.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
