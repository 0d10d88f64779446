package scan

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/fsgraph/pkg/graph"
)

// Kind classifies a filesystem entry.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is a directory.
	KindDirectory
)

// String returns "file" or "dir".
func (k Kind) String() string {
	if k == KindDirectory {
		return "dir"
	}
	return "file"
}

// MarshalJSON encodes the kind as "file" or "dir".
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from "file" or "dir".
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "file":
		*k = KindFile
	case "dir":
		*k = KindDirectory
	default:
		return fmt.Errorf("unknown entry kind %q", s)
	}
	return nil
}

// Entry is the node payload for scanned filesystem entries.
type Entry struct {
	Path string `json:"path"`           // path relative to the scan root ("." for the root itself)
	Name string `json:"name"`           // base name
	Kind Kind   `json:"kind"`           // file or directory
	Size int64  `json:"size,omitempty"` // byte size, zero for directories
}

// Link is the edge payload for containment edges between a directory
// and its direct children.
type Link struct {
	Relation string `json:"relation"`
}

// Contains is the relation stored on parent-to-child edges.
const Contains = "contains"

// Stats summarizes a completed scan.
type Stats struct {
	Files   int `json:"files"`
	Dirs    int `json:"dirs"`
	Skipped int `json:"skipped"` // entries excluded by depth, hidden, or ignore rules
}

// Result is the product of a scan: the containment graph, the ID of
// the root directory node, and counters.
type Result struct {
	Graph *graph.Graph[Entry, Link]
	Root  graph.ID
	Stats Stats
}
