// Package graphio provides JSON import and export for scan graphs.
//
// The wire format is a node-link JSON object with integer identifiers:
//
//	{
//	  "root": 0,
//	  "nodes": [
//	    {"id": 0, "path": ".", "name": "proj", "kind": "dir"},
//	    {"id": 1, "path": "main.go", "name": "main.go", "kind": "file", "size": 120}
//	  ],
//	  "edges": [
//	    {"id": 2, "src": 0, "dest": 1, "relation": "directed", "data": {"relation": "contains"}}
//	  ]
//	}
//
// Identifiers serialize as bare non-negative integers and round-trip
// exactly. Import re-seeds the graph's generator past the highest
// identifier in the file, so nodes and edges added afterwards never
// collide with imported ones.
//
// All functions are safe to call concurrently with other readers of
// the same graph, but not with concurrent modifications.
package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/fsgraph/pkg/graph"
	"github.com/matzehuels/fsgraph/pkg/scan"
)

var relationNames = map[graph.Relation]string{
	graph.Directed:   "directed",
	graph.Undirected: "undirected",
}

var relationValues = map[string]graph.Relation{
	"directed":   graph.Directed,
	"undirected": graph.Undirected,
}

type document struct {
	Root  *graph.ID `json:"root,omitempty"`
	Nodes []node    `json:"nodes"`
	Edges []edge    `json:"edges"`
}

type node struct {
	ID graph.ID `json:"id"`
	scan.Entry
}

type edge struct {
	ID       graph.ID  `json:"id"`
	Src      graph.ID  `json:"src"`
	Dest     graph.ID  `json:"dest"`
	Relation string    `json:"relation"`
	Data     scan.Link `json:"data"`
}

// Write encodes a scan graph as JSON and writes it to w.
// Nodes and edges are sorted by ID for deterministic output; undirected
// mirror pairs are written once. The output can be re-imported with
// [Read] for full round-trip fidelity.
func Write(g *graph.Graph[scan.Entry, scan.Link], w io.Writer) error {
	doc := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	if root, ok := g.Root(); ok {
		doc.Root = &root
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, node{ID: n.ID(), Entry: n.Data()})
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, edge{
			ID:       e.ID(),
			Src:      e.Src(),
			Dest:     e.Dest(),
			Relation: relationNames[e.Relation()],
			Data:     e.Data(),
		})
	}
	slices.SortFunc(doc.Nodes, func(a, b node) int { return compareIDs(a.ID, b.ID) })
	slices.SortFunc(doc.Edges, func(a, b edge) int { return compareIDs(a.ID, b.ID) })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes a scan graph to a JSON file at path.
func Export(g *graph.Graph[scan.Entry, scan.Link], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// Read decodes a JSON graph from r.
//
// Read rebuilds nodes and edges under their serialized identifiers and
// validates referential integrity: duplicate node IDs and edges whose
// endpoints are missing are rejected, the latter with
// [graph.ErrNodeNotFound] in the error chain. The returned graph mints
// fresh identifiers starting past the highest imported value.
func Read(r io.Reader) (*graph.Graph[scan.Entry, scan.Link], error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	// Nodes and edges draw from one identifier namespace, so a single
	// seen set catches duplicates within and across both lists.
	seen := make(map[graph.ID]struct{}, len(doc.Nodes)+len(doc.Edges))
	var highest uint64
	replay := make([]graph.ID, 0, len(doc.Nodes)+len(doc.Edges))
	for _, n := range doc.Nodes {
		if _, dup := seen[n.ID]; dup {
			return nil, fmt.Errorf("node %s: %w", n.ID, graph.ErrDuplicateID)
		}
		seen[n.ID] = struct{}{}
		replay = append(replay, n.ID)
		highest = max(highest, n.ID.Value())
	}
	for _, e := range doc.Edges {
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("edge %s: %w", e.ID, graph.ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
		replay = append(replay, e.ID)
		highest = max(highest, e.ID.Value())
	}
	next := uint64(0)
	if len(replay) > 0 {
		next = highest + 1
	}

	g := graph.New[scan.Entry, scan.Link](
		graph.WithGenerator(newReplayGenerator(replay, next)),
	)
	for _, n := range doc.Nodes {
		g.AddNode(n.Entry)
	}
	for _, e := range doc.Edges {
		rel, ok := relationValues[e.Relation]
		if !ok {
			return nil, fmt.Errorf("edge %s: unknown relation %q", e.ID, e.Relation)
		}
		if _, err := g.AddEdge(e.Src, e.Dest, rel, e.Data); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.Src, e.Dest, err)
		}
	}
	if doc.Root != nil {
		if err := g.SetRoot(*doc.Root); err != nil {
			return nil, fmt.Errorf("root %s: %w", *doc.Root, err)
		}
	}
	return g, nil
}

// Import reads a JSON file at path and returns the decoded graph.
func Import(path string) (*graph.Graph[scan.Entry, scan.Link], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// replayGenerator first replays a fixed ID sequence (the serialized
// identifiers, in insertion order), then falls through to a fresh
// counter seeded past the highest replayed value.
type replayGenerator struct {
	queue []graph.ID
	tail  graph.Generator
}

func newReplayGenerator(queue []graph.ID, next uint64) *replayGenerator {
	return &replayGenerator{queue: queue, tail: graph.NewGeneratorAt(next)}
}

func (g *replayGenerator) Mint() graph.ID {
	if len(g.queue) > 0 {
		id := g.queue[0]
		g.queue = g.queue[1:]
		return id
	}
	return g.tail.Mint()
}

func compareIDs(a, b graph.ID) int {
	switch {
	case a.Value() < b.Value():
		return -1
	case a.Value() > b.Value():
		return 1
	default:
		return 0
	}
}
