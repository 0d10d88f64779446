package graph

import (
	"errors"
	"slices"
)

var (
	// ErrNodeNotFound is returned when an operation references a node
	// ID that is not present in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned by [Graph.RemoveEdge] and
	// [Graph.Disconnect] when no edge connects the given endpoints.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrDuplicateID is returned by [Graph.Remap] when a remapping
	// would assign the same ID to two different nodes.
	ErrDuplicateID = errors.New("duplicate node ID")
)

// Option configures a Graph created by [New].
type Option func(*config)

type config struct {
	gen Generator
}

// WithGenerator makes the graph mint identifiers from gen instead of
// the default atomic counter. This is the substitution point for
// deterministic generators in tests.
func WithGenerator(gen Generator) Option {
	return func(c *config) { c.gen = gen }
}

// Graph is an in-memory container of identifiable nodes and edges.
// N is the node payload type and E the edge payload type.
//
// The graph owns a [Generator] and mints a fresh ID for every node and
// edge it creates, so identifiers are unique across both kinds within
// one graph. Edges are kept in per-source adjacency lists in insertion
// order.
//
// The zero value is not usable - use [New]. Graph is not safe for
// concurrent use: callers must serialize mutations against each other
// and against reads (single-writer discipline). Only Mint on the
// underlying generator is internally synchronized.
type Graph[N, E any] struct {
	nodes     map[ID]Node[N]
	adjacency map[ID][]Edge[E]
	gen       Generator
	root      ID
	hasRoot   bool
}

// New creates an empty graph with its own identifier generator.
func New[N, E any](opts ...Option) *Graph[N, E] {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.gen == nil {
		cfg.gen = NewGenerator()
	}
	return &Graph[N, E]{
		nodes:     make(map[ID]Node[N]),
		adjacency: make(map[ID][]Edge[E]),
		gen:       cfg.gen,
	}
}

// AddNode mints an identifier, stores a node with the given payload,
// and seeds an empty adjacency entry for it. The minted ID is returned.
func (g *Graph[N, E]) AddNode(data N) ID {
	id := g.gen.Mint()
	g.nodes[id] = NewNode(id, data)
	if _, ok := g.adjacency[id]; !ok {
		g.adjacency[id] = nil
	}
	return id
}

// AddEdge mints an identifier and appends an edge from src to dest to
// the source node's adjacency list. For [Undirected] edges a mirrored
// record (same ID, swapped endpoints) is also appended to the
// destination's list, so the edge is visible from both sides.
//
// Both endpoints must already exist; otherwise ErrNodeNotFound is
// returned and the graph is left unchanged. Multiple edges between the
// same pair are allowed - use [Graph.Connect] for the at-most-one
// contract.
func (g *Graph[N, E]) AddEdge(src, dest ID, relation Relation, data E) (ID, error) {
	if _, ok := g.nodes[src]; !ok {
		return 0, ErrNodeNotFound
	}
	if _, ok := g.nodes[dest]; !ok {
		return 0, ErrNodeNotFound
	}
	id := g.gen.Mint()
	g.adjacency[src] = append(g.adjacency[src], NewEdge(id, src, dest, relation, data))
	if relation == Undirected && src != dest {
		g.adjacency[dest] = append(g.adjacency[dest], NewEdge(id, dest, src, relation, data))
	}
	return id, nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph[N, E]) HasNode(id ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether any edge runs from src to dest. Undirected
// edges are visible from both endpoints. Returns false if src does not
// exist.
func (g *Graph[N, E]) HasEdge(src, dest ID) bool {
	for _, e := range g.adjacency[src] {
		if e.dest == dest {
			return true
		}
	}
	return false
}

// Node returns the node with the given ID, or false if it is absent.
func (g *Graph[N, E]) Node(id ID) (Node[N], bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// RemoveNode deletes the node, its adjacency entry, and every edge
// elsewhere in the graph that targets it (cascade deletion). If the
// node was the root, the root is cleared. Returns ErrNodeNotFound if
// the node does not exist.
func (g *Graph[N, E]) RemoveNode(id ID) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	delete(g.nodes, id)
	delete(g.adjacency, id)
	for src := range g.adjacency {
		g.adjacency[src] = slices.DeleteFunc(g.adjacency[src], func(e Edge[E]) bool {
			return e.dest == id
		})
	}
	if g.hasRoot && g.root == id {
		g.hasRoot = false
	}
	return nil
}

// RemoveEdge removes the first edge from src to dest. If that edge is
// undirected, its mirror record on the destination side is removed as
// well. Returns ErrEdgeNotFound if no such edge exists; succeeding as
// a no-op is deliberately not an option.
func (g *Graph[N, E]) RemoveEdge(src, dest ID) error {
	idx := slices.IndexFunc(g.adjacency[src], func(e Edge[E]) bool {
		return e.dest == dest
	})
	if idx < 0 {
		return ErrEdgeNotFound
	}
	removed := g.adjacency[src][idx]
	g.adjacency[src] = slices.Delete(g.adjacency[src], idx, idx+1)
	if removed.relation == Undirected && src != dest {
		g.adjacency[dest] = slices.DeleteFunc(g.adjacency[dest], func(e Edge[E]) bool {
			return e.id == removed.id
		})
	}
	return nil
}

// Connect is the idempotent edge-creation entry point: if an edge from
// src to dest already exists, its ID is returned and no new edge is
// created; otherwise a [Directed] edge is added via [Graph.AddEdge].
// Connect enforces at-most-one-edge-per-ordered-pair as a contract,
// while AddEdge remains available for callers that explicitly want
// multigraphs.
func (g *Graph[N, E]) Connect(src, dest ID, data E) (ID, error) {
	for _, e := range g.adjacency[src] {
		if e.dest == dest {
			return e.id, nil
		}
	}
	return g.AddEdge(src, dest, Directed, data)
}

// Disconnect removes the edge from src to dest via [Graph.RemoveEdge].
// It fails with ErrEdgeNotFound when there is nothing to remove.
func (g *Graph[N, E]) Disconnect(src, dest ID) error {
	return g.RemoveEdge(src, dest)
}

// Root returns the distinguished root node ID, if one is set.
func (g *Graph[N, E]) Root() (ID, bool) {
	return g.root, g.hasRoot
}

// SetRoot marks an existing node as the graph's root.
// Returns ErrNodeNotFound if the node does not exist.
func (g *Graph[N, E]) SetRoot(id ID) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	g.root = id
	g.hasRoot = true
	return nil
}

// Nodes returns all nodes in the graph. The order is not guaranteed.
func (g *Graph[N, E]) Nodes() []Node[N] {
	nodes := make([]Node[N], 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// EdgesFrom returns the outgoing edges of the given node in insertion
// order. The returned slice must not be modified. Returns nil for an
// unknown node.
func (g *Graph[N, E]) EdgesFrom(id ID) []Edge[E] {
	return g.adjacency[id]
}

// Edges returns every logical edge in the graph. Undirected mirror
// pairs are collapsed to a single record. The order is not guaranteed.
func (g *Graph[N, E]) Edges() []Edge[E] {
	seen := make(map[ID]struct{})
	var edges []Edge[E]
	for _, list := range g.adjacency {
		for _, e := range list {
			if _, dup := seen[e.id]; dup {
				continue
			}
			seen[e.id] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph[N, E]) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of logical edges in the graph.
// An undirected edge counts once, not once per mirror record.
func (g *Graph[N, E]) EdgeCount() int {
	seen := make(map[ID]struct{})
	for _, list := range g.adjacency {
		for _, e := range list {
			seen[e.id] = struct{}{}
		}
	}
	return len(seen)
}

// Remap renumbers nodes according to mapping (old ID to new ID) and
// rewrites every edge endpoint accordingly. Nodes absent from mapping
// keep their IDs. This is the explicit replacement for mutating an
// identifier in place, which IDs do not allow.
//
// Returns ErrNodeNotFound if a mapping key is not a node, or
// ErrDuplicateID if the mapping would make two nodes share an ID.
// On error the graph is left unchanged. Edge IDs are not remapped.
func (g *Graph[N, E]) Remap(mapping map[ID]ID) error {
	for old := range mapping {
		if _, ok := g.nodes[old]; !ok {
			return ErrNodeNotFound
		}
	}
	resolve := func(id ID) ID {
		if next, ok := mapping[id]; ok {
			return next
		}
		return id
	}
	taken := make(map[ID]struct{}, len(g.nodes))
	for id := range g.nodes {
		next := resolve(id)
		if _, dup := taken[next]; dup {
			return ErrDuplicateID
		}
		taken[next] = struct{}{}
	}

	nodes := make(map[ID]Node[N], len(g.nodes))
	for id, n := range g.nodes {
		next := resolve(id)
		nodes[next] = NewNode(next, n.data)
	}
	adjacency := make(map[ID][]Edge[E], len(g.adjacency))
	for src, list := range g.adjacency {
		remapped := make([]Edge[E], len(list))
		for i, e := range list {
			remapped[i] = NewEdge(e.id, resolve(e.src), resolve(e.dest), e.relation, e.data)
		}
		adjacency[resolve(src)] = remapped
	}
	g.nodes = nodes
	g.adjacency = adjacency
	if g.hasRoot {
		g.root = resolve(g.root)
	}
	return nil
}
