// Package graph provides a generic in-memory graph with minted
// identifiers.
//
// # Overview
//
// A [Graph] stores nodes and directed or undirected edges, each
// identified by an opaque [ID] minted from the graph's own [Generator].
// Node and edge payloads are type parameters, so the container carries
// arbitrary domain data without reflection:
//
//	g := graph.New[string, string]()
//	a := g.AddNode("src")
//	b := g.AddNode("dst")
//	id, err := g.Connect(a, b, "contains")
//
// # Identifiers
//
// IDs are immutable integer-backed value types. The default generator
// is an atomic counter: minting is safe from multiple goroutines, never
// duplicates, and is strictly increasing. Every graph owns a private
// generator, so unrelated graphs never share an identifier namespace.
// Serialized IDs are bare non-negative integers; [FromValue] rebuilds
// them on import.
//
// # Edges
//
// [Graph.AddEdge] and [Graph.RemoveEdge] are the low-level primitives
// and permit parallel edges. [Graph.Connect] and [Graph.Disconnect] are
// the canonical entry points: Connect is idempotent (an existing edge
// is returned instead of duplicated) and Disconnect fails loudly with
// [ErrEdgeNotFound] rather than silently doing nothing.
//
// Undirected edges are stored as a mirrored pair of records sharing one
// ID, one per endpoint, so [Graph.HasEdge] and [Graph.EdgesFrom] stay
// O(outgoing edges) from either side.
//
// # Removal
//
// [Graph.RemoveNode] cascades: it deletes the node, its adjacency
// entry, and every edge elsewhere that targets it, so the graph never
// holds dangling edges.
//
// # Concurrency
//
// Graphs follow a single-writer/multiple-reader discipline. Callers
// must serialize mutations against each other and against reads, e.g.
// with an external mutex or by confining the graph to one goroutine.
// Minting is the only internally synchronized operation.
package graph
