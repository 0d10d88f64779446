package graph

// Node is a vertex in the graph: an identity plus an opaque payload.
// Nodes are created by [Graph.AddNode] and are passive records - they
// carry no behavior beyond their accessors and are never mutated after
// creation except through graph-level removal.
type Node[N any] struct {
	id   ID
	data N
}

// NewNode constructs a node with the given identity and payload.
// Most callers should use [Graph.AddNode], which mints the identity
// from the graph's own generator.
func NewNode[N any](id ID, data N) Node[N] {
	return Node[N]{id: id, data: data}
}

// ID returns the node's unique identifier.
func (n Node[N]) ID() ID { return n.id }

// Data returns the payload stored on the node.
func (n Node[N]) Data() N { return n.data }
