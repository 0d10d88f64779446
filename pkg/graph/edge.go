package graph

// Relation is the kind of an edge: directed or undirected.
type Relation int

const (
	// Directed edges point from a source node to a destination node
	// and are consulted from the source endpoint only.
	Directed Relation = iota
	// Undirected edges are bidirectional. The graph stores them as a
	// mirrored pair - one record per endpoint, sharing one edge ID -
	// so lookups from either endpoint are O(outgoing edges).
	Undirected
)

// String returns "directed" or "undirected".
func (r Relation) String() string {
	if r == Undirected {
		return "undirected"
	}
	return "directed"
}

// Edge is a connection between two nodes: an identity, the identities
// of its endpoints, the relation kind, and an opaque payload.
// Edges are created by [Graph.AddEdge] or [Graph.Connect].
type Edge[E any] struct {
	id       ID
	src      ID
	dest     ID
	relation Relation
	data     E
}

// NewEdge constructs an edge record. Most callers should use
// [Graph.AddEdge], which mints the identity and maintains the
// adjacency index.
func NewEdge[E any](id, src, dest ID, relation Relation, data E) Edge[E] {
	return Edge[E]{id: id, src: src, dest: dest, relation: relation, data: data}
}

// ID returns the edge's unique identifier. The two records of an
// undirected mirror pair share one ID.
func (e Edge[E]) ID() ID { return e.id }

// Src returns the ID of the node the edge originates from.
func (e Edge[E]) Src() ID { return e.src }

// Dest returns the ID of the node the edge points to.
func (e Edge[E]) Dest() ID { return e.dest }

// Relation returns whether the edge is directed or undirected.
func (e Edge[E]) Relation() Relation { return e.relation }

// Data returns the payload stored on the edge.
func (e Edge[E]) Data() E { return e.data }

// Vertices returns the source, destination, and relation of the edge.
func (e Edge[E]) Vertices() (src, dest ID, relation Relation) {
	return e.src, e.dest, e.relation
}
