package graph

import (
	"errors"
	"testing"
)

func TestAddNodeMembership(t *testing.T) {
	g := New[string, string]()
	id := g.AddNode("alpha")

	if !g.HasNode(id) {
		t.Fatalf("HasNode(%s) = false after AddNode", id)
	}
	n, ok := g.Node(id)
	if !ok || n.Data() != "alpha" {
		t.Errorf("Node(%s) = %v, %v", id, n, ok)
	}
	if g.HasNode(FromValue(999)) {
		t.Error("HasNode reported an ID that was never added")
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name     string
		relation Relation
		wantAB   bool
		wantBA   bool
	}{
		{name: "DirectedAsymmetry", relation: Directed, wantAB: true, wantBA: false},
		{name: "UndirectedSymmetry", relation: Undirected, wantAB: true, wantBA: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New[string, string]()
			a := g.AddNode("a")
			b := g.AddNode("b")

			id, err := g.AddEdge(a, b, tt.relation, "link")
			if err != nil {
				t.Fatalf("AddEdge: %v", err)
			}
			if got := g.HasEdge(a, b); got != tt.wantAB {
				t.Errorf("HasEdge(a,b) = %v, want %v", got, tt.wantAB)
			}
			if got := g.HasEdge(b, a); got != tt.wantBA {
				t.Errorf("HasEdge(b,a) = %v, want %v", got, tt.wantBA)
			}
			if g.EdgeCount() != 1 {
				t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
			}

			edges := g.EdgesFrom(a)
			if len(edges) != 1 {
				t.Fatalf("EdgesFrom(a) has %d edges, want 1", len(edges))
			}
			e := edges[0]
			if e.ID() != id || e.Src() != a || e.Dest() != b || e.Relation() != tt.relation {
				t.Errorf("stored edge = %+v", e)
			}
			src, dest, rel := e.Vertices()
			if src != a || dest != b || rel != tt.relation {
				t.Errorf("Vertices() = %s, %s, %s", src, dest, rel)
			}
		})
	}
}

func TestAddEdgeMissingNode(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	missing := FromValue(404)

	before := g.NodeCount()
	if _, err := g.AddEdge(a, missing, Directed, "x"); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("AddEdge to missing dest: err = %v, want ErrNodeNotFound", err)
	}
	if _, err := g.AddEdge(missing, a, Directed, "x"); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("AddEdge from missing src: err = %v, want ErrNodeNotFound", err)
	}

	// State must be unchanged after a failed insertion.
	if g.NodeCount() != before || g.EdgeCount() != 0 {
		t.Errorf("graph mutated by failed AddEdge: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if g.HasEdge(a, missing) {
		t.Error("dangling edge inserted for missing destination")
	}
}

func TestUndirectedMirrorSharesID(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	id, err := g.AddEdge(a, b, Undirected, "peer")
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	fromB := g.EdgesFrom(b)
	if len(fromB) != 1 {
		t.Fatalf("EdgesFrom(b) has %d edges, want mirror record", len(fromB))
	}
	if fromB[0].ID() != id {
		t.Errorf("mirror ID = %s, want %s", fromB[0].ID(), id)
	}
	if fromB[0].Src() != b || fromB[0].Dest() != a {
		t.Errorf("mirror endpoints = %s->%s, want %s->%s", fromB[0].Src(), fromB[0].Dest(), b, a)
	}
	if len(g.Edges()) != 1 {
		t.Errorf("Edges() returned %d records, want mirrors collapsed to 1", len(g.Edges()))
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	c := g.AddNode("c")
	mustEdge(t, g, a, b)
	mustEdge(t, g, c, b)
	mustEdge(t, g, a, c)

	if err := g.RemoveNode(b); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}

	if g.HasNode(b) {
		t.Error("node still present after removal")
	}
	if g.HasEdge(a, b) || g.HasEdge(c, b) {
		t.Error("edges targeting the removed node survived")
	}
	if !g.HasEdge(a, c) {
		t.Error("unrelated edge was stripped")
	}
	if err := g.RemoveNode(b); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("second RemoveNode: err = %v, want ErrNodeNotFound", err)
	}
}

func TestRemoveEdge(t *testing.T) {
	t.Run("Directed", func(t *testing.T) {
		g := New[string, string]()
		a := g.AddNode("a")
		b := g.AddNode("b")
		mustEdge(t, g, a, b)

		if err := g.RemoveEdge(a, b); err != nil {
			t.Fatalf("RemoveEdge: %v", err)
		}
		if g.HasEdge(a, b) {
			t.Error("edge still present after removal")
		}
		if err := g.RemoveEdge(a, b); !errors.Is(err, ErrEdgeNotFound) {
			t.Errorf("second RemoveEdge: err = %v, want ErrEdgeNotFound", err)
		}
	})

	t.Run("UndirectedRemovesMirror", func(t *testing.T) {
		g := New[string, string]()
		a := g.AddNode("a")
		b := g.AddNode("b")
		if _, err := g.AddEdge(a, b, Undirected, "peer"); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}

		if err := g.RemoveEdge(a, b); err != nil {
			t.Fatalf("RemoveEdge: %v", err)
		}
		if g.HasEdge(b, a) {
			t.Error("mirror record survived removal")
		}
		if g.EdgeCount() != 0 {
			t.Errorf("EdgeCount() = %d after removal", g.EdgeCount())
		}
	})
}

func TestConnectIdempotent(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	first, err := g.Connect(a, b, "v1")
	if err != nil {
		t.Fatalf("first Connect: %v", err)
	}
	second, err := g.Connect(a, b, "v2")
	if err != nil {
		t.Fatalf("second Connect: %v", err)
	}

	if first != second {
		t.Errorf("Connect minted a new edge: %s then %s", first, second)
	}
	if edges := g.EdgesFrom(a); len(edges) != 1 {
		t.Errorf("adjacency holds %d edges, want exactly 1", len(edges))
	}
	// The original payload wins; the second call is a pure no-op.
	if got := g.EdgesFrom(a)[0].Data(); got != "v1" {
		t.Errorf("edge data = %q, want %q", got, "v1")
	}
}

func TestConnectMissingNode(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")

	if _, err := g.Connect(a, FromValue(404), "x"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Connect to missing node: err = %v, want ErrNodeNotFound", err)
	}
}

func TestDisconnect(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	if err := g.Disconnect(a, b); !errors.Is(err, ErrEdgeNotFound) {
		t.Fatalf("Disconnect with no edge: err = %v, want ErrEdgeNotFound", err)
	}

	if _, err := g.Connect(a, b, "link"); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := g.Disconnect(a, b); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if g.HasEdge(a, b) {
		t.Error("edge still present after Disconnect")
	}
}

func TestAddEdgeAllowsParallelEdges(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	b := g.AddNode("b")

	id1, _ := g.AddEdge(a, b, Directed, "x")
	id2, _ := g.AddEdge(a, b, Directed, "y")
	if id1 == id2 {
		t.Fatal("parallel edges share an ID")
	}
	if len(g.EdgesFrom(a)) != 2 {
		t.Errorf("adjacency holds %d edges, want 2", len(g.EdgesFrom(a)))
	}
}

func TestRoot(t *testing.T) {
	g := New[string, string]()
	if _, ok := g.Root(); ok {
		t.Error("fresh graph has a root")
	}
	if err := g.SetRoot(FromValue(1)); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("SetRoot on missing node: err = %v, want ErrNodeNotFound", err)
	}

	id := g.AddNode("top")
	if err := g.SetRoot(id); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if root, ok := g.Root(); !ok || root != id {
		t.Errorf("Root() = %s, %v", root, ok)
	}

	if err := g.RemoveNode(id); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if _, ok := g.Root(); ok {
		t.Error("root survived removal of the root node")
	}
}

func TestRemap(t *testing.T) {
	g := New[string, string]()
	a := g.AddNode("a")
	b := g.AddNode("b")
	mustEdge(t, g, a, b)
	if err := g.SetRoot(a); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	t.Run("MissingNode", func(t *testing.T) {
		err := g.Remap(map[ID]ID{FromValue(404): FromValue(500)})
		if !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("err = %v, want ErrNodeNotFound", err)
		}
	})

	t.Run("Collision", func(t *testing.T) {
		err := g.Remap(map[ID]ID{a: b})
		if !errors.Is(err, ErrDuplicateID) {
			t.Errorf("err = %v, want ErrDuplicateID", err)
		}
		if !g.HasNode(a) || !g.HasEdge(a, b) {
			t.Error("graph mutated by failed Remap")
		}
	})

	t.Run("Renumber", func(t *testing.T) {
		newA := FromValue(100)
		if err := g.Remap(map[ID]ID{a: newA}); err != nil {
			t.Fatalf("Remap: %v", err)
		}
		if g.HasNode(a) {
			t.Error("old ID still present")
		}
		if !g.HasNode(newA) || !g.HasEdge(newA, b) {
			t.Error("node or edge not renumbered")
		}
		if root, ok := g.Root(); !ok || root != newA {
			t.Errorf("root not remapped: %s, %v", root, ok)
		}
	})
}

// TestFreshGraphScenario walks the end-to-end contract: a fresh
// generator mints 0,1,2; the next AddNode gets 3; connecting to a
// never-added ID fails without side effects.
func TestFreshGraphScenario(t *testing.T) {
	gen := NewGenerator()
	g := New[string, string](WithGenerator(gen))

	for want := uint64(0); want < 3; want++ {
		if got := gen.Mint().Value(); got != want {
			t.Fatalf("Mint() = %d, want %d", got, want)
		}
	}

	root := g.AddNode("root")
	if root.Value() != 3 {
		t.Fatalf("AddNode minted %s, want 3", root)
	}
	if !g.HasNode(root) {
		t.Fatal("HasNode(3) = false")
	}

	phantom := FromValue(4)
	if _, err := g.Connect(root, phantom, "label"); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("Connect to phantom: err = %v, want ErrNodeNotFound", err)
	}
	if g.HasEdge(root, phantom) {
		t.Error("HasEdge(3,4) = true after failed Connect")
	}
}

func TestSeparateGraphsSeparateNamespaces(t *testing.T) {
	g1 := New[string, string]()
	g2 := New[string, string]()

	// Both graphs start minting from zero: generators are per graph,
	// not process wide.
	if id1, id2 := g1.AddNode("x"), g2.AddNode("y"); id1 != id2 {
		t.Errorf("fresh graphs minted %s and %s, want identical first IDs", id1, id2)
	}
}

func mustEdge(t *testing.T, g *Graph[string, string], src, dest ID) ID {
	t.Helper()
	id, err := g.AddEdge(src, dest, Directed, "edge")
	if err != nil {
		t.Fatalf("AddEdge(%s, %s): %v", src, dest, err)
	}
	return id
}
