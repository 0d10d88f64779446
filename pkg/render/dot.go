// Package render turns scan graphs into Graphviz DOT and rasterized
// output formats.
//
// [ToDOT] emits a deterministic DOT description of the containment
// graph (directories as folders, files as notes). [RenderSVG] and
// [RenderPNG] feed that DOT through the embedded Graphviz engine.
// The renderer only reads the graph; it is the consumer side of the
// core and never mutates it.
package render

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/fsgraph/pkg/graph"
	"github.com/matzehuels/fsgraph/pkg/scan"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes entry sizes and relative paths in node labels.
	// When false, only the base name is shown.
	Detailed bool

	// RankDir sets the graph direction ("TB", "LR", ...). Empty means "TB".
	RankDir string
}

// ToDOT converts a scan graph to Graphviz DOT format.
// Nodes are emitted in ID order and edges in (src, dest) order, so the
// output is deterministic for a given graph. Undirected edges are
// emitted once with dir=none.
func ToDOT(g *graph.Graph[scan.Entry, scan.Link], opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph fsgraph {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	slices.SortFunc(nodes, func(a, b graph.Node[scan.Entry]) int {
		return cmp.Compare(a.ID().Value(), b.ID().Value())
	})

	root, hasRoot := g.Root()
	for _, n := range nodes {
		attrs := nodeAttrs(n.Data(), opts.Detailed)
		if hasRoot && n.ID() == root {
			attrs = append(attrs, "penwidth=2")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID().Value(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	edges := g.Edges()
	slices.SortFunc(edges, func(a, b graph.Edge[scan.Link]) int {
		if c := cmp.Compare(a.Src().Value(), b.Src().Value()); c != 0 {
			return c
		}
		return cmp.Compare(a.Dest().Value(), b.Dest().Value())
	})
	for _, e := range edges {
		if e.Relation() == graph.Undirected {
			fmt.Fprintf(&buf, "  n%d -> n%d [dir=none];\n", e.Src().Value(), e.Dest().Value())
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.Src().Value(), e.Dest().Value())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(entry scan.Entry, detailed bool) []string {
	label := entry.Name
	if detailed {
		label = entry.Path
		if entry.Kind == scan.KindFile {
			label = fmt.Sprintf("%s\n%d B", entry.Path, entry.Size)
		}
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch entry.Kind {
	case scan.KindDirectory:
		attrs = append(attrs, "shape=folder", "fillcolor=lightyellow")
	default:
		attrs = append(attrs, "shape=note")
	}
	return attrs
}
