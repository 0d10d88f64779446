// Package pkg provides the core libraries for fsgraph filesystem mapping.
//
// # Overview
//
// fsgraph turns directory trees into containment graphs: every file and
// directory becomes a node, and each parent directory is connected to its
// children. The pkg directory is organized into three main areas:
//
//  1. Domain logic (graph structure, scanning, serialization, rendering)
//  2. Infrastructure (caching, snapshot persistence)
//  3. Shared plumbing (structured errors, build info, observability hooks)
//
// # Architecture
//
// The typical data flow through fsgraph:
//
//	Directory tree
//	         ↓
//	    [scan] package (walk the tree, apply ignore rules)
//	         ↓
//	    [graph] package (generic graph container with minted IDs)
//	         ↓
//	    [graphio] package (JSON node-link serialization)
//	         ↓
//	    [render] package (DOT / SVG / PNG via Graphviz)
//
// # Quick Start
//
// Scan a directory and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/fsgraph/pkg/render"
//	    "github.com/matzehuels/fsgraph/pkg/scan"
//	)
//
//	// 1. Walk the tree
//	res, _ := scan.Scan(context.Background(), "/home/user/project", scan.Options{})
//
//	// 2. Render to SVG
//	dot := render.ToDOT(res.Graph, render.Options{})
//	svg, _ := render.RenderSVG(context.Background(), dot)
//
// # Main Packages
//
// [graph] - Generic directed/undirected graph container. Node and edge
// identifiers are minted per graph by an atomic [graph.Generator]; removal
// of a node cascades to its incident edges.
//
// [scan] - Directory traversal producing containment graphs. Supports depth
// limits, hidden-file filtering, and gitignore-style exclusion patterns.
//
// [graphio] - JSON node-link serialization. Imported graphs keep their
// serialized identifiers and mint fresh ones past the highest seen.
//
// [render] - Graphviz rendering. Directories are drawn as folders, files as
// notes, and the scan root is outlined.
//
// [snapshot] - Point-in-time captures of scan results, identified by UUID.
//
// [store] - Snapshot persistence with in-memory and MongoDB backends.
//
// [cache] - Scan result caching with file, Redis, and null backends, keyed
// by SHA-256 hashes of the scan inputs.
//
// [errors] - Structured errors with machine-readable codes shared by the
// CLI and the HTTP API.
//
// [buildinfo] - Version information injected via ldflags.
//
// [observability] - Optional instrumentation hooks for scans, rendering,
// and cache operations.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/graph/...   # Specific package
//	go test -run Example      # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/graph
// [graph.Generator]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/graph#Generator
// [scan]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/scan
// [graphio]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/graphio
// [render]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/render
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/snapshot
// [store]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/buildinfo
// [observability]: https://pkg.go.dev/github.com/matzehuels/fsgraph/pkg/observability
package pkg
