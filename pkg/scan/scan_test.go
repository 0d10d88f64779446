package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fsgraph/pkg/graph"
)

// writeTree materializes a map of relative path -> content under dir.
// Keys ending in "/" create empty directories.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func findByPath(t *testing.T, res *Result, path string) graph.Node[Entry] {
	t.Helper()
	for _, n := range res.Graph.Nodes() {
		if n.Data().Path == path {
			return n
		}
	}
	t.Fatalf("no node for path %q", path)
	return graph.Node[Entry]{}
}

func TestScanBuildsContainmentGraph(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"main.go":        "package main",
		"pkg/lib.go":     "package pkg",
		"pkg/sub/x.go":   "package sub",
		"docs/README.md": "# docs",
	})

	res, err := Scan(context.Background(), dir, Options{})
	require.NoError(t, err)

	// root + pkg + pkg/sub + docs dirs, 4 files
	assert.Equal(t, 4, res.Stats.Files)
	assert.Equal(t, 4, res.Stats.Dirs)
	assert.Equal(t, 8, res.Graph.NodeCount())
	// every non-root entry has exactly one containment edge
	assert.Equal(t, 7, res.Graph.EdgeCount())

	root, ok := res.Graph.Root()
	require.True(t, ok)
	assert.Equal(t, res.Root, root)

	rootNode, ok := res.Graph.Node(root)
	require.True(t, ok)
	assert.Equal(t, ".", rootNode.Data().Path)
	assert.Equal(t, KindDirectory, rootNode.Data().Kind)

	pkg := findByPath(t, res, "pkg")
	sub := findByPath(t, res, filepath.Join("pkg", "sub"))
	assert.True(t, res.Graph.HasEdge(pkg.ID(), sub.ID()))
	assert.False(t, res.Graph.HasEdge(sub.ID(), pkg.ID()))

	lib := findByPath(t, res, filepath.Join("pkg", "lib.go"))
	assert.Equal(t, KindFile, lib.Data().Kind)
	assert.Equal(t, int64(len("package pkg")), lib.Data().Size)

	// containment edges carry the relation payload
	edges := res.Graph.EdgesFrom(pkg.ID())
	require.NotEmpty(t, edges)
	assert.Equal(t, Contains, edges[0].Data().Relation)
}

func TestScanSkipsHiddenByDefault(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".git/config": "x",
		".env":        "secret",
		"main.go":     "package main",
	})

	res, err := Scan(context.Background(), dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Files)
	assert.Equal(t, 2, res.Stats.Skipped) // .git dir (not descended) and .env

	withHidden, err := Scan(context.Background(), dir, Options{IncludeHidden: true})
	require.NoError(t, err)
	assert.Equal(t, 3, withHidden.Stats.Files)
}

func TestScanIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"build/out.bin": "x",
		"main.o":        "x",
		"main.go":       "package main",
	})

	res, err := Scan(context.Background(), dir, Options{
		Ignore: []string{"build/", "*.o"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Files)
	assert.Equal(t, 2, res.Stats.Skipped)
}

func TestScanUsesGitignore(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".gitignore":    "vendor/\n*.tmp\n",
		"vendor/dep.go": "x",
		"scratch.tmp":   "x",
		"main.go":       "package main",
	})

	res, err := Scan(context.Background(), dir, Options{UseGitignore: true})
	require.NoError(t, err)
	// .gitignore itself is hidden and skipped; vendor/ and *.tmp ignored
	assert.Equal(t, 1, res.Stats.Files)
	assert.Equal(t, 1, res.Stats.Dirs)
}

func TestScanMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a/b/c/deep.txt": "x",
		"top.txt":        "x",
	})

	res, err := Scan(context.Background(), dir, Options{MaxDepth: 2})
	require.NoError(t, err)
	// top.txt (1), a (1), a/b (2); a/b/c is depth 3 and skipped
	assert.Equal(t, 1, res.Stats.Files)
	assert.Equal(t, 3, res.Stats.Dirs)
	assert.Equal(t, 1, res.Stats.Skipped)
}

func TestScanProgress(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "x", "b.txt": "x"})

	var seen []string
	_, err := Scan(context.Background(), dir, Options{
		Progress: func(path string) { seen = append(seen, path) },
	})
	require.NoError(t, err)
	assert.Len(t, seen, 3) // root, a.txt, b.txt
}

func TestScanCancelled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txt": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, dir, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
		assert.Error(t, err)
	})

	t.Run("NotADirectory", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "f.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		_, err := Scan(context.Background(), file, Options{})
		assert.ErrorContains(t, err, "not a directory")
	})
}

func TestScanSymlinks(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"data/a.txt": "abc",
	})
	require.NoError(t, os.Symlink(filepath.Join(dir, "data"), filepath.Join(dir, "link")))

	t.Run("LeafByDefault", func(t *testing.T) {
		res, err := Scan(context.Background(), dir, Options{})
		require.NoError(t, err)

		// root + data dirs; a.txt plus the link recorded as a file
		assert.Equal(t, 2, res.Stats.Dirs)
		assert.Equal(t, 2, res.Stats.Files)
		link := findByPath(t, res, "link")
		assert.Equal(t, KindFile, link.Data().Kind)
	})

	t.Run("Followed", func(t *testing.T) {
		res, err := Scan(context.Background(), dir, Options{FollowSymlinks: true})
		require.NoError(t, err)

		// the link becomes a directory with the target's children
		assert.Equal(t, 3, res.Stats.Dirs)
		assert.Equal(t, 2, res.Stats.Files)
		link := findByPath(t, res, "link")
		assert.Equal(t, KindDirectory, link.Data().Kind)
		assert.Equal(t, "link", link.Data().Name)

		inner := findByPath(t, res, filepath.Join("link", "a.txt"))
		assert.Equal(t, int64(len("abc")), inner.Data().Size)
		assert.True(t, res.Graph.HasEdge(link.ID(), inner.ID()))
	})

	t.Run("FileTargetSize", func(t *testing.T) {
		require.NoError(t, os.Symlink(
			filepath.Join(dir, "data", "a.txt"), filepath.Join(dir, "flink")))
		res, err := Scan(context.Background(), dir, Options{FollowSymlinks: true})
		require.NoError(t, err)

		flink := findByPath(t, res, "flink")
		assert.Equal(t, KindFile, flink.Data().Kind)
		assert.Equal(t, int64(len("abc")), flink.Data().Size)
	})
}

func TestScanSymlinkCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"sub/f.txt": "x",
	})
	// points back at the scan root
	require.NoError(t, os.Symlink(dir, filepath.Join(dir, "sub", "up")))

	res, err := Scan(context.Background(), dir, Options{FollowSymlinks: true})
	require.NoError(t, err)

	// the cycle edge is dropped, everything else mapped once
	assert.Equal(t, 2, res.Stats.Dirs)
	assert.Equal(t, 1, res.Stats.Files)
	assert.Equal(t, 1, res.Stats.Skipped)
	assert.Equal(t, 3, res.Graph.NodeCount())
}

func TestScanBrokenSymlinkSkipped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")))

	res, err := Scan(context.Background(), dir, Options{FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Skipped)
	assert.Equal(t, 1, res.Graph.NodeCount())
}
