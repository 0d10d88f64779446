// Package scan maps directory trees into containment graphs.
//
// The scanner is the producer side of the graph core: it walks a
// directory, adds one node per entry, and connects each directory to
// its direct children with [Contains] edges. The scan root becomes the
// graph's root node. Every scan builds a fresh graph with a fresh
// identifier generator.
//
// Traversal honors .gitignore files (optional), explicit ignore
// patterns, a depth limit, and hidden-file filtering. The walk is
// cancellable through the context.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/matzehuels/fsgraph/pkg/graph"
)

// DefaultMaxDepth bounds traversal when Options.MaxDepth is zero.
const DefaultMaxDepth = 32

// Options controls the traversal.
type Options struct {
	// MaxDepth limits how many levels below the root are visited.
	// Zero means DefaultMaxDepth; negative means unlimited.
	MaxDepth int

	// IncludeHidden visits dot-prefixed files and directories.
	IncludeHidden bool

	// FollowSymlinks resolves symbolic links during the walk. Linked
	// directories are descended into (each resolved target at most
	// once, so link cycles terminate) and linked files report their
	// target's size. When false, links are recorded as plain file
	// entries.
	FollowSymlinks bool

	// Ignore holds gitignore-style patterns applied on top of any
	// .gitignore file (e.g. "node_modules/", "*.o").
	Ignore []string

	// UseGitignore loads <root>/.gitignore and applies it during the
	// walk. A missing file is not an error.
	UseGitignore bool

	// Progress, when non-nil, is invoked once per added entry with its
	// root-relative path. It must be fast; it runs inline in the walk.
	Progress func(path string)
}

// Scan walks the directory tree rooted at dir and returns the
// containment graph. The root directory is always included and set as
// the graph root. Entries excluded by options are counted in
// Stats.Skipped; excluded directories are not descended into.
//
// Scan fails if dir does not exist or is not a directory, or when ctx
// is cancelled mid-walk.
func Scan(ctx context.Context, dir string, opts Options) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", dir)
	}

	matcher, err := buildMatcher(dir, opts)
	if err != nil {
		return nil, err
	}

	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	g := graph.New[Entry, Link]()
	res := &Result{Graph: g}

	// Directory path -> node ID, for connecting children to parents.
	parents := make(map[string]graph.ID)

	// Resolved targets already being walked, to cut link cycles when
	// FollowSymlinks is set.
	visited := make(map[string]struct{})
	if opts.FollowSymlinks {
		if real, err := filepath.EvalSymlinks(dir); err == nil {
			visited[real] = struct{}{}
		}
	}

	// walk runs one WalkDir pass rooted at root. A non-empty prefix
	// means root is the resolved target of a symlink whose
	// root-relative path is prefix; entries inside it are mapped under
	// that path.
	var walk func(root, prefix string) error
	walk = func(root, prefix string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return fmt.Errorf("rel %s: %w", path, err)
			}
			atRoot := rel == "."
			if prefix != "" {
				if atRoot {
					rel = prefix
				} else {
					rel = filepath.Join(prefix, rel)
				}
			}

			// The walk root is never filtered: the scan root is always
			// included, and a followed link was vetted at the link itself.
			if !atRoot {
				if skip := shouldSkip(rel, d, opts, matcher, maxDepth); skip {
					res.Stats.Skipped++
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}

			name := d.Name()
			if atRoot && prefix != "" {
				// Keep the link's own name, not its target's.
				name = filepath.Base(rel)
			}

			entry := Entry{Path: rel, Name: name, Kind: KindFile}
			isDir := d.IsDir()
			switch {
			case opts.FollowSymlinks && d.Type()&fs.ModeSymlink != 0:
				ti, err := os.Stat(path)
				if err != nil {
					// Broken link: nothing to map.
					res.Stats.Skipped++
					return nil
				}
				if ti.IsDir() {
					real, err := filepath.EvalSymlinks(path)
					if err != nil {
						res.Stats.Skipped++
						return nil
					}
					if _, cycle := visited[real]; cycle {
						res.Stats.Skipped++
						return nil
					}
					visited[real] = struct{}{}
					return walk(real, rel)
				}
				entry.Size = ti.Size()
			case isDir:
				entry.Kind = KindDirectory
			default:
				if fi, err := d.Info(); err == nil {
					entry.Size = fi.Size()
				}
			}

			id := g.AddNode(entry)
			if opts.Progress != nil {
				opts.Progress(rel)
			}

			if isDir {
				parents[rel] = id
				res.Stats.Dirs++
			} else {
				res.Stats.Files++
			}

			if rel == "." {
				res.Root = id
				if err := g.SetRoot(id); err != nil {
					return err
				}
				return nil
			}

			parent, ok := parents[filepath.Dir(rel)]
			if !ok {
				// WalkDir visits parents before children, so this is a bug.
				return fmt.Errorf("no parent node for %s", rel)
			}
			if _, err := g.Connect(parent, id, Link{Relation: Contains}); err != nil {
				return fmt.Errorf("connect %s: %w", rel, err)
			}
			return nil
		})
	}
	if err := walk(dir, ""); err != nil {
		return nil, err
	}
	return res, nil
}

// buildMatcher compiles the effective ignore rules: the root .gitignore
// (when requested) plus explicit patterns.
func buildMatcher(dir string, opts Options) (*ignore.GitIgnore, error) {
	if opts.UseGitignore {
		path := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(path); err == nil {
			m, err := ignore.CompileIgnoreFileAndLines(path, opts.Ignore...)
			if err != nil {
				return nil, fmt.Errorf("compile %s: %w", path, err)
			}
			return m, nil
		}
	}
	if len(opts.Ignore) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(opts.Ignore...), nil
}

func shouldSkip(rel string, d fs.DirEntry, opts Options, matcher *ignore.GitIgnore, maxDepth int) bool {
	if !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	if maxDepth >= 0 && depth(rel) > maxDepth {
		return true
	}
	if matcher != nil {
		// Gitignore directory patterns ("build/") need the trailing slash.
		p := filepath.ToSlash(rel)
		if d.IsDir() {
			p += "/"
		}
		if matcher.MatchesPath(p) {
			return true
		}
	}
	return false
}

// depth counts path components below the root: "a" is 1, "a/b" is 2.
func depth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
