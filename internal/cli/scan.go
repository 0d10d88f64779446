package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fsgraph/pkg/cache"
	"github.com/matzehuels/fsgraph/pkg/errors"
	"github.com/matzehuels/fsgraph/pkg/graph"
	"github.com/matzehuels/fsgraph/pkg/graphio"
	"github.com/matzehuels/fsgraph/pkg/observability"
	"github.com/matzehuels/fsgraph/pkg/scan"
	"github.com/matzehuels/fsgraph/pkg/snapshot"
)

// scanOpts holds the command-line flags for the scan command.
// Zero values mean "use the config file default".
type scanOpts struct {
	maxDepth    int      // maximum directory depth to descend
	hidden      bool     // include dot-prefixed entries
	symlinks    bool     // follow symbolic links
	ignore      []string // extra gitignore-style patterns
	noGitignore bool     // skip loading the root .gitignore
	refresh     bool     // bypass the scan cache
	output      string   // output file path (stdout if empty)
}

// newScanCmd creates the scan command.
//
// Default options come from the config file:
//   - maxDepth: 32 levels
//   - gitignore: respected
//   - hidden entries: excluded
//
// Results are cached keyed by path and options; use --refresh to force
// a fresh walk.
func newScanCmd() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory tree into a containment graph",
		Long: `Scan walks a directory tree and emits its containment graph as JSON.

Each file and directory becomes a node; each parent directory is connected
to its children with a "contains" edge. The output can be rendered with
"fsgraph render" or browsed with "fsgraph browse".

Examples:
  fsgraph scan .                            # Scan the current directory to stdout
  fsgraph scan ~/project -o project.json    # Write the graph to a file
  fsgraph scan . --ignore 'node_modules/'   # Add an ignore pattern
  fsgraph scan . --hidden --no-gitignore    # Include everything`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum directory depth (default from config)")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "include hidden (dot-prefixed) entries")
	cmd.Flags().BoolVar(&opts.symlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().StringSliceVar(&opts.ignore, "ignore", nil, "gitignore-style patterns to exclude (repeatable)")
	cmd.Flags().BoolVar(&opts.noGitignore, "no-gitignore", false, "do not apply the root .gitignore")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the scan cache")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// scanOptions merges flags with config file defaults into scan.Options.
func (o *scanOpts) scanOptions(cfg Config) scan.Options {
	maxDepth := o.maxDepth
	if maxDepth == 0 {
		maxDepth = cfg.Scan.MaxDepth
	}
	return scan.Options{
		MaxDepth:       maxDepth,
		IncludeHidden:  o.hidden || cfg.Scan.IncludeHidden,
		FollowSymlinks: o.symlinks || cfg.Scan.FollowSymlinks,
		Ignore:         append(append([]string(nil), cfg.Scan.Ignore...), o.ignore...),
		UseGitignore:   cfg.Scan.Gitignore && !o.noGitignore,
	}
}

// runScan walks dir (or loads a cached result) and writes the graph JSON.
func runScan(ctx context.Context, dir string, opts *scanOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	if err := errors.ValidateScanPath(dir); err != nil {
		return err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	walkOpts := opts.scanOptions(cfg)
	if walkOpts.MaxDepth > 0 {
		if err := errors.ValidateDepth(walkOpts.MaxDepth); err != nil {
			return err
		}
	}

	c, err := openCache(ctx, cfg)
	if err != nil {
		logger.Warnf("Cache disabled: %v", err)
		c = cache.NewNullCache()
	}
	defer c.Close()

	key := cache.ScanKey(abs,
		walkOpts.MaxDepth,
		walkOpts.IncludeHidden,
		walkOpts.FollowSymlinks,
		walkOpts.UseGitignore,
		strings.Join(walkOpts.Ignore, ","),
	)

	snap, cached := loadCached(ctx, c, key, opts.refresh, logger)
	if !cached {
		snap, err = doScan(ctx, abs, walkOpts)
		if err != nil {
			return err
		}
		storeCached(ctx, c, key, snap, cfg, logger)
	}

	g, err := snap.Decode()
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := writeGraph(g, opts.output, logger); err != nil {
		return err
	}

	printStats(snap.Stats.Files, snap.Stats.Dirs, snap.Stats.Skipped, cached)
	if opts.output != "" {
		printNextStep("Render it", fmt.Sprintf("%s render %s", appName, opts.output))
	}
	return nil
}

// loadCached returns a cached snapshot for key, if one exists and refresh
// is not set. Cache failures degrade to a fresh scan.
func loadCached(ctx context.Context, c cache.Cache, key string, refresh bool, logger interface{ Debugf(string, ...any) }) (*snapshot.Snapshot, bool) {
	if refresh {
		return nil, false
	}
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "scan")
		return nil, false
	}
	snap, err := snapshot.Unmarshal(data)
	if err != nil {
		logger.Debugf("Ignoring invalid cache entry: %v", err)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "scan")
	logger.Debugf("Cache hit for %s", key)
	return snap, true
}

// storeCached writes the snapshot to the cache; failures are logged, not fatal.
func storeCached(ctx context.Context, c cache.Cache, key string, snap *snapshot.Snapshot, cfg Config, logger interface{ Debugf(string, ...any) }) {
	data, err := snap.Marshal()
	if err != nil {
		logger.Debugf("Cache encode failed: %v", err)
		return
	}
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	if err := c.Set(ctx, key, data, ttl); err != nil {
		logger.Debugf("Cache write failed: %v", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "scan", len(data))
}

// doScan runs the walk with a spinner and captures the result as a snapshot.
func doScan(ctx context.Context, dir string, opts scan.Options) (*snapshot.Snapshot, error) {
	logger := loggerFromContext(ctx)
	logger.Infof("Scanning %s", dir)

	sp := newSpinner(ctx, fmt.Sprintf("Scanning %s", dir))
	sp.Start()

	observability.Scan().OnScanStart(ctx, dir)
	prog := newProgress(logger)
	res, err := scan.Scan(ctx, dir, opts)
	observability.Scan().OnScanComplete(ctx, dir, nodeCount(res), time.Since(prog.start), err)
	if err != nil {
		sp.StopWithError(fmt.Sprintf("Scan failed: %v", err))
		return nil, err
	}
	sp.Stop()
	prog.done(fmt.Sprintf("Scanned %d files and %d directories", res.Stats.Files, res.Stats.Dirs))

	return snapshot.Take(dir, res)
}

// nodeCount is nil-safe for failed scans.
func nodeCount(res *scan.Result) int {
	if res == nil {
		return 0
	}
	return res.Graph.NodeCount()
}

// writeGraph serializes g as JSON to the specified path (or stdout if empty).
// The logger is notified on success with the output path.
func writeGraph(g *graph.Graph[scan.Entry, scan.Link], path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := graphio.Write(g, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote graph to %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
