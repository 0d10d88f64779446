package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fsgraph/pkg/errors"
	"github.com/matzehuels/fsgraph/pkg/graph"
	"github.com/matzehuels/fsgraph/pkg/graphio"
	"github.com/matzehuels/fsgraph/pkg/observability"
	"github.com/matzehuels/fsgraph/pkg/render"
	"github.com/matzehuels/fsgraph/pkg/scan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "dot", "svg", "png"
	detailed bool     // include sizes and paths in node labels
	rankDir  string   // graphviz rank direction (TB, LR, BT, RL)
}

// newRenderCmd creates the render command for generating visualizations
// from a scanned graph file.
//
// Default settings:
//   - format: svg
//   - rankdir: TB (root at the top)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{rankDir: "TB"}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a scanned graph to DOT, SVG, or PNG",
		Long: `Render reads a graph JSON file produced by "fsgraph scan" and generates
a Graphviz visualization. Directories are drawn as folders, files as notes,
and the scan root is outlined.

Examples:
  fsgraph render project.json                   # project.svg
  fsgraph render project.json -f png            # project.png
  fsgraph render project.json -f dot,svg,png    # all three
  fsgraph render project.json --detailed        # include file sizes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f); err != nil {
					return err
				}
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include sizes and paths in node labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", opts.rankDir, "layout direction: TB, LR, BT, RL")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .dot), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case "dot", "svg", "png":
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the graph from input and renders it to the requested formats.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	g, err := graphio.Import(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	if len(opts.formats) == 1 {
		outputPath := opts.output
		if outputPath == "" {
			outputPath = basePath("", input) + "." + opts.formats[0]
		}
		return renderAndWrite(ctx, g, opts.formats[0], outputPath, opts)
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		if err := renderAndWrite(ctx, g, format, base+"."+format, opts); err != nil {
			return err
		}
	}
	return nil
}

// renderAndWrite renders a single format and writes it to path.
func renderAndWrite(ctx context.Context, g *graph.Graph[scan.Entry, scan.Link], format, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := renderGraph(ctx, g, format, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", format, err)
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	logger.Infof("Generated %s", path)
	printFile(path)
	return nil
}

// renderGraph dispatches to the appropriate renderer based on format.
func renderGraph(ctx context.Context, g *graph.Graph[scan.Entry, scan.Link], format string, opts *renderOpts) (data []byte, err error) {
	observability.Scan().OnRenderStart(ctx, format)
	start := time.Now()
	defer func() { observability.Scan().OnRenderComplete(ctx, format, time.Since(start), err) }()

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed, RankDir: opts.rankDir})

	switch strings.ToLower(format) {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return render.RenderSVG(ctx, dot)
	case "png":
		return render.RenderPNG(ctx, dot)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
