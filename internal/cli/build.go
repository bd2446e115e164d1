package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maskforge/maskforge/pkg/library"
	"github.com/maskforge/maskforge/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	sets      []string // -s key=value parameter overrides
	paramJSON string   // --params raw JSON object
	netlist   string   // netlist output path
	svg       string   // mask SVG output path
	dot       string   // hierarchy DOT output path
	graph     string   // rendered hierarchy SVG output path
	store     bool     // persist the design to the local library
	refresh   bool     // bypass artifact cache reads
	scale     float64  // SVG pixels per micron
	detailed  bool     // annotate hierarchy diagrams
}

// buildCommand creates the build command: run one factory through the
// pipeline and write the requested artifacts.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "build <component>",
		Short: "Build a component and write its artifacts",
		Long: `Build a component through the staged pipeline: construct the cell
(memoized per parameter set), extract its netlist, and render the formats
you asked for. Derived artifacts are cached on disk, so repeat builds of
the same parameters are served from cache.

Parameters can be given as repeated -s key=value pairs, as a single
--params JSON object, or both (-s wins on conflict). Values in -s pairs
are parsed as JSON when possible, so numbers and booleans come through
typed; everything else is a string.

Examples:
  maskforge build straight
  maskforge build straight -s length=25 --svg straight.svg
  maskforge build contra_dc --params '{"periods": 400}' --netlist out.json
  maskforge build bend_circular -s angle=180 --svg bend.svg --dot bend.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.sets, "set", "s", nil, "set a parameter (key=value, repeatable)")
	cmd.Flags().StringVar(&opts.paramJSON, "params", "", "parameters as a JSON object")
	cmd.Flags().StringVar(&opts.netlist, "netlist", "", "write the design netlist JSON to this path")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write the rendered mask SVG to this path")
	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the hierarchy diagram DOT source to this path")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "write the rendered hierarchy diagram SVG to this path")
	cmd.Flags().BoolVar(&opts.store, "store", false, "store the design in the local library")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute artifacts, bypassing the cache")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "mask SVG pixels per micron")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "annotate hierarchy diagrams with geometry counts")

	return cmd
}

func (c *CLI) runBuild(cmd *cobra.Command, component string, opts *buildOpts) error {
	ctx := cmd.Context()

	params, err := buildParams(opts.paramJSON, opts.sets)
	if err != nil {
		return err
	}

	outputs := opts.outputPaths()
	formats := make([]string, 0, len(outputs))
	for format := range outputs {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	if len(formats) == 0 {
		formats = []string{pipeline.FormatNetlist}
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Factory:  component,
		Params:   params,
		Refresh:  opts.refresh,
		Formats:  formats,
		Scale:    opts.scale,
		Detailed: opts.detailed,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Built %s", StyleHighlight.Render(result.Component.Name()))
	printStats(result.Stats.Cells, result.Stats.Ports, result.Stats.Polygons, result.CacheInfo.NetlistHit)
	printDetail("build %s · netlist %s · render %s",
		result.Stats.BuildTime.Round(time.Millisecond),
		result.Stats.NetlistTime.Round(time.Millisecond),
		result.Stats.RenderTime.Round(time.Millisecond))

	for _, format := range formats {
		path := outputs[format]
		if path == "" {
			continue
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	if opts.store {
		rec, err := c.storeDesign(ctx, result)
		if err != nil {
			return err
		}
		printInfo("Stored design %s", StyleHighlight.Render(rec.ID))
		printNextStep("Browse the library", appName+" serve")
	}

	return nil
}

// outputPaths maps each requested format to its output path. A format
// appears only when its flag was given.
func (o *buildOpts) outputPaths() map[string]string {
	outputs := map[string]string{}
	if o.netlist != "" {
		outputs[pipeline.FormatNetlist] = o.netlist
	}
	if o.svg != "" {
		outputs[pipeline.FormatSVG] = o.svg
	}
	if o.dot != "" {
		outputs[pipeline.FormatDOT] = o.dot
	}
	if o.graph != "" {
		outputs[pipeline.FormatGraph] = o.graph
	}
	return outputs
}

// storeDesign persists the build result to the file library under the
// XDG data directory.
func (c *CLI) storeDesign(ctx context.Context, result *pipeline.Result) (library.Record, error) {
	base, err := dataDir()
	if err != nil {
		return library.Record{}, err
	}
	store, err := library.NewFileStore(filepath.Join(base, "designs"))
	if err != nil {
		return library.Record{}, err
	}
	rec := library.NewRecord(result.Key, result.Design)
	if err := store.Put(ctx, rec); err != nil {
		return library.Record{}, err
	}
	return rec, nil
}

// buildParams merges --params JSON with -s overrides. Overrides win.
func buildParams(raw string, sets []string) (map[string]any, error) {
	params := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return nil, fmt.Errorf("parse --params: %w", err)
		}
	}
	for _, kv := range sets {
		key, val, err := parseSetFlag(kv)
		if err != nil {
			return nil, err
		}
		params[key] = val
	}
	return params, nil
}

// parseSetFlag splits a key=value pair. The value is decoded as JSON
// when it parses (numbers, booleans, quoted strings); otherwise it is
// taken as a bare string.
func parseSetFlag(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("invalid parameter %q (expected key=value)", kv)
	}
	raw = strings.TrimSpace(raw)
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return key, raw, nil
	}
	return key, v, nil
}
