package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/maskforge/maskforge/pkg/artifact"
	"github.com/maskforge/maskforge/pkg/components"
	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
	"github.com/maskforge/maskforge/pkg/netlist"
	"github.com/maskforge/maskforge/pkg/render/mask"
	"github.com/maskforge/maskforge/pkg/render/nodelink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the caches and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache    artifact.Cache
	Keyer    artifact.Keyer
	Logger   *log.Logger
	Context  *cell.Context
	Registry *components.Registry
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (artifact caching disabled).
// The runner builds into a fresh cell context with the default registry;
// set the Context and Registry fields to share either across runners.
func NewRunner(c artifact.Cache, keyer artifact.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = artifact.NewDefaultKeyer()
	}
	if c == nil {
		c = artifact.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Context:  cell.NewContext(),
		Registry: components.DefaultRegistry(),
	}
}

// Execute runs the complete build → netlist → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	c, key, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Component = c
	result.Key = key
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Ports = len(c.Ports())
	result.CacheInfo.BuildHit = buildHit

	opts.Logger.Info("built component",
		"cell", c.Name(),
		"duration", result.Stats.BuildTime)

	// Stage 2: Netlist
	netlistStart := time.Now()
	design, netlistData, netlistHit, err := r.NetlistWithCacheInfo(ctx, key, c, opts)
	if err != nil {
		return nil, fmt.Errorf("netlist: %w", err)
	}
	result.Design = design
	result.Stats.NetlistTime = time.Since(netlistStart)
	result.Stats.Cells = len(design.Cells)
	result.Stats.Polygons = c.FlattenedPayload().PolygonCount()
	result.CacheInfo.NetlistHit = netlistHit
	if opts.WantsFormat(FormatNetlist) {
		result.Artifacts[FormatNetlist] = netlistData
	}

	opts.Logger.Info("extracted netlist",
		"cells", result.Stats.Cells,
		"duration", result.Stats.NetlistTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, key, c, design, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	for format, data := range artifacts {
		result.Artifacts[format] = data
	}
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo resolves the cell key, builds the component, and
// reports whether the cell cache already held it. The component itself is
// memoized in the runner's cell context rather than the artifact cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (*layout.Component, cell.Key, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, cell.Key{}, false, err
	}

	key, err := r.Registry.Key(opts.Factory, opts.Params)
	if err != nil {
		return nil, cell.Key{}, false, err
	}
	if c, ok := r.Context.Cache.Get(key); ok {
		return c, key, true, nil
	}

	c, err := r.Registry.Build(r.Context, opts.Factory, opts.Params)
	if err != nil {
		return nil, cell.Key{}, false, err
	}
	return c, key, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (*layout.Component, cell.Key, error) {
	c, key, _, err := r.BuildWithCacheInfo(ctx, opts)
	return c, key, err
}

// NetlistWithCacheInfo extracts the design with caching and returns cache
// hit info. The returned bytes are the serialized design JSON.
func (r *Runner) NetlistWithCacheInfo(ctx context.Context, key cell.Key, c *layout.Component, opts Options) (netlist.Design, []byte, bool, error) {
	r.applyLogger(&opts)

	cacheKey := r.Keyer.NetlistKey(key.Digest())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			d, err := netlist.Read(bytes.NewReader(data))
			if err == nil {
				return d, data, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	d := netlist.FromComponent(c)
	var buf bytes.Buffer
	if err := netlist.Write(&buf, d); err != nil {
		return netlist.Design{}, nil, false, err
	}
	data := buf.Bytes()

	_ = r.Cache.Set(ctx, cacheKey, data, artifact.TTLNetlist)

	return d, data, false, nil
}

// Netlist is a convenience wrapper that calls NetlistWithCacheInfo and discards the cache hit info.
func (r *Runner) Netlist(ctx context.Context, key cell.Key, c *layout.Component, opts Options) (netlist.Design, []byte, error) {
	d, data, _, err := r.NetlistWithCacheInfo(ctx, key, c, opts)
	return d, data, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The netlist format is produced by the netlist stage, so it is
// skipped here.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, key cell.Key, c *layout.Component, design netlist.Design, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	formats := renderFormats(opts)
	if len(formats) == 0 {
		return map[string][]byte{}, false, nil
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)
		for _, format := range formats {
			if data, hit, err := r.Cache.Get(ctx, r.renderKey(key, format, opts)); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := r.renderFormat(c, design, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		_ = r.Cache.Set(ctx, r.renderKey(key, format, opts), data, artifact.TTLRender)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, key cell.Key, c *layout.Component, design netlist.Design, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, key, c, design, opts)
	return artifacts, err
}

// renderFormats returns the formats the render stage produces, in request order.
func renderFormats(opts Options) []string {
	out := make([]string, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		if f != FormatNetlist {
			out = append(out, f)
		}
	}
	return out
}

// renderKey computes the artifact cache key for one rendered format.
func (r *Runner) renderKey(key cell.Key, format string, opts Options) string {
	switch format {
	case FormatSVG:
		return r.Keyer.SVGKey(key.Digest(), opts.Scale)
	case FormatDOT:
		return r.Keyer.DOTKey(key.Digest(), opts.Detailed)
	case FormatGraph:
		return r.Keyer.GraphKey(key.Digest(), opts.Detailed)
	}
	return ""
}

// renderFormat produces the bytes for one rendered format.
func (r *Runner) renderFormat(c *layout.Component, design netlist.Design, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return mask.RenderSVG(c, mask.WithScale(opts.Scale)), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(design, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatGraph:
		dot := nodelink.ToDOT(design, nodelink.Options{Detailed: opts.Detailed})
		return nodelink.RenderSVG(dot)
	}
	return nil, errors.New(errors.ErrCodeConfiguration, "unsupported render format %q", format)
}

// Close releases resources held by the runner (primarily the artifact cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
