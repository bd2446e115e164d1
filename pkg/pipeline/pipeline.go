// Package pipeline provides the staged build pipeline for Maskforge.
//
// This package implements the complete build → netlist → render pipeline
// shared by the CLI and the API. Centralizing it keeps behavior identical
// across entry points and gives every stage the same artifact caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Resolve a factory and build the memoized component
//  2. Netlist: Extract the hierarchical design from the component
//  3. Render: Generate output artifacts (mask SVG, DOT, rendered graph)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Factory: "straight",
//	    Params:  map[string]any{"length": 25.0},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	c, key, err := runner.Build(ctx, opts)
//
//	// Netlist with an existing component
//	design, data, err := runner.Netlist(ctx, key, c, opts)
//
//	// Render with existing component and design
//	artifacts, err := runner.Render(ctx, key, c, design, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
	"github.com/maskforge/maskforge/pkg/netlist"
)

// DefaultScale is the default mask rendering scale in pixels per micron.
const DefaultScale = 20.0

// Format constants for output artifacts.
const (
	FormatNetlist = "netlist"
	FormatSVG     = "svg"
	FormatDOT     = "dot"
	FormatGraph   = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatNetlist: true,
	FormatSVG:     true,
	FormatDOT:     true,
	FormatGraph:   true,
}

// Options contains all configuration for the build pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Factory string         `json:"factory"`
	Params  map[string]any `json:"params,omitempty"`
	Refresh bool           `json:"refresh,omitempty"` // Skip cache reads and recompute artifacts

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Annotate hierarchy diagrams with geometry counts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Component is the built component.
	Component *layout.Component

	// Key is the cell key the parameters resolved to.
	Key cell.Key

	// Design is the extracted netlist.
	Design netlist.Design

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells       int
	Polygons    int
	Ports       int
	BuildTime   time.Duration
	NetlistTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit   bool // Whether the component was already in the cell cache
	NetlistHit bool // Whether the netlist came from the artifact cache
	RenderHit  bool // Whether all rendered artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeConfiguration,
			"invalid format %q (must be one of: netlist, svg, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for building.
func (o *Options) ValidateForBuild() error {
	if o.Factory == "" {
		return errors.New(errors.ErrCodeConfiguration, "factory is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// WantsFormat reports whether the given format was requested.
func (o *Options) WantsFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
