package pdk

import (
	_ "embed"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/maskforge/maskforge/pkg/errors"
)

//go:embed default.toml
var defaultTOML []byte

// file mirrors the TOML document layout. Layer references inside
// cross-sections are by name and resolved against the [layers] table.
type file struct {
	Name          string                 `toml:"name"`
	Description   string                 `toml:"description"`
	Layers        map[string]Layer       `toml:"layers"`
	CrossSections map[string]fileProfile `toml:"cross_sections"`
}

type fileProfile struct {
	Width          float64       `toml:"width"`
	Layer          string        `toml:"layer"`
	Radius         float64       `toml:"radius"`
	TaperLength    float64       `toml:"taper_length"`
	CladdingOffset float64       `toml:"cladding_offset"`
	CladdingLayers []string      `toml:"cladding_layers"`
	Sections       []fileSection `toml:"sections"`
}

type fileSection struct {
	Name   string  `toml:"name"`
	Width  float64 `toml:"width"`
	Offset float64 `toml:"offset"`
	Layer  string  `toml:"layer"`
}

// Parse builds a PDK from TOML bytes. Cross-section layer references are
// resolved against the layer table; a dangling reference or a non-positive
// core width is a configuration error.
func Parse(data []byte) (*PDK, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse PDK table")
	}
	if f.Name == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "PDK table has no name")
	}

	p := &PDK{
		name:        f.Name,
		description: f.Description,
		layers:      make(map[string]Layer, len(f.Layers)),
		xsections:   make(map[string]CrossSection, len(f.CrossSections)),
	}
	for name, layer := range f.Layers {
		p.layers[name] = layer
	}

	for name, prof := range f.CrossSections {
		if prof.Width <= 0 {
			return nil, errors.New(errors.ErrCodeConfiguration, "cross-section %q: width must be positive, got %g", name, prof.Width)
		}
		core, ok := p.layers[prof.Layer]
		if !ok {
			return nil, errors.New(errors.ErrCodeConfiguration, "cross-section %q references unknown layer %q", name, prof.Layer)
		}

		x := CrossSection{
			Name:           name,
			Width:          prof.Width,
			Layer:          core,
			Radius:         prof.Radius,
			TaperLength:    prof.TaperLength,
			CladdingOffset: prof.CladdingOffset,
		}
		for _, cl := range prof.CladdingLayers {
			layer, ok := p.layers[cl]
			if !ok {
				return nil, errors.New(errors.ErrCodeConfiguration, "cross-section %q references unknown cladding layer %q", name, cl)
			}
			x.CladdingLayers = append(x.CladdingLayers, layer)
		}
		for _, s := range prof.Sections {
			layer, ok := p.layers[s.Layer]
			if !ok {
				return nil, errors.New(errors.ErrCodeConfiguration, "cross-section %q section %q references unknown layer %q", name, s.Name, s.Layer)
			}
			if s.Width <= 0 {
				return nil, errors.New(errors.ErrCodeConfiguration, "cross-section %q section %q: width must be positive", name, s.Name)
			}
			x.Sections = append(x.Sections, Section{Name: s.Name, Width: s.Width, Offset: s.Offset, Layer: layer})
		}
		p.xsections[name] = x
	}
	return p, nil
}

// Load reads and parses a PDK table from a TOML file.
func Load(path string) (*PDK, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read PDK table %s", path)
	}
	return Parse(data)
}

var (
	defaultOnce sync.Once
	defaultPDK  *PDK
)

// Default returns the embedded generic kit. The embedded table is parsed
// once; a parse failure there is a programming error and panics.
func Default() *PDK {
	defaultOnce.Do(func() {
		p, err := Parse(defaultTOML)
		if err != nil {
			panic("pdk: embedded default table invalid: " + err.Error())
		}
		defaultPDK = p
	})
	return defaultPDK
}
