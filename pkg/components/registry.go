package components

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/maskforge/maskforge/pkg/errors"
	"github.com/maskforge/maskforge/pkg/layout"
	"github.com/maskforge/maskforge/pkg/layout/cell"
)

// Factory is one registered component factory: a name, a short description
// for listings, the fully defaulted options for discovery, and a build
// function that decodes loose parameters into the factory's options.
type Factory struct {
	Name        string
	Description string
	Defaults    func() any
	Build       func(ctx *cell.Context, params map[string]any) (*layout.Component, error)
}

// decodeParams maps loose JSON-style parameters onto a typed options
// struct. Keys the struct does not declare are rejected rather than
// silently dropped, so a typo in a parameter name fails the build.
func decodeParams(params map[string]any, into any) error {
	if params == nil {
		params = map[string]any{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "encoding parameters")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "decoding parameters")
	}
	return nil
}

// Registry resolves component factories by name. The zero value is not
// usable; construct one with NewRegistry or DefaultRegistry.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory, replacing any earlier entry with the same name.
func (r *Registry) Register(f Factory) {
	r.factories[f.Name] = f
}

// Names returns the registered factory names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a factory by name.
func (r *Registry) Get(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return Factory{}, errors.New(errors.ErrCodeUnknownFactory,
			"unknown factory %q, available: %s", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Build resolves a factory and invokes it with the given parameters.
func (r *Registry) Build(ctx *cell.Context, name string, params map[string]any) (*layout.Component, error) {
	f, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return f.Build(ctx, params)
}

// optionsValidator is implemented by every factory options type.
type optionsValidator interface {
	ValidateAndSetDefaults() error
}

// Key computes the cell key a build with these parameters would produce,
// without building anything. Parameters are decoded and normalized the
// same way Build normalizes them, so the digest matches the component
// Build returns.
func (r *Registry) Key(name string, params map[string]any) (cell.Key, error) {
	f, err := r.Get(name)
	if err != nil {
		return cell.Key{}, err
	}
	opts := reflect.New(reflect.TypeOf(f.Defaults())).Interface()
	if err := decodeParams(params, opts); err != nil {
		return cell.Key{}, err
	}
	if v, ok := opts.(optionsValidator); ok {
		if err := v.ValidateAndSetDefaults(); err != nil {
			return cell.Key{}, err
		}
	}
	return cell.NewKey(name, reflect.ValueOf(opts).Elem().Interface())
}

// DefaultRegistry returns a registry holding every built-in factory.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Factory{
		rectangleFactory(),
		compassFactory(),
		straightFactory(),
		taperFactory(),
		bendSFactory(),
		bendCircularFactory(),
		couplerStraightAsymmetricFactory(),
		contraDCFactory(),
	} {
		r.Register(f)
	}
	return r
}
