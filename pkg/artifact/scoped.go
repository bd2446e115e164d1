package artifact

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Useful when several PDKs or users share one cache backend and need
// separate key namespaces.
//
// Example usage:
//
//	// Per-PDK keys on a shared Redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "sin220:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// NetlistKey generates a prefixed key for design JSON.
func (k *ScopedKeyer) NetlistKey(digest string) string {
	return k.prefix + k.inner.NetlistKey(digest)
}

// SVGKey generates a prefixed key for rendered geometry.
func (k *ScopedKeyer) SVGKey(digest string, scale float64) string {
	return k.prefix + k.inner.SVGKey(digest, scale)
}

// DOTKey generates a prefixed key for hierarchy diagrams.
func (k *ScopedKeyer) DOTKey(digest string, detailed bool) string {
	return k.prefix + k.inner.DOTKey(digest, detailed)
}

// GraphKey generates a prefixed key for rendered hierarchy diagrams.
func (k *ScopedKeyer) GraphKey(digest string, detailed bool) string {
	return k.prefix + k.inner.GraphKey(digest, detailed)
}
