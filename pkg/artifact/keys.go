package artifact

// Keyer generates namespaced cache keys from component digests. Render
// keys also fold in the options that change the produced bytes, so two
// renders of the same component at different settings never collide.
type Keyer interface {
	// NetlistKey keys the serialized design JSON.
	NetlistKey(digest string) string
	// SVGKey keys the rendered mask geometry at a given scale.
	SVGKey(digest string, scale float64) string
	// DOTKey keys the hierarchy diagram source.
	DOTKey(digest string, detailed bool) string
	// GraphKey keys the hierarchy diagram rendered to SVG.
	GraphKey(digest string, detailed bool) string
}

// DefaultKeyer hashes the digest into each artifact namespace.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) NetlistKey(digest string) string { return hashKey("netlist", digest) }

func (DefaultKeyer) SVGKey(digest string, scale float64) string {
	return hashKey("svg", digest, scale)
}

func (DefaultKeyer) DOTKey(digest string, detailed bool) string {
	return hashKey("dot", digest, detailed)
}

func (DefaultKeyer) GraphKey(digest string, detailed bool) string {
	return hashKey("graph", digest, detailed)
}
