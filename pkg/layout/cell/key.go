package cell

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/maskforge/maskforge/pkg/errors"
)

// Key identifies one cell: a factory name plus the canonical JSON
// rendering of its parameters. Keys are comparable values; two parameter
// sets that serialize to the same canonical JSON produce equal keys and
// therefore share one cached cell.
type Key struct {
	factory string
	canon   string
	digest  string
}

// NewKey builds the key for a factory invocation. The parameters must be
// JSON-serializable; maps and structs with identical fields normalize to
// the same key. nil parameters normalize to an empty object.
func NewKey(factory string, params any) (Key, error) {
	if err := errors.ValidateFactoryName(factory); err != nil {
		return Key{}, err
	}
	canon, err := canonicalJSON(params)
	if err != nil {
		return Key{}, errors.Wrap(errors.ErrCodeInvalidParameter, err,
			"parameters for %q are not serializable", factory)
	}
	sum := sha256.Sum256([]byte(factory + "\x00" + canon))
	return Key{
		factory: factory,
		canon:   canon,
		digest:  hex.EncodeToString(sum[:]),
	}, nil
}

// canonicalJSON renders params as JSON with deterministic key order by
// round-tripping through an untyped value: encoding/json writes map keys
// sorted, which makes the rendering canonical.
func canonicalJSON(params any) (string, error) {
	if params == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	if v == nil {
		return "{}", nil
	}
	canon, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(canon), nil
}

// Factory returns the factory name.
func (k Key) Factory() string {
	return k.factory
}

// Params returns the canonical JSON parameter rendering.
func (k Key) Params() string {
	return k.canon
}

// Digest returns the hex sha256 over factory and parameters.
func (k Key) Digest() string {
	return k.digest
}

// Name returns the canonical cell name: the factory name plus a short
// digest prefix, unique per parameter set.
func (k Key) Name() string {
	return k.factory + "_" + k.digest[:8]
}

// IsZero reports whether the key was never constructed.
func (k Key) IsZero() bool {
	return k.factory == ""
}

// String returns the canonical cell name.
func (k Key) String() string {
	return k.Name()
}
