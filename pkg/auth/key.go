package auth

import "github.com/bandkit/band2/pkg/wire"

// Key is the shared pairing secret plus the registration mode for one
// handshake run. Immutable once constructed; the machine copies the
// secret and nothing mutates it for the lifetime of a run.
type Key struct {
	secret [wire.KeySize]byte
	reset  bool
}

// NewKey builds a pairing key from a 16-byte secret. reset selects the
// registration variant: the key is first registered with the device
// before possession is proven.
func NewKey(secret []byte, reset bool) (Key, error) {
	if len(secret) != wire.KeySize {
		return Key{}, wire.ErrInvalidKey
	}
	var k Key
	copy(k.secret[:], secret)
	k.reset = reset
	return k, nil
}

// Reset reports whether this key must be newly registered.
func (k Key) Reset() bool {
	return k.reset
}

// Secret returns a copy of the key bytes.
func (k Key) Secret() []byte {
	out := make([]byte, wire.KeySize)
	copy(out, k.secret[:])
	return out
}
