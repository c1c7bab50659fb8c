package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// PassphraseIterations is the PBKDF2 iteration count used by
// KeyFromPassphrase.
const PassphraseIterations = 10000

// KeyFromPassphrase derives a stable 16-byte pairing key from a
// passphrase using PBKDF2-HMAC-SHA256. The same (passphrase, salt) pair
// always yields the same key, so callers can re-derive the key on every
// run instead of persisting it.
func KeyFromPassphrase(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, PassphraseIterations, KeySize, sha256.New)
}
