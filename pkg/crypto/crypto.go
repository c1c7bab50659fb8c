// Package crypto provides the cryptographic primitives used by the
// authentication handshake: the single-block challenge transform, random
// key generation and passphrase-based key derivation.
package crypto

import (
	"crypto/aes"
	"crypto/rand"
	"errors"
)

// KeySize is the pairing key size in bytes (AES-128).
const KeySize = 16

// ChallengeSize is the device challenge size in bytes. It equals the AES
// block size; the transform never sees a partial or multi-block input.
const ChallengeSize = 16

// Errors.
var (
	ErrInvalidKeySize       = errors.New("crypto: key must be 16 bytes")
	ErrInvalidChallengeSize = errors.New("crypto: challenge must be 16 bytes")
)

// EncryptChallenge proves possession of the pairing key by encrypting the
// device-issued challenge with one raw AES-128 block operation (ECB of
// exactly one block, no padding, no chaining).
//
// The output is always exactly 16 bytes and deterministic for a given
// (key, challenge) pair.
func EncryptChallenge(key, challenge []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(challenge) != ChallengeSize {
		return nil, ErrInvalidChallengeSize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, ChallengeSize)
	block.Encrypt(out, challenge)
	return out, nil
}

// GenerateKey returns a fresh random 16-byte pairing key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
