package hmacsig

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Digester computes keyed digests over byte sequences. Implementations bind
// their key material at construction and must be safe for concurrent use.
//
// Digest feeds the chunks, in order, into a single keyed computation and
// returns the final digest: Digest(a, b) must equal Digest over the
// concatenation of a and b. Size reports the digest length in bytes.
type Digester interface {
	Digest(chunks ...[]byte) []byte
	Size() int
}

// SHA256Digester computes HMAC-SHA256 digests with a key fixed at
// construction. It keeps no state between calls and is safe for concurrent
// use.
type SHA256Digester struct {
	key []byte
}

// NewSHA256Digester returns a Digester computing HMAC-SHA256 under key.
func NewSHA256Digester(key SecretKey) *SHA256Digester {
	raw := make([]byte, len(key.raw))
	copy(raw, key.raw)

	return &SHA256Digester{key: raw}
}

// Digest runs one HMAC-SHA256 computation over the chunks in order.
func (d *SHA256Digester) Digest(chunks ...[]byte) []byte {
	mac := hmac.New(sha256.New, d.key)
	for _, chunk := range chunks {
		mac.Write(chunk)
	}

	return mac.Sum(nil)
}

// Size returns the HMAC-SHA256 digest length, sha256.Size.
func (d *SHA256Digester) Size() int {
	return sha256.Size
}
