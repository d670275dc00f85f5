package hmacsig

// SecretKey holds the shared key both ends of the scheme derive digests
// from. Construct one with NewSecretKey or SecretKeyFromString; the zero
// value is an empty key.
//
// The key material stays inside the package: digesters receive it at
// construction and nothing else reads it. Formatting a SecretKey with any
// fmt verb prints a redacted placeholder, never the bytes.
type SecretKey struct {
	raw []byte
}

// NewSecretKey returns a SecretKey over a copy of b. Mutating b afterwards
// does not affect the key.
func NewSecretKey(b []byte) SecretKey {
	raw := make([]byte, len(b))
	copy(raw, b)

	return SecretKey{raw: raw}
}

// SecretKeyFromString returns a SecretKey over the UTF-8 bytes of s.
func SecretKeyFromString(s string) SecretKey {
	return SecretKey{raw: []byte(s)}
}

// IsZero reports whether the key holds no bytes. Keys of any length are
// accepted, but empty ones authenticate nothing worth protecting.
func (k SecretKey) IsZero() bool {
	return len(k.raw) == 0
}

// String implements fmt.Stringer without exposing the key material.
func (k SecretKey) String() string {
	return "hmacsig.SecretKey(redacted)"
}

// GoString keeps %#v from leaking the key either.
func (k SecretKey) GoString() string {
	return k.String()
}
