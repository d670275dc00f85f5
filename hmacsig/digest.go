package hmacsig

import "crypto/subtle"

// RequestDigest derives the digest an authenticated request must carry:
//
//	HMAC(key, HMAC(key, method) || HMAC(key, path) || HMAC(key, body))
//
// Method and path contribute their UTF-8 bytes. A request without a body
// contributes zero body bytes, which still yields a well-defined inner
// digest. The three inner digests feed the outer computation in this fixed
// order on both ends of the scheme.
func RequestDigest(d Digester, method, path string, body []byte) []byte {
	methodSum := d.Digest([]byte(method))
	pathSum := d.Digest([]byte(path))
	bodySum := d.Digest(body)

	return d.Digest(methodSum, pathSum, bodySum)
}

// ResponseDigest derives the digest a signed response carries over its
// body: HMAC(key, body). Status and headers do not contribute.
func ResponseDigest(d Digester, body []byte) []byte {
	return d.Digest(body)
}

// digestsEqual compares two digests without leaking the position of a
// mismatch through timing. Lengths are public and may short-circuit; the
// content comparison always covers every byte.
func digestsEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	return subtle.ConstantTimeCompare(a, b) == 1
}
