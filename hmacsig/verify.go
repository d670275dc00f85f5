package hmacsig

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
)

// Authenticate decides whether a request presenting the given signature
// header values may proceed. values holds every value the request carried
// for the signature header, in received order; only the first one is
// considered. method, path, and body are the components the expected
// digest is derived from.
//
// No value at all is ReasonMissingHeader. A first value that is not hex of
// exactly the digester's encoded length is ReasonMalformedHeader. A
// well-formed digest that does not match the computed one is
// ReasonAuthFailed; the comparison is constant time.
func Authenticate(d Digester, values []string, method, path string, body []byte) Outcome {
	if len(values) == 0 {
		return Reject(ReasonMissingHeader)
	}

	supplied := values[0]
	if len(supplied) != hex.EncodedLen(d.Size()) {
		return Reject(ReasonMalformedHeader)
	}

	decoded, err := hex.DecodeString(supplied)
	if err != nil {
		return Reject(ReasonMalformedHeader)
	}

	if !digestsEqual(decoded, RequestDigest(d, method, path, body)) {
		return Reject(ReasonAuthFailed)
	}

	return Allow()
}

// VerifyRequest buffers r's body and authenticates r under cfg. The body
// is restored afterwards so handlers can read it again. A failed body read
// yields a ReasonBodyRead rejection; the error return reports an unusable
// cfg only.
func VerifyRequest(r *http.Request, cfg Config) (Outcome, error) {
	st, err := cfg.normalize()
	if err != nil {
		return Outcome{}, err
	}

	body, err := readRequestBody(nil, r, st.maxBody)
	if err != nil {
		return rejectCause(ReasonBodyRead, err), nil
	}

	return Authenticate(st.digester, r.Header.Values(st.header), r.Method, requestPath(r), body), nil
}

// requestPath returns the path component fed into the digest. Both ends
// must agree on the representation, so an empty path (client requests
// built from a bare authority URL) normalizes to "/".
func requestPath(r *http.Request) string {
	if r.URL.Path == "" {
		return "/"
	}

	return r.URL.Path
}

// readRequestBody buffers the whole request body, bounded by maxBytes when
// positive, and restores r.Body from the buffer so downstream reads see
// the same bytes. The writer is handed to http.MaxBytesReader so an
// over-limit read also flags the connection for closing; nil is fine
// outside a handler.
func readRequestBody(w http.ResponseWriter, r *http.Request, maxBytes int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	src := r.Body
	if maxBytes > 0 {
		src = http.MaxBytesReader(w, src, maxBytes)
	}

	body, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	src.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
