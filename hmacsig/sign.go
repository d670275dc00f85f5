package hmacsig

import (
	"encoding/hex"
	"fmt"
	"net/http"
)

// SignResponse returns the signature header value for a response body: the
// lowercase hex encoding of ResponseDigest.
func SignResponse(d Digester, body []byte) string {
	return hex.EncodeToString(ResponseDigest(d, body))
}

// SignRequest computes the request digest over r's method, path, and body
// and sets the signature header on r. The body is read in full and
// restored, so the request remains sendable. Intended for clients; most
// callers want Transport instead, which signs a clone per attempt.
func SignRequest(r *http.Request, cfg Config) error {
	st, err := cfg.normalize()
	if err != nil {
		return err
	}

	return signRequest(r, st)
}

func signRequest(r *http.Request, st settings) error {
	body, err := readRequestBody(nil, r, 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBodyRead, err)
	}

	digest := RequestDigest(st.digester, r.Method, requestPath(r), body)
	r.Header.Set(st.header, hex.EncodeToString(digest))

	return nil
}
