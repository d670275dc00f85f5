package hmacsig

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that signs every outgoing request
// and, when Config.VerifyResponses is set, requires a valid digest on
// every response.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base   http.RoundTripper
	config Config
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
//
// Configure base for custom proxy (HTTP/SOCKS), TLS, timeouts, and
// connection pool settings:
//
//	base := &http.Transport{
//	    Proxy:           http.ProxyFromEnvironment,
//	    TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS13},
//	    IdleConnTimeout: 90 * time.Second,
//	}
//	transport := hmacsig.NewTransport(base, hmacsig.Config{Secret: key})
func NewTransport(base *http.Transport, cfg Config) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   rt,
		config: cfg,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation. When
// GetBody is available, the clone receives its own body copy so that
// digest computation does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	st, err := t.config.normalize()
	if err != nil {
		return nil, err
	}

	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("hmacsig: replaying request body: %w", err)
		}

		clone.Body = body
	}

	if err := signRequest(clone, st); err != nil {
		return nil, err
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil || !st.verify {
		return resp, err
	}

	if err := verifyResponse(resp, st); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// verifyResponse checks the response digest, buffering and restoring the
// body so the caller still reads it in full.
func verifyResponse(resp *http.Response, st settings) error {
	values := resp.Header.Values(st.header)
	if len(values) == 0 {
		return ErrResponseNotSigned
	}

	supplied := values[0]
	if len(supplied) != hex.EncodedLen(st.digester.Size()) {
		return fmt.Errorf("%w: %q", ErrResponseMalformed, supplied)
	}

	decoded, err := hex.DecodeString(supplied)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrResponseMalformed, supplied)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("hmacsig: reading response body: %w", err)
	}

	if !digestsEqual(decoded, ResponseDigest(st.digester, body)) {
		return ErrResponseAuthFailed
	}

	return nil
}

func readResponseBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
