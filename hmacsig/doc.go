// Package hmacsig implements HMAC-SHA256 request authentication and
// response signing for HTTP services.
//
// Both ends of the scheme share a secret key and a header name. A request
// carries the hex digest of
//
//	HMAC(key, HMAC(key, method) || HMAC(key, path) || HMAC(key, body))
//
// in the signature header; the server recomputes the digest, compares in
// constant time, and rejects mismatches before the handler runs. Responses
// to authenticated requests carry HMAC(key, body) in the same header.
//
// # Server Middleware
//
// Middleware authenticates requests and signs responses in one step. It
// returns a plain func(http.Handler) http.Handler, usable directly with
// gorilla/mux Use or any stdlib handler chain:
//
//	mw, err := hmacsig.Middleware(hmacsig.Config{
//	    Secret: hmacsig.SecretKeyFromString(secret),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	router.Use(mw)
//
// Rejections map to status codes through Config.Status; DefaultStatus
// answers 401 for missing or mismatched digests, 400 for values that
// cannot be a digest, and 500 when the body cannot be read. ForbiddenStatus
// answers 403 across the board instead. Config.OnReject takes over the
// rejection response entirely when set.
//
// # Client Transport
//
// NewTransport wraps an *http.Transport so every outgoing request is
// signed, and optionally verifies response digests. Pass nil for a clone
// of http.DefaultTransport:
//
//	client := &http.Client{
//	    Transport: hmacsig.NewTransport(nil, hmacsig.Config{
//	        Secret:          hmacsig.SecretKeyFromString(secret),
//	        VerifyResponses: true,
//	    }),
//	}
//
// # Lower-Level Pieces
//
// Authenticate, SignResponse, RequestDigest, and ResponseDigest expose the
// scheme without net/http plumbing for hosts that buffer bodies
// themselves. The Digester interface admits alternative HMAC-SHA256
// implementations; NewSHA256Digester is the crypto/hmac default.
//
// # Configuration Files
//
// LoadConfigFile reads a Config from YAML, including per-reason status
// code overrides. See ConfigFile for the schema.
package hmacsig
