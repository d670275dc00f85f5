package hmacsig

import "errors"

// Configuration errors returned by Middleware, Transport.RoundTrip, and
// the request helpers.
var (
	ErrNoKey             = errors.New("hmacsig: no secret key or digester configured")
	ErrInvalidHeaderName = errors.New("hmacsig: invalid signature header name")
)

// Rejection errors surfaced through Outcome.Err.
var (
	ErrMissingHeader   = errors.New("hmacsig: signature header missing")
	ErrMalformedHeader = errors.New("hmacsig: signature header is not a hex digest of the expected length")
	ErrAuthFailed      = errors.New("hmacsig: request digest mismatch")
	ErrBodyRead        = errors.New("hmacsig: reading request body failed")
)

// Response verification errors returned by Transport when VerifyResponses
// is enabled.
var (
	ErrResponseNotSigned  = errors.New("hmacsig: response signature header missing")
	ErrResponseMalformed  = errors.New("hmacsig: response signature header malformed")
	ErrResponseAuthFailed = errors.New("hmacsig: response digest mismatch")
)
