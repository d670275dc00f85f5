package hmacsig

import (
	"bytes"
	"errors"
	"net/http"
)

// StatusFunc maps a rejection reason to the HTTP status code written for
// it. DefaultStatus is used when Config.Status is nil.
type StatusFunc func(Reason) int

// DefaultStatus maps missing headers and digest mismatches to 401, header
// values that cannot be a digest to 400, and body read failures to 500.
func DefaultStatus(reason Reason) int {
	switch reason {
	case ReasonMissingHeader, ReasonAuthFailed:
		return http.StatusUnauthorized
	case ReasonMalformedHeader:
		return http.StatusBadRequest
	case ReasonBodyRead:
		return http.StatusInternalServerError
	default:
		return http.StatusUnauthorized
	}
}

// ForbiddenStatus answers every authentication rejection with 403, for
// deployments that prefer not to distinguish missing from wrong
// credentials. Body read failures stay 500.
func ForbiddenStatus(reason Reason) int {
	if reason == ReasonBodyRead {
		return http.StatusInternalServerError
	}

	return http.StatusForbidden
}

// Middleware returns middleware implementing both halves of the scheme:
// requests are authenticated before the next handler runs, and the
// response bodies of allowed requests are signed under the same header.
//
// Rejected requests never reach the next handler and never carry a
// response signature. Requests whose bodies exceed MaxBodyBytes are
// answered with 413 regardless of the Status mapping. Response bodies are
// buffered in full so the digest covers exactly the bytes sent; handlers
// that must stream should not sit behind this middleware.
func Middleware(cfg Config) (func(http.Handler) http.Handler, error) {
	st, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := readRequestBody(w, r, st.maxBody)
			if err != nil {
				st.reject(w, r, rejectCause(ReasonBodyRead, err))
				return
			}

			out := Authenticate(st.digester, r.Header.Values(st.header), r.Method, requestPath(r), body)
			if !out.Allowed() {
				st.reject(w, r, out)
				return
			}

			sw := newSigningResponseWriter(w, st.digester, st.header)
			next.ServeHTTP(sw, r)
			sw.flush()
		})
	}, nil
}

func (st settings) reject(w http.ResponseWriter, r *http.Request, out Outcome) {
	if st.onReject != nil {
		st.onReject(w, r, out)
		return
	}

	code := st.status(out.Reason())

	var maxBytesErr *http.MaxBytesError
	if errors.As(out.Err(), &maxBytesErr) {
		code = http.StatusRequestEntityTooLarge
	}

	http.Error(w, http.StatusText(code), code)
}

// signingResponseWriter buffers the handler's response so the digest can
// cover exactly the bytes the client receives. Status code and body are
// withheld until flush, which sets the signature header, forwards the
// status, and replays the body.
type signingResponseWriter struct {
	http.ResponseWriter

	digester Digester
	header   string

	buf         bytes.Buffer
	statusCode  int
	wroteHeader bool
}

func newSigningResponseWriter(w http.ResponseWriter, d Digester, header string) *signingResponseWriter {
	return &signingResponseWriter{
		ResponseWriter: w,
		digester:       d,
		header:         header,
	}
}

// WriteHeader records the status code for flush. Only the first call
// counts, matching net/http.
func (sw *signingResponseWriter) WriteHeader(statusCode int) {
	if sw.wroteHeader {
		return
	}

	sw.statusCode = statusCode
	sw.wroteHeader = true
}

// Write buffers body bytes for signing.
func (sw *signingResponseWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}

	return sw.buf.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (sw *signingResponseWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// flush signs the buffered body and forwards the withheld status and
// bytes. An untouched writer flushes as an empty 200 response, signed.
func (sw *signingResponseWriter) flush() {
	sw.Header().Set(sw.header, SignResponse(sw.digester, sw.buf.Bytes()))

	if !sw.wroteHeader {
		sw.statusCode = http.StatusOK
	}

	sw.ResponseWriter.WriteHeader(sw.statusCode)

	if sw.buf.Len() > 0 {
		sw.ResponseWriter.Write(sw.buf.Bytes())
	}
}
