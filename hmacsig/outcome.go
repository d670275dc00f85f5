package hmacsig

import "fmt"

// Reason classifies why a request was rejected.
type Reason int

const (
	// ReasonNone marks an allowed outcome.
	ReasonNone Reason = iota

	// ReasonMissingHeader rejects requests carrying no signature header.
	ReasonMissingHeader

	// ReasonMalformedHeader rejects signature values that are not a full
	// lowercase-or-uppercase hex digest of the expected length.
	ReasonMalformedHeader

	// ReasonAuthFailed rejects well-formed digests that do not match the
	// one computed for the request.
	ReasonAuthFailed

	// ReasonBodyRead rejects requests whose body could not be read.
	ReasonBodyRead
)

// String returns a stable identifier for the reason, also used as the key
// form in configuration files.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMissingHeader:
		return "missing_header"
	case ReasonMalformedHeader:
		return "malformed_header"
	case ReasonAuthFailed:
		return "authentication_failed"
	case ReasonBodyRead:
		return "body_read_error"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Outcome is the verdict on one request: allowed, or rejected for exactly
// one Reason. The zero value is the allowed outcome.
type Outcome struct {
	reason Reason
	cause  error
}

// Allow returns the outcome that lets a request proceed.
func Allow() Outcome {
	return Outcome{}
}

// Reject returns a rejection outcome for the given reason.
func Reject(reason Reason) Outcome {
	return Outcome{reason: reason}
}

// rejectCause attaches the underlying error to a rejection, currently only
// body read failures.
func rejectCause(reason Reason, cause error) Outcome {
	return Outcome{reason: reason, cause: cause}
}

// Allowed reports whether the request may proceed.
func (o Outcome) Allowed() bool {
	return o.reason == ReasonNone
}

// Reason returns the rejection reason, ReasonNone for allowed outcomes.
func (o Outcome) Reason() Reason {
	return o.reason
}

// Err returns nil for allowed outcomes and the sentinel error matching the
// rejection reason otherwise. When an underlying cause exists it is wrapped
// alongside the sentinel, so errors.Is works against both.
func (o Outcome) Err() error {
	var sentinel error

	switch o.reason {
	case ReasonNone:
		return nil
	case ReasonMissingHeader:
		sentinel = ErrMissingHeader
	case ReasonMalformedHeader:
		sentinel = ErrMalformedHeader
	case ReasonAuthFailed:
		sentinel = ErrAuthFailed
	case ReasonBodyRead:
		sentinel = ErrBodyRead
	default:
		sentinel = fmt.Errorf("hmacsig: rejected (%s)", o.reason)
	}

	if o.cause != nil {
		return fmt.Errorf("%w: %w", sentinel, o.cause)
	}

	return sentinel
}

// String describes the outcome for logs.
func (o Outcome) String() string {
	if o.Allowed() {
		return "allowed"
	}

	return "rejected: " + o.reason.String()
}
