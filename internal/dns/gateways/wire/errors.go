package wire

import "errors"

// Sentinel errors for the four ways a packet can be unusable. Callers match
// with errors.Is; every site that raises one wraps it with position context.
var (
	// ErrInvalidName means a caller-supplied domain name violates the
	// label-length rules and cannot be encoded.
	ErrInvalidName = errors.New("invalid domain name")

	// ErrMalformedName means a name in a received buffer could not be
	// decoded: a label or pointer reaches outside the buffer, or a
	// compression pointer chain exceeds the redirection bound.
	ErrMalformedName = errors.New("malformed domain name")

	// ErrTruncatedMessage means a fixed-size field read would run past the
	// end of the buffer.
	ErrTruncatedMessage = errors.New("truncated message")

	// ErrMalformedRecord means a record's declared RDATA length runs past
	// the end of the buffer.
	ErrMalformedRecord = errors.New("malformed record")
)
