package stream

import "github.com/pkg/errors"

// Sentinel errors reported by readers and writers. Call sites wrap them with
// positional context, so classify with errors.Is rather than equality.
var (
	// ErrNotOpen reports use of a file-backed stream before Open or after
	// Close.
	ErrNotOpen = errors.New("stream is not open")

	// ErrUnexpectedEnd reports that the medium ran out before a read was
	// satisfied: a short fixed-size read, or a terminator that never arrived.
	ErrUnexpectedEnd = errors.New("unexpected end of data")

	// ErrInvalidEncoding reports bytes that do not decode in the requested
	// text encoding, or a string that cannot be encoded into it.
	ErrInvalidEncoding = errors.New("invalid text encoding")

	// ErrInvalidArgument reports a malformed request such as a negative
	// count, a negative seek target on a memory stream, or a non-positive
	// alignment boundary.
	ErrInvalidArgument = errors.New("invalid argument")
)
