package ubjson

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/ubjson/codes"
)

var (
	// ErrDecode is matched by every error the decoder produces for
	// malformed input: errors.Is(err, ErrDecode).
	ErrDecode = errors.New("ubjson: decode error")
	// ErrEncode is matched by every EncodeError.
	ErrEncode = errors.New("ubjson: encode error")
)

// A MarkerError represents an unknown marker, or a known marker in a
// position where it is not allowed.
type MarkerError struct {
	Marker byte
	Reason string
}

// Error returns string representation of current instance error.
func (e *MarkerError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "invalid marker"
	}
	if name := codes.Name(e.Marker); name != "" {
		return fmt.Sprintf("ubjson: %s: marker %q (%s)", reason, e.Marker, name)
	}
	return fmt.Sprintf("ubjson: %s: marker 0x%02x", reason, e.Marker)
}

func (e *MarkerError) Is(target error) bool {
	return target == ErrDecode
}

// An EarlyEndOfStreamError represents a source that ran out while a
// token or a value was still expected.
//
// Err is io.EOF when the source was empty at the start of a top-level
// value, which is how a caller decoding a sequence of values detects
// its end; it is io.ErrUnexpectedEOF otherwise.
type EarlyEndOfStreamError struct {
	Reason string
	Err    error
}

// Error returns string representation of current instance error.
func (e *EarlyEndOfStreamError) Error() string {
	return fmt.Sprintf("ubjson: early end of stream: %s", e.Reason)
}

func (e *EarlyEndOfStreamError) Unwrap() error {
	return e.Err
}

func (e *EarlyEndOfStreamError) Is(target error) bool {
	return target == ErrDecode
}

// An EncodeError represents a value that cannot be mapped to any wire
// form. Err holds the error returned by the encoder's default hook, if
// that is what failed.
type EncodeError struct {
	Value  interface{}
	Reason string
	Err    error
}

// Error returns string representation of current instance error.
func (e *EncodeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("ubjson: unable to encode %T", e.Value)
	}
	return fmt.Sprintf("ubjson: unable to encode %T: %s", e.Value, e.Reason)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

func markerError(c byte, reason string) error {
	return &MarkerError{Marker: c, Reason: reason}
}

func encodeError(v interface{}, reason string) error {
	return &EncodeError{Value: v, Reason: reason}
}
