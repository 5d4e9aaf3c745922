package errors

import (
	"errors"
	"fmt"
)

// StreamwireError is the base interface for all errors produced by this
// library. It lets callers distinguish library errors from arbitrary
// wrapped I/O errors with a single type assertion.
type StreamwireError interface {
	error
	IsStreamwireError() bool
}

// Compile-time verification that all error types implement StreamwireError.
var (
	_ StreamwireError = (*ConnectionError)(nil)
	_ StreamwireError = (*TransportError)(nil)
	_ StreamwireError = (*MalformedResponseError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates the session is not connected.
	// Send before Connect, or after Close, fails with this error.
	ErrNotConnected = errors.New("session not connected")

	// ErrAlreadyConnected indicates Connect was called on a session
	// that already holds a live connection.
	ErrAlreadyConnected = errors.New("session already connected")

	// ErrSessionClosed indicates the session has been closed and cannot be
	// reused. Sessions are single-use; create a new one with NewSession().
	ErrSessionClosed = errors.New("session closed: sessions are single-use, create a new one with NewSession()")

	// ErrExchangeInFlight indicates a previous response body has not been
	// fully drained. The wire carries one exchange at a time; drain or
	// Close() the body before the next Send.
	ErrExchangeInFlight = errors.New("previous response body not drained")

	// ErrPipeClosed indicates a write on a completed byte pipe.
	ErrPipeClosed = errors.New("write on completed pipe")
)

// ConnectionError indicates the initial dial or TLS handshake failed.
// It is only returned by Connect.
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsStreamwireError implements StreamwireError.
func (e *ConnectionError) IsStreamwireError() bool { return true }

// TransportError indicates a mid-session I/O failure on the underlying
// connection. Once raised, the session is unusable: any in-flight and all
// subsequent exchanges fail with this error.
type TransportError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsStreamwireError implements StreamwireError.
func (e *TransportError) IsStreamwireError() bool { return true }

// MalformedResponseError indicates the peer's response violated the wire
// format, or the stream ended before a complete response head was parsed.
// It is surfaced only by the Send call that hit it.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}

	return fmt.Sprintf("malformed response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsStreamwireError implements StreamwireError.
func (e *MalformedResponseError) IsStreamwireError() bool { return true }
