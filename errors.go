package streamwire

import "github.com/streamwire/streamwire-go/internal/errors"

// Re-export error types from internal package

// ConnectionError indicates the initial dial or TLS handshake failed.
type ConnectionError = errors.ConnectionError

// TransportError indicates a mid-session I/O failure on the connection.
type TransportError = errors.TransportError

// MalformedResponseError indicates the peer's response violated the wire
// format, or the stream ended before a complete response head was parsed.
type MalformedResponseError = errors.MalformedResponseError

// StreamwireError is the base interface for all errors produced by this
// library.
type StreamwireError = errors.StreamwireError

// Re-export sentinel errors from internal package.
var (
	// ErrNotConnected indicates the session is not connected.
	ErrNotConnected = errors.ErrNotConnected

	// ErrAlreadyConnected indicates Connect was called on a live session.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrSessionClosed indicates the session has been closed and cannot be
	// reused.
	ErrSessionClosed = errors.ErrSessionClosed

	// ErrExchangeInFlight indicates a previous response body has not been
	// fully drained.
	ErrExchangeInFlight = errors.ErrExchangeInFlight
)
