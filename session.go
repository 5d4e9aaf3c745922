package streamwire

import (
	"context"
)

// Session is a client session over a single byte-stream connection.
//
// Lifecycle: Disconnected -> Connected -> Closed. Sessions are single-use;
// after Close(), create a new one with NewSession(). Send is only valid
// while Connected and carries one exchange at a time: the previous
// response body must be fully drained (or closed) before the next Send.
//
// Example usage:
//
//	s := streamwire.NewSession()
//	defer s.Close()
//
//	if err := s.Connect(ctx, "example.com", 443, true,
//	    streamwire.WithLogger(slog.Default()),
//	); err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := s.Send(ctx, &streamwire.Request{Target: "/", Host: "example.com"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer res.Body.Close()
type Session interface {
	// Connect establishes the connection, optionally negotiating TLS first,
	// and starts the background sender and receiver loops.
	// Returns a *ConnectionError on dial or handshake failure,
	// ErrAlreadyConnected on a live session, ErrSessionClosed after Close.
	Connect(ctx context.Context, host string, port int, secure bool, opts ...Option) error

	// Send serializes req, waits for the response head, and returns it with
	// a streaming body handle. Fails with ErrNotConnected before Connect,
	// ErrSessionClosed after Close, ErrExchangeInFlight while a previous
	// body is undrained, a *TransportError once the connection has failed,
	// or a *MalformedResponseError when the peer violates the wire format.
	Send(ctx context.Context, req Marshaler) (*Response, error)

	// Close terminates the connection and joins both background loops.
	// Idempotent; safe to call even if Connect failed partially.
	Close() error
}

// NewSession creates a session in the Disconnected state.
func NewSession() Session {
	return newSessionImpl()
}
