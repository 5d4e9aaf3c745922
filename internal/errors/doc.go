// Package errors defines the error taxonomy for the streamwire library.
//
// Errors fall into four classes: ConnectionError (dial or handshake
// failure), TransportError (mid-session I/O failure), MalformedResponseError
// (protocol violation from the peer), and the lifecycle sentinels
// (ErrNotConnected, ErrAlreadyConnected, ErrSessionClosed,
// ErrExchangeInFlight), which signal calls made outside their valid state.
package errors
