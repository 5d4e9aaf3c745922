package streamwire

import (
	"io"

	"github.com/streamwire/streamwire-go/internal/config"
	"github.com/streamwire/streamwire-go/internal/wire"
)

// Re-export types from internal packages

// ===== Requests =====

// Marshaler is the outbound-request capability: any value that can write
// its request line, headers, and body onto a byte sink. Send treats
// requests polymorphically through this interface.
type Marshaler = wire.Marshaler

// Request is the standard request message. It is immutable once handed to
// Send; Body, if set, is consumed exactly once.
type Request = wire.Request

// Header maps canonicalized field names to their values.
type Header = wire.Header

// CanonicalKey converts a field name to its canonical form
// ("content-length" -> "Content-Length").
func CanonicalKey(s string) string { return wire.CanonicalKey(s) }

// ===== Responses =====

// Response is the partially-parsed outcome of one exchange: the head is
// fully structured, while Body is a live streaming view over the remaining
// inbound bytes.
//
// Body is valid only until the next Send; drain it (or call Close, which
// drains for you) before issuing the next request. ContentLength is -1
// when the length is not declared (chunked or close-delimited framing).
type Response struct {
	Proto         string
	StatusCode    int
	Reason        string
	Header        Header
	Body          io.ReadCloser
	ContentLength int64
}

// ===== Transport injection =====

// Dialer establishes the underlying byte-stream connection. Implement this
// to inject custom transports for testing, mocking, or alternative byte
// streams. The default dials TCP and optionally wraps the connection in TLS.
type Dialer = config.Dialer
