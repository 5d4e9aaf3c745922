// Package config provides configuration types for the streamwire session.
package config

import (
	"context"
	"crypto/tls"
	"log/slog"
	"net"
	"time"
)

const (
	// DefaultDialTimeout bounds the TCP connect when no context deadline
	// is tighter.
	DefaultDialTimeout = 5 * time.Second

	// DefaultBufferSize is the back-pressure bound of each byte pipe.
	DefaultBufferSize = 64 * 1024

	// DefaultReadChunkSize is the receiver loop's per-read buffer size.
	DefaultReadChunkSize = 32 * 1024
)

// Dialer establishes the underlying byte-stream connection. Implement this
// to inject custom transports for testing, mocking, or alternative byte
// streams (e.g. proxied or in-memory connections).
//
// The default implementation dials TCP and optionally wraps the connection
// in TLS.
type Dialer interface {
	// DialContext connects to the given address. The returned connection
	// must behave like an ordered, reliable, bidirectional byte stream.
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
}

// Options configures the behavior of a session.
type Options struct {
	// Logger is the slog logger for the optional trace sink.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// TLSConfig is used for secure connections. If nil, a default config
	// with SNI set to the target host is used.
	TLSConfig *tls.Config

	// DialTimeout bounds the connect. Zero means DefaultDialTimeout.
	DialTimeout time.Duration

	// BufferSize is the capacity of each byte pipe; a producer blocks once
	// this many unconsumed bytes are buffered. Zero means DefaultBufferSize.
	BufferSize int

	// ReadChunkSize is the receiver loop's read buffer size.
	// Zero means DefaultReadChunkSize.
	ReadChunkSize int

	// DisableRequestID suppresses the automatic X-Request-ID header on
	// outbound requests.
	DisableRequestID bool

	// Dialer overrides how the underlying connection is established.
	// When set, the secure flag of Connect is ignored for the dial itself;
	// the dialer owns the full connection setup.
	Dialer Dialer
}

// WithDefaults returns a copy of o with zero fields replaced by defaults.
func (o *Options) WithDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}

	if out.DialTimeout <= 0 {
		out.DialTimeout = DefaultDialTimeout
	}

	if out.BufferSize <= 0 {
		out.BufferSize = DefaultBufferSize
	}

	if out.ReadChunkSize <= 0 {
		out.ReadChunkSize = DefaultReadChunkSize
	}

	return &out
}
