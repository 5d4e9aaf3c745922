package streamwire

import (
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/streamwire/streamwire-go/internal/config"
)

// Option configures a session using the functional options pattern.
type Option func(*config.Options)

// applyOptions applies functional options to a fresh config struct.
func applyOptions(opts []Option) *config.Options {
	options := &config.Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for diagnostic output (the optional trace
// sink). If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *config.Options) {
		o.Logger = logger
	}
}

// WithTLSConfig sets the TLS configuration used for secure connections.
// If not set, a default config with SNI for the target host is used.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *config.Options) {
		o.TLSConfig = cfg
	}
}

// WithDialTimeout bounds the TCP connect.
func WithDialTimeout(d time.Duration) Option {
	return func(o *config.Options) {
		o.DialTimeout = d
	}
}

// WithBufferSize sets the capacity of each byte pipe; a producer blocks
// once this many unconsumed bytes are buffered.
func WithBufferSize(n int) Option {
	return func(o *config.Options) {
		o.BufferSize = n
	}
}

// WithReadChunkSize sets the receiver loop's per-read buffer size.
func WithReadChunkSize(n int) Option {
	return func(o *config.Options) {
		o.ReadChunkSize = n
	}
}

// WithoutRequestID suppresses the automatic X-Request-ID header on
// outbound requests.
func WithoutRequestID() Option {
	return func(o *config.Options) {
		o.DisableRequestID = true
	}
}

// WithDialer overrides how the underlying connection is established.
// The dialer owns the full connection setup, including any security layer.
func WithDialer(d Dialer) Option {
	return func(o *config.Options) {
		o.Dialer = d
	}
}
