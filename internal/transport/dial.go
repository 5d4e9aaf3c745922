package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"

	"github.com/streamwire/streamwire-go/internal/config"
)

// Dial establishes the session's byte-stream connection: a TCP connect,
// optionally wrapped in a TLS client stream with SNI and http/1.1 ALPN.
// A custom Dialer from the options replaces the whole procedure.
func Dial(ctx context.Context, host string, port int, secure bool, opts *config.Options) (net.Conn, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	if opts.Dialer != nil {
		return opts.Dialer.DialContext(ctx, "tcp", addr)
	}

	d := net.Dialer{Timeout: opts.DialTimeout}

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	// Disable Nagle so small request heads go out immediately.
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	if !secure {
		return conn, nil
	}

	cfg := opts.TLSConfig
	if cfg == nil {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	if cfg.ServerName == "" {
		cfg = cfg.Clone()
		cfg.ServerName = host
	}

	if len(cfg.NextProtos) == 0 {
		cfg = cfg.Clone()
		cfg.NextProtos = []string{"http/1.1"}
	}

	tc := tls.Client(conn, cfg)
	if err := tc.HandshakeContext(ctx); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("tls handshake with %s: %w", addr, err)
	}

	return tc, nil
}
