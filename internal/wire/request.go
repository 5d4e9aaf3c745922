package wire

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Marshaler is the outbound-request capability: any value that can write
// its request line, headers, and body onto a byte sink. The session treats
// requests polymorphically through this interface and never inspects their
// internals.
type Marshaler interface {
	EncodeTo(w io.Writer) error
}

// Request is the standard request message. It is immutable once handed to
// Send; Body, if set, is consumed exactly once.
type Request struct {
	// Method is the request method, e.g. "GET". Empty defaults to GET.
	Method string

	// Target is the request target, e.g. "/index.html". Empty defaults
	// to "/".
	Target string

	// Host is the value of the Host header. Required by HTTP/1.1; an
	// explicit Header entry takes precedence.
	Host string

	// Header holds additional request headers.
	Header Header

	// Body is the optional request body source.
	Body io.Reader

	// ContentLength is the body length. Zero or negative with a non-nil
	// Body means unknown, in which case the body is buffered to compute
	// it; an actually empty body is expressed by leaving Body nil.
	ContentLength int64
}

// Compile-time verification that *Request implements Marshaler.
var _ Marshaler = (*Request)(nil)

// EncodeTo serializes the request line, headers, and body onto w in wire
// order. Headers written explicitly by the encoder (Host, Content-Length,
// Connection) are skipped when iterating user headers.
func (r *Request) EncodeTo(w io.Writer) error {
	method := r.Method
	if method == "" {
		method = "GET"
	}

	target := r.Target
	if target == "" {
		target = "/"
	}

	if _, err := fmt.Fprintf(w, "%s %s HTTP/1.1\r\n", method, target); err != nil {
		return fmt.Errorf("write request line: %w", err)
	}

	host := r.Header.Get("Host")
	if host == "" {
		host = r.Host
	}

	if host != "" {
		if _, err := fmt.Fprintf(w, "Host: %s\r\n", host); err != nil {
			return fmt.Errorf("write host: %w", err)
		}
	}

	if strings.EqualFold(r.Header.Get("Connection"), "close") {
		if _, err := io.WriteString(w, "Connection: close\r\n"); err != nil {
			return fmt.Errorf("write connection: %w", err)
		}
	} else {
		if _, err := io.WriteString(w, "Connection: keep-alive\r\n"); err != nil {
			return fmt.Errorf("write connection: %w", err)
		}
	}

	// Resolve body framing before the header block closes.
	var buffered []byte

	cl := r.ContentLength

	if r.Body != nil {
		// The zero value of ContentLength means unknown, not empty, so
		// a request built as a plain literal still sends its body.
		if cl <= 0 {
			var buf bytes.Buffer
			if _, err := io.Copy(&buf, r.Body); err != nil {
				return fmt.Errorf("buffer body: %w", err)
			}

			buffered = buf.Bytes()
			cl = int64(len(buffered))
		}

		if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n", cl); err != nil {
			return fmt.Errorf("write content-length: %w", err)
		}
	}

	for k, vv := range r.Header {
		if strings.EqualFold(k, "Host") ||
			strings.EqualFold(k, "Connection") ||
			strings.EqualFold(k, "Content-Length") {
			continue
		}

		for _, v := range vv {
			if _, err := fmt.Fprintf(w, "%s: %s\r\n", k, v); err != nil {
				return fmt.Errorf("write header %s: %w", k, err)
			}
		}
	}

	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return fmt.Errorf("write header terminator: %w", err)
	}

	switch {
	case buffered != nil:
		if _, err := w.Write(buffered); err != nil {
			return fmt.Errorf("write body: %w", err)
		}
	case r.Body != nil && cl > 0:
		if _, err := io.CopyN(w, r.Body, cl); err != nil {
			return fmt.Errorf("copy body: %w", err)
		}
	}

	return nil
}
