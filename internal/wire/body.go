package wire

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/streamwire/streamwire-go/internal/bytechan"
)

// ErrMalformedChunk indicates invalid chunked transfer framing.
var ErrMalformedChunk = errors.New("wire: malformed chunk framing")

// NoResponseBody reports whether a response to method with the given
// status carries no body by definition.
func NoResponseBody(status int, method string) bool {
	if strings.EqualFold(method, "HEAD") {
		return true
	}

	return (status >= 100 && status < 200) || status == 204 || status == 304
}

// NewBody selects the body framing for a parsed head and returns a
// streaming reader over the remaining inbound bytes, plus the declared
// content length (-1 when unknown). Closing the reader drains any unread
// remainder so the connection is positioned at the next exchange. A zero
// returned length always pairs with a reader detached from the pipe.
func NewBody(p *bytechan.Pipe, head *ResponseHead, method string) (io.ReadCloser, int64, error) {
	switch {
	case NoResponseBody(head.StatusCode, method):
		return io.NopCloser(strings.NewReader("")), 0, nil

	case hasChunkedTE(head.Header):
		return &chunkedBody{p: p}, -1, nil

	default:
		if v := head.Header.Get("Content-Length"); v != "" {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil || n < 0 {
				return nil, 0, ErrMalformedHeader
			}

			if n == 0 {
				return io.NopCloser(strings.NewReader("")), 0, nil
			}

			return &limitedBody{p: p, remain: n}, n, nil
		}

		// Close-delimited: the body runs to end-of-stream and the
		// connection cannot be reused afterwards.
		return &eofBody{p: p}, -1, nil
	}
}

// limitedBody streams exactly remain bytes from the pipe.
type limitedBody struct {
	p      *bytechan.Pipe
	remain int64
}

func (b *limitedBody) Read(out []byte) (int, error) {
	if b.remain <= 0 {
		return 0, io.EOF
	}

	d, err := b.p.Next(1)
	if len(d) == 0 {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}

		return 0, err
	}

	n := len(out)
	if int64(n) > b.remain {
		n = int(b.remain)
	}

	if n > len(d) {
		n = len(d)
	}

	copy(out, d[:n])
	b.p.Advance(n)
	b.remain -= int64(n)

	return n, nil
}

// Close drains the unread remainder.
func (b *limitedBody) Close() error {
	for b.remain > 0 {
		d, err := b.p.Next(1)
		if len(d) == 0 {
			if err == io.EOF {
				return nil
			}

			return err
		}

		n := int64(len(d))
		if n > b.remain {
			n = b.remain
		}

		b.p.Advance(int(n))
		b.remain -= n
	}

	return nil
}

// chunkedBody decodes Transfer-Encoding: chunked framing from the pipe.
type chunkedBody struct {
	p        *bytechan.Pipe
	remain   int64
	finished bool
}

func (c *chunkedBody) Read(out []byte) (int, error) {
	if c.finished {
		return 0, io.EOF
	}

	if c.remain <= 0 {
		line, err := nextLine(c.p)
		if err != nil {
			return 0, err
		}

		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return 0, ErrMalformedChunk
		}

		n, err := strconv.ParseInt(line, 16, 64)
		if err != nil || n < 0 {
			return 0, ErrMalformedChunk
		}

		if n == 0 {
			// Skip trailers through the blank line.
			for {
				l, err := nextLine(c.p)
				if err != nil {
					return 0, err
				}

				if l == "" {
					break
				}
			}

			c.finished = true

			return 0, io.EOF
		}

		c.remain = n
	}

	d, err := c.p.Next(1)
	if len(d) == 0 {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}

		return 0, err
	}

	n := len(out)
	if int64(n) > c.remain {
		n = int(c.remain)
	}

	if n > len(d) {
		n = len(d)
	}

	copy(out, d[:n])
	c.p.Advance(n)
	c.remain -= int64(n)

	if c.remain == 0 {
		// The chunk data is followed by a bare CRLF.
		line, err := nextLine(c.p)
		if err != nil {
			return n, err
		}

		if line != "" {
			return n, ErrMalformedChunk
		}
	}

	return n, nil
}

// Close drains through the terminal chunk.
func (c *chunkedBody) Close() error {
	buf := make([]byte, 1024)

	for !c.finished {
		_, err := c.Read(buf)
		if err == io.EOF {
			break
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// eofBody streams until the pipe reaches end-of-stream.
type eofBody struct {
	p *bytechan.Pipe
}

func (b *eofBody) Read(out []byte) (int, error) {
	return b.p.Read(out)
}

// Close drains to end-of-stream.
func (b *eofBody) Close() error {
	for {
		d, err := b.p.Next(1)
		if len(d) == 0 {
			if err == io.EOF {
				return nil
			}

			return err
		}

		b.p.Advance(len(d))
	}
}

// nextLine incrementally reads one CRLF- or LF-terminated line from the
// pipe, advancing the cursor past the terminator.
func nextLine(p *bytechan.Pipe) (string, error) {
	min := 1

	for {
		b, err := p.Next(min)

		line, n, lerr := cutLine(b)
		if lerr == nil {
			p.Advance(n)

			return line, nil
		}

		if err == io.EOF {
			return "", io.ErrUnexpectedEOF
		}

		if err != nil {
			return "", err
		}

		if !errors.Is(lerr, ErrNeedMore) {
			return "", lerr
		}

		// The writer blocks at capacity, so waiting for more than that
		// can never be satisfied.
		if len(b) >= p.Capacity() {
			return "", ErrHeaderTooLarge
		}

		min = len(b) + 1
	}
}
