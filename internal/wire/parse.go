package wire

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

const (
	// maxLineBytes bounds a single status or header line.
	maxLineBytes = 8 * 1024

	// maxHeaderBytes bounds the whole header block.
	maxHeaderBytes = 64 * 1024
)

// Parser resumption and violation signals. ErrNeedMore means the input was
// a valid prefix but incomplete: call again with more bytes appended. The
// Err* violations are terminal for the exchange.
var (
	ErrNeedMore            = errors.New("wire: need more data")
	ErrMalformedStatusLine = errors.New("wire: malformed status line")
	ErrMalformedHeader     = errors.New("wire: malformed header field")
	ErrHeaderTooLarge      = errors.New("wire: header block too large")
)

// ResponseHead is the structured result of parsing a response status line
// and header block.
type ResponseHead struct {
	Proto      string
	StatusCode int
	Reason     string
	Header     Header
}

// ParseStatusLine parses the leading status line from b.
//
// It returns the number of bytes consumed (through the terminating LF) and
// the parsed fields. If b holds no complete line yet it returns
// (0, ErrNeedMore); the caller appends input and retries with the same
// unconsumed bytes, so nothing is lost or reparsed.
func ParseStatusLine(b []byte) (n int, code int, reason, proto string, err error) {
	line, n, err := cutLine(b)
	if err != nil {
		if errors.Is(err, ErrHeaderTooLarge) {
			return 0, 0, "", "", ErrMalformedStatusLine
		}

		return 0, 0, "", "", err
	}

	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return 0, 0, "", "", ErrMalformedStatusLine
	}

	proto = parts[0]
	if !strings.HasPrefix(proto, "HTTP/1.") {
		return 0, 0, "", "", ErrMalformedStatusLine
	}

	code, cerr := strconv.Atoi(parts[1])
	if cerr != nil || code < 100 || code > 999 {
		return 0, 0, "", "", ErrMalformedStatusLine
	}

	if len(parts) == 3 {
		reason = parts[2]
	}

	return n, code, reason, proto, nil
}

// ParseHeaders parses a complete header block from b, through the blank
// line that terminates it. It returns the number of bytes consumed and the
// parsed fields, or (0, ErrNeedMore) if the terminating blank line has not
// arrived yet.
func ParseHeaders(b []byte) (int, Header, error) {
	h := Header{}
	total := 0

	for {
		if total > maxHeaderBytes {
			return 0, nil, ErrHeaderTooLarge
		}

		line, n, err := cutLine(b[total:])
		if err != nil {
			return 0, nil, err
		}

		total += n

		if line == "" {
			return total, h, nil
		}

		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return 0, nil, ErrMalformedHeader
		}

		key := strings.TrimSpace(line[:i])
		if key == "" || strings.ContainsAny(key, " \t") {
			return 0, nil, ErrMalformedHeader
		}

		h.Add(key, strings.TrimSpace(line[i+1:]))
	}
}

// cutLine extracts one CRLF- or LF-terminated line from the front of b,
// returning the line without its terminator and the bytes consumed.
func cutLine(b []byte) (string, int, error) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		if len(b) > maxLineBytes {
			return "", 0, ErrHeaderTooLarge
		}

		return "", 0, ErrNeedMore
	}

	if i > maxLineBytes {
		return "", 0, ErrHeaderTooLarge
	}

	line := b[:i]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return string(line), i + 1, nil
}
