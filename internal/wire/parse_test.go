package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseStatusLine_Valid tests parsing a complete status line.
func TestParseStatusLine_Valid(t *testing.T) {
	input := []byte("HTTP/1.1 200 OK\r\nrest")

	n, code, reason, proto, err := ParseStatusLine(input)
	require.NoError(t, err)
	require.Equal(t, len("HTTP/1.1 200 OK\r\n"), n)
	require.Equal(t, 200, code)
	require.Equal(t, "OK", reason)
	require.Equal(t, "HTTP/1.1", proto)
}

// TestParseStatusLine_NoReason tests a status line without a reason phrase.
func TestParseStatusLine_NoReason(t *testing.T) {
	n, code, reason, _, err := ParseStatusLine([]byte("HTTP/1.1 204\r\n"))
	require.NoError(t, err)
	require.Equal(t, len("HTTP/1.1 204\r\n"), n)
	require.Equal(t, 204, code)
	require.Empty(t, reason)
}

// TestParseStatusLine_SplitAcrossChunks verifies the resumption contract:
// feeding the line in k chunks for every split point parses identically.
func TestParseStatusLine_SplitAcrossChunks(t *testing.T) {
	full := []byte("HTTP/1.1 301 Moved Permanently\r\n")

	for cut := 1; cut < len(full); cut++ {
		buf := append([]byte(nil), full[:cut]...)

		n, _, _, _, err := ParseStatusLine(buf)
		require.ErrorIs(t, err, ErrNeedMore, "cut %d", cut)
		require.Zero(t, n, "cut %d", cut)

		buf = append(buf, full[cut:]...)

		n, code, reason, proto, err := ParseStatusLine(buf)
		require.NoError(t, err, "cut %d", cut)
		require.Equal(t, len(full), n)
		require.Equal(t, 301, code)
		require.Equal(t, "Moved Permanently", reason)
		require.Equal(t, "HTTP/1.1", proto)
	}
}

// TestParseStatusLine_Malformed tests rejection of invalid status lines.
func TestParseStatusLine_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"wrong protocol", "SMTP/1.0 200 OK\r\n"},
		{"missing code", "HTTP/1.1\r\n"},
		{"non-numeric code", "HTTP/1.1 abc OK\r\n"},
		{"code out of range", "HTTP/1.1 99 Low\r\n"},
		{"empty line", "\r\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, _, err := ParseStatusLine([]byte(tc.input))
			require.ErrorIs(t, err, ErrMalformedStatusLine)
		})
	}
}

// TestParseHeaders_Complete tests parsing a full header block.
func TestParseHeaders_Complete(t *testing.T) {
	input := []byte("Content-Length: 5\r\nX-Thing: a\r\nx-thing: b\r\n\r\nbody")

	n, h, err := ParseHeaders(input)
	require.NoError(t, err)
	require.Equal(t, len(input)-len("body"), n)
	require.Equal(t, "5", h.Get("content-length"))
	require.Equal(t, []string{"a", "b"}, h["X-Thing"])
}

// TestParseHeaders_NeedMore verifies nothing is consumed until the blank
// line arrives.
func TestParseHeaders_NeedMore(t *testing.T) {
	n, _, err := ParseHeaders([]byte("Content-Length: 5\r\nX-Part"))
	require.ErrorIs(t, err, ErrNeedMore)
	require.Zero(t, n)
}

// TestParseHeaders_Empty tests an empty header block.
func TestParseHeaders_Empty(t *testing.T) {
	n, h, err := ParseHeaders([]byte("\r\nbody"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Empty(t, h)
}

// TestParseHeaders_Malformed tests rejection of invalid fields.
func TestParseHeaders_Malformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no colon", "JustWords\r\n\r\n"},
		{"empty name", ": value\r\n\r\n"},
		{"space in name", "Bad Name: value\r\n\r\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseHeaders([]byte(tc.input))
			require.ErrorIs(t, err, ErrMalformedHeader)
		})
	}
}

// TestHeader_Canonicalization tests the canonical-key accessors.
func TestHeader_Canonicalization(t *testing.T) {
	h := Header{}
	h.Set("content-type", "text/plain")

	require.Equal(t, "text/plain", h.Get("Content-Type"))
	require.Equal(t, "text/plain", h.Get("CONTENT-TYPE"))
	require.Contains(t, h, "Content-Type")

	h.Add("accept-encoding", "gzip")
	h.Add("Accept-Encoding", "br")
	require.Equal(t, []string{"gzip", "br"}, h["Accept-Encoding"])

	h.Del("CONTENT-type")
	require.Empty(t, h.Get("Content-Type"))
}

// TestCanonicalKey tests edge cases of the canonical form.
func TestCanonicalKey(t *testing.T) {
	require.Equal(t, "Content-Length", CanonicalKey("content-length"))
	require.Equal(t, "X-Request-Id", CanonicalKey("x-request-id"))
	require.Equal(t, "Etag", CanonicalKey("ETAG"))
}
