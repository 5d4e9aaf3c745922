package wire

import "strings"

// Header maps canonicalized field names to their values, in arrival order.
type Header map[string][]string

// Get returns the first value for key, or "" if absent.
func (h Header) Get(key string) string {
	if h == nil {
		return ""
	}

	if vv, ok := h[CanonicalKey(key)]; ok && len(vv) > 0 {
		return vv[0]
	}

	return ""
}

// Set replaces all values for key with value.
func (h Header) Set(key, value string) {
	if h == nil {
		return
	}

	h[CanonicalKey(key)] = []string{value}
}

// Add appends value to the values for key.
func (h Header) Add(key, value string) {
	if h == nil {
		return
	}

	k := CanonicalKey(key)
	h[k] = append(h[k], value)
}

// Del removes all values for key.
func (h Header) Del(key string) {
	if h == nil {
		return
	}

	delete(h, CanonicalKey(key))
}

// CanonicalKey converts a field name to its canonical form: the first
// letter and any letter following a hyphen upper-cased, the rest lowered
// ("content-length" -> "Content-Length").
func CanonicalKey(s string) string {
	b := []byte(strings.ToLower(s))
	upper := true

	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			if upper {
				b[i] = c - 'a' + 'A'
			}

			upper = false
		} else {
			upper = c == '-'
		}
	}

	return string(b)
}

// hasChunkedTE reports whether any Transfer-Encoding value contains
// "chunked".
func hasChunkedTE(h Header) bool {
	for _, v := range h[CanonicalKey("Transfer-Encoding")] {
		if strings.Contains(strings.ToLower(v), "chunked") {
			return true
		}
	}

	return false
}
