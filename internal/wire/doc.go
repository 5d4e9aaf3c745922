// Package wire implements the text wire format: resumable status-line and
// header parsing, request serialization, and response body framing.
//
// The parse functions follow a strict byte-accounting contract: they
// report exactly how many bytes they consumed, and return ErrNeedMore with
// zero consumed when the input is a valid but incomplete prefix. The
// caller grows the buffer and retries; consumed bytes are never revisited.
package wire
