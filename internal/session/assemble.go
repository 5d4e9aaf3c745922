package session

import (
	stderrors "errors"
	"io"

	"github.com/streamwire/streamwire-go/internal/bytechan"
	"github.com/streamwire/streamwire-go/internal/errors"
	"github.com/streamwire/streamwire-go/internal/wire"
)

// readHead incrementally parses a response head off the inbound pipe.
//
// Each round peeks at the buffered bytes without consuming them and hands
// them to the parser; on ErrNeedMore it waits for at least one more byte
// than it last saw, so previously buffered input is never dropped and
// consumed bytes are committed only by the counts the parser reports.
//
// End-of-stream before a complete head, and any parser violation, surface
// as MalformedResponseError. Pipe failures pass through as-is. A head that
// does not fit in the pipe's capacity fails rather than waits, since the
// writer can never buffer past that bound.
func readHead(p *bytechan.Pipe) (*wire.ResponseHead, error) {
	head := &wire.ResponseHead{}

	min := 1

	for {
		b, err := p.Next(min)

		n, code, reason, proto, perr := wire.ParseStatusLine(b)
		if perr == nil {
			p.Advance(n)

			head.StatusCode = code
			head.Reason = reason
			head.Proto = proto

			break
		}

		if !stderrors.Is(perr, wire.ErrNeedMore) {
			return nil, &errors.MalformedResponseError{Reason: "invalid status line", Err: perr}
		}

		if err == io.EOF {
			return nil, &errors.MalformedResponseError{
				Reason: "connection closed before status line",
			}
		}

		if err != nil {
			return nil, err
		}

		// The writer blocks at capacity, so waiting for more than that
		// can never be satisfied.
		if len(b) >= p.Capacity() {
			return nil, &errors.MalformedResponseError{
				Reason: "status line exceeds buffer capacity",
				Err:    wire.ErrHeaderTooLarge,
			}
		}

		min = len(b) + 1
	}

	min = 1

	for {
		b, err := p.Next(min)

		n, h, perr := wire.ParseHeaders(b)
		if perr == nil {
			p.Advance(n)

			head.Header = h

			return head, nil
		}

		if !stderrors.Is(perr, wire.ErrNeedMore) {
			return nil, &errors.MalformedResponseError{Reason: "invalid header field", Err: perr}
		}

		if err == io.EOF {
			return nil, &errors.MalformedResponseError{
				Reason: "connection closed before header block",
			}
		}

		if err != nil {
			return nil, err
		}

		if len(b) >= p.Capacity() {
			return nil, &errors.MalformedResponseError{
				Reason: "header block exceeds buffer capacity",
				Err:    wire.ErrHeaderTooLarge,
			}
		}

		min = len(b) + 1
	}
}
