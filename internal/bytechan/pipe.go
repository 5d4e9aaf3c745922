package bytechan

import (
	"io"
	"sync"

	"github.com/streamwire/streamwire-go/internal/errors"
)

// compactThreshold is the consumed-prefix size past which the buffer is
// compacted instead of growing.
const compactThreshold = 16 * 1024

// Pipe is a bounded, ordered, single-producer/single-consumer byte buffer.
//
// The writer appends with Write, which blocks while the unconsumed window
// is at capacity (back-pressure). The reader peeks at buffered bytes with
// Next without copying and commits consumption with Advance, so it can
// look ahead across read boundaries and release storage only for bytes it
// has actually parsed.
//
// Completion is one-way: after Close, reads drain the remaining bytes and
// then observe io.EOF; after CloseWithError, reads observe the error
// immediately, even if bytes remain buffered.
type Pipe struct {
	mu       sync.Mutex
	readable sync.Cond // signaled when bytes arrive or the pipe completes
	writable sync.Cond // signaled when Advance frees capacity

	buf []byte // buf[pos:] is the unconsumed window
	pos int
	max int

	done bool
	err  error // non-nil only on abnormal completion
}

// New returns a pipe whose unconsumed window is bounded at capacity bytes.
// A non-positive capacity defaults to 64 KiB.
func New(capacity int) *Pipe {
	if capacity <= 0 {
		capacity = 64 * 1024
	}

	p := &Pipe{max: capacity}
	p.readable.L = &p.mu
	p.writable.L = &p.mu

	return p
}

// Write appends b to the pipe in order, blocking while the buffer is at
// capacity. It returns the number of bytes written, which is len(b) unless
// the pipe completes mid-write.
func (p *Pipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0

	for len(b) > 0 {
		for !p.done && len(p.buf)-p.pos >= p.max {
			p.writable.Wait()
		}

		if p.done {
			return total, p.completionErr()
		}

		room := p.max - (len(p.buf) - p.pos)

		n := len(b)
		if n > room {
			n = room
		}

		p.buf = append(p.buf, b[:n]...)
		b = b[n:]
		total += n

		p.readable.Broadcast()
	}

	return total, nil
}

// Next returns the unconsumed bytes once at least min are buffered,
// blocking until then. The returned slice is valid until the next Advance
// or Write; the caller must not retain it.
//
// On clean completion with fewer than min bytes left it returns the
// remainder (possibly nil) together with io.EOF. On abnormal completion it
// returns the completion error regardless of buffered bytes.
func (p *Pipe) Next(min int) ([]byte, error) {
	if min < 1 {
		min = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for !p.done && len(p.buf)-p.pos < min {
		p.readable.Wait()
	}

	if p.err != nil {
		return nil, p.err
	}

	if len(p.buf)-p.pos >= min {
		return p.buf[p.pos:], nil
	}

	// Cleanly completed with a short remainder.
	if p.pos == len(p.buf) {
		return nil, io.EOF
	}

	return p.buf[p.pos:], io.EOF
}

// Advance commits that n bytes returned by Next have been consumed,
// releasing their storage for reuse and unblocking a parked writer.
func (p *Pipe) Advance(n int) {
	if n <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pos += n
	if p.pos > len(p.buf) {
		p.pos = len(p.buf)
	}

	if p.pos == len(p.buf) {
		p.buf = p.buf[:0]
		p.pos = 0
	} else if p.pos > compactThreshold {
		copied := copy(p.buf, p.buf[p.pos:])
		p.buf = p.buf[:copied]
		p.pos = 0
	}

	p.writable.Broadcast()
}

// Capacity returns the back-pressure bound: a writer blocks once this many
// unconsumed bytes are buffered, so Next can never observe more than this
// without an intervening Advance.
func (p *Pipe) Capacity() int {
	return p.max
}

// Buffered reports the number of unconsumed bytes currently held.
func (p *Pipe) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.buf) - p.pos
}

// Close marks clean end-of-stream. Buffered bytes remain readable; once
// drained, Next returns io.EOF. Close is idempotent and does not override
// a prior CloseWithError.
func (p *Pipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.complete(nil)
}

// CloseWithError marks abnormal completion. Any pending or future Next and
// Write observe err. A nil err behaves like Close. The first completion
// wins.
func (p *Pipe) CloseWithError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.complete(err)
}

func (p *Pipe) complete(err error) {
	if p.done {
		return
	}

	p.done = true
	p.err = err

	p.readable.Broadcast()
	p.writable.Broadcast()
}

// completionErr is what a writer sees after completion.
// Caller must hold p.mu.
func (p *Pipe) completionErr() error {
	if p.err != nil {
		return p.err
	}

	return errors.ErrPipeClosed
}

// Read implements io.Reader over the unconsumed bytes, copying into b and
// advancing the cursor. It is the streaming view handed out for response
// bodies.
func (p *Pipe) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	d, err := p.Next(1)
	if len(d) == 0 {
		return 0, err
	}

	n := copy(b, d)
	p.Advance(n)

	return n, nil
}
