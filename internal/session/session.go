package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/streamwire/streamwire-go/internal/bytechan"
	"github.com/streamwire/streamwire-go/internal/config"
	"github.com/streamwire/streamwire-go/internal/errors"
	"github.com/streamwire/streamwire-go/internal/transport"
	"github.com/streamwire/streamwire-go/internal/wire"
)

// Result is the outcome of one exchange: the parsed response head plus a
// live streaming handle over the remaining inbound bytes.
type Result struct {
	Head          *wire.ResponseHead
	Body          io.ReadCloser
	ContentLength int64
}

// Session owns one connection, the two byte pipes, and the two transport
// loops, and runs one exchange at a time over them.
type Session struct {
	log  *slog.Logger
	opts *config.Options

	conn net.Conn
	out  *bytechan.Pipe
	in   *bytechan.Pipe

	// Errgroup for loop lifecycle management
	eg *errgroup.Group

	// Fatal error storage: first loop failure wins
	errMu    sync.RWMutex
	fatalErr error

	// True while a response body has not been fully drained
	inFlight atomic.Bool

	// Lifecycle management
	mu        sync.Mutex
	connected bool
	closed    bool
	closing   bool
	closeOnce sync.Once
}

// New creates a session in the Disconnected state. Call Connect before Send.
func New() *Session {
	return &Session{}
}

// setFatalError stores the first fatal error encountered.
func (s *Session) setFatalError(err error) {
	if err == nil {
		return
	}

	s.errMu.Lock()
	defer s.errMu.Unlock()

	if s.fatalErr == nil {
		s.fatalErr = err
	}
}

// getFatalError returns the stored fatal error, if any.
func (s *Session) getFatalError() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()

	return s.fatalErr
}

func (s *Session) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closing
}

// Connect establishes the connection (negotiating TLS first when secure is
// set), allocates the byte pipes, and starts the sender and receiver loops.
func (s *Session) Connect(ctx context.Context, host string, port int, secure bool, opts *config.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.ErrSessionClosed
	}

	if s.connected {
		return errors.ErrAlreadyConnected
	}

	s.opts = opts.WithDefaults()

	log := s.opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.log = log.With("component", "session")

	s.log.Info("Connecting", "host", host, "port", port, "secure", secure)

	conn, err := transport.Dial(ctx, host, port, secure, s.opts)
	if err != nil {
		s.log.Error("Connect failed", "error", err)

		return &errors.ConnectionError{Host: host, Port: port, Err: err}
	}

	s.conn = conn
	s.out = bytechan.New(s.opts.BufferSize)
	s.in = bytechan.New(s.opts.BufferSize)

	// Loops run until Close; they are joined there, never abandoned.
	s.eg = new(errgroup.Group)

	s.eg.Go(func() error {
		err := transport.RunSender(log, conn, s.out)
		if err != nil && !s.isClosing() {
			s.setFatalError(err)
			// Tear the connection down so the receiver unwinds too.
			_ = conn.Close()

			return err
		}

		return nil
	})

	s.eg.Go(func() error {
		err := transport.RunReceiver(log, conn, s.in, s.opts.ReadChunkSize)
		if err != nil && !s.isClosing() {
			s.setFatalError(err)

			return err
		}

		return nil
	})

	s.connected = true
	s.log.Info("Session connected")

	return nil
}

// Send serializes one request into the outbound pipe, then parses the
// response head off the inbound pipe and returns it together with a
// streaming body handle. Exactly one exchange may be outstanding; the
// previous body must be drained (or closed) first.
func (s *Session) Send(ctx context.Context, req wire.Marshaler) (*Result, error) {
	s.mu.Lock()

	switch {
	case s.closed:
		s.mu.Unlock()

		return nil, errors.ErrSessionClosed
	case !s.connected:
		s.mu.Unlock()

		return nil, errors.ErrNotConnected
	}
	s.mu.Unlock()

	if err := s.getFatalError(); err != nil {
		return nil, err
	}

	if s.inFlight.Load() {
		return nil, errors.ErrExchangeInFlight
	}

	// Check context before touching the wire
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	exchangeID := ulid.Make().String()

	method := ""
	if r, ok := req.(*wire.Request); ok {
		method = r.Method
		s.stampRequestID(r, exchangeID)
	}

	s.log.Debug("Starting exchange", "exchange_id", exchangeID, "method", method)

	if err := req.EncodeTo(s.out); err != nil {
		s.log.Error("Request serialization failed", "exchange_id", exchangeID, "error", err)

		if ferr := s.getFatalError(); ferr != nil {
			return nil, ferr
		}

		return nil, fmt.Errorf("encode request: %w", err)
	}

	head, err := readHead(s.in)
	if err != nil {
		s.log.Error("Response head failed", "exchange_id", exchangeID, "error", err)

		return nil, err
	}

	body, cl, err := wire.NewBody(s.in, head, method)
	if err != nil {
		return nil, &errors.MalformedResponseError{Reason: "invalid body framing", Err: err}
	}

	s.log.Debug("Exchange head complete",
		"exchange_id", exchangeID, "status", head.StatusCode, "content_length", cl)

	// A zero content length means the body is detached from the pipe
	// (no-body status, HEAD, or Content-Length: 0): the connection is
	// already positioned at the next exchange, so the caller need not
	// drain anything before the next Send.
	if cl == 0 {
		return &Result{Head: head, Body: body, ContentLength: cl}, nil
	}

	s.inFlight.Store(true)

	return &Result{
		Head:          head,
		Body:          &trackedBody{rc: body, release: s.releaseExchange},
		ContentLength: cl,
	}, nil
}

// stampRequestID adds an X-Request-ID header unless disabled or already set.
func (s *Session) stampRequestID(r *wire.Request, id string) {
	if s.opts.DisableRequestID {
		return
	}

	if r.Header == nil {
		r.Header = wire.Header{}
	}

	if r.Header.Get("X-Request-ID") == "" {
		r.Header.Set("X-Request-ID", id)
	}
}

func (s *Session) releaseExchange() {
	s.inFlight.Store(false)
}

// Close terminates the session: it completes the outbound pipe so a parked
// sender drains and exits, closes the connection so the receiver unwinds,
// and joins both loops. Idempotent; safe after a partial Connect.
func (s *Session) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.closing = true
		wasConnected := s.connected
		s.connected = false
		s.mu.Unlock()

		if !wasConnected {
			return
		}

		s.log.Info("Closing session")

		s.out.Close()
		s.in.CloseWithError(errors.ErrSessionClosed)

		closeErr = s.conn.Close()

		if err := s.eg.Wait(); err != nil && closeErr == nil {
			closeErr = err
		}

		s.log.Info("Session closed")
	})

	return closeErr
}

// trackedBody marks the exchange drained once the body is fully read or
// closed, re-arming Send.
type trackedBody struct {
	rc       io.ReadCloser
	release  func()
	released bool
}

func (b *trackedBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	if err == io.EOF {
		b.markReleased()
	}

	return n, err
}

func (b *trackedBody) Close() error {
	err := b.rc.Close()
	b.markReleased()

	return err
}

func (b *trackedBody) markReleased() {
	if !b.released {
		b.released = true
		b.release()
	}
}
