package streamwire

import (
	"context"

	"github.com/streamwire/streamwire-go/internal/session"
)

// sessionWrapper adapts the internal session to the public interface.
type sessionWrapper struct {
	impl *session.Session
}

// Compile-time check that *sessionWrapper implements the Session interface.
var _ Session = (*sessionWrapper)(nil)

// newSessionImpl creates the internal session implementation.
func newSessionImpl() Session {
	return &sessionWrapper{impl: session.New()}
}

// Connect establishes the connection and starts the transport loops.
func (s *sessionWrapper) Connect(ctx context.Context, host string, port int, secure bool, opts ...Option) error {
	return s.impl.Connect(ctx, host, port, secure, applyOptions(opts))
}

// Send runs one exchange and returns the response head plus body handle.
func (s *sessionWrapper) Send(ctx context.Context, req Marshaler) (*Response, error) {
	res, err := s.impl.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Response{
		Proto:         res.Head.Proto,
		StatusCode:    res.Head.StatusCode,
		Reason:        res.Head.Reason,
		Header:        res.Head.Header,
		Body:          res.Body,
		ContentLength: res.ContentLength,
	}, nil
}

// Close terminates the session.
func (s *sessionWrapper) Close() error {
	return s.impl.Close()
}
