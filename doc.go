// Package streamwire provides a minimal-allocation streaming client for a
// text-based request/response protocol over a raw byte stream (a TCP
// socket, optionally TLS-wrapped).
//
// A session runs two background loops: a sender draining an outbound byte
// pipe into the socket, and a receiver pumping socket bytes into an
// inbound pipe. Send serializes a request into the outbound pipe, parses
// the response head incrementally off the inbound pipe, and hands back the
// head together with a live streaming handle over the body bytes, which
// are never fully buffered.
//
// # Basic Usage
//
//	s := streamwire.NewSession()
//	defer s.Close()
//
//	err := s.Connect(ctx, "example.com", 80, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := s.Send(ctx, &streamwire.Request{
//	    Method: "GET",
//	    Target: "/",
//	    Host:   "example.com",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer res.Body.Close()
//
//	fmt.Println(res.StatusCode, res.Reason)
//	io.Copy(os.Stdout, res.Body)
//
// Sessions carry one exchange at a time: drain (or Close) a response body
// before the next Send. There is no pipelining, pooling, or retry policy;
// layer those above this package. A caller-level timeout is applied by
// closing the session, which terminates both loops and fails any pending
// exchange.
package streamwire
