// Package transport provides connection establishment and the two
// background loops binding a connection to the session's byte pipes.
//
// The pairing is fixed: the sender is the connection's only writer and the
// outbound pipe's only reader; the receiver is the connection's only
// reader and the inbound pipe's only writer. Loop failures are converted
// into pipe completion-with-error so blocked producers and consumers wake
// instead of hanging.
package transport
