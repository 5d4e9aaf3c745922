// Package session implements the client session: connection lifecycle,
// the exchange orchestration over the two byte pipes, and incremental
// response-head assembly.
//
// A session moves Disconnected -> Connected -> Closed and is single-use.
// While Connected, the sender and receiver loops run in the background
// under an errgroup whose completion Close observes, so no work dangles
// after disposal.
package session
