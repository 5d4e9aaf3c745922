// Package bytechan provides the bounded byte pipe connecting the transport
// loops to the exchange logic.
//
// Each session owns two pipes: the outbound pipe decouples request
// serialization from socket writes, and the inbound pipe decouples socket
// reads from response parsing. Both are strictly single-producer/
// single-consumer; the pairing is fixed at session construction.
package bytechan
