package transport

import (
	"io"
	"log/slog"
	"net"

	"github.com/streamwire/streamwire-go/internal/bytechan"
	"github.com/streamwire/streamwire-go/internal/errors"
)

// RunSender drains the outbound pipe into the connection until the pipe
// completes or a write fails. It is the sole writer to the connection.
//
// On a write failure the pipe is completed with a TransportError so a
// producer parked in Write wakes with the failure instead of hanging; the
// error is also returned so the session can tear down the connection.
func RunSender(log *slog.Logger, conn net.Conn, out *bytechan.Pipe) error {
	log = log.With("component", "sender")

	for {
		b, err := out.Next(1)

		if len(b) > 0 {
			n, werr := conn.Write(b)
			out.Advance(n)

			if werr != nil {
				terr := &errors.TransportError{Op: "write", Err: werr}
				out.CloseWithError(terr)
				log.Debug("Sender stopping on write failure", "error", werr)

				return terr
			}

			log.Debug("Flushed outbound bytes", "n", n)
		}

		if err == io.EOF {
			log.Debug("Outbound pipe completed, sender exiting")

			return nil
		}

		if err != nil {
			// Pipe failed elsewhere; nothing left to drain.
			return err
		}
	}
}

// RunReceiver pumps connection bytes into the inbound pipe as they arrive
// until the peer closes or a read fails. It is the sole reader from the
// connection.
//
// A clean peer close completes the pipe so readers observe end-of-stream;
// a read failure completes it with a TransportError so a parked parser
// wakes with the failure.
func RunReceiver(log *slog.Logger, conn net.Conn, in *bytechan.Pipe, chunkSize int) error {
	log = log.With("component", "receiver")

	if chunkSize <= 0 {
		chunkSize = 32 * 1024
	}

	buf := make([]byte, chunkSize)

	for {
		n, err := conn.Read(buf)

		if n > 0 {
			if _, werr := in.Write(buf[:n]); werr != nil {
				// Inbound pipe torn down underneath us; stop pumping.
				log.Debug("Inbound pipe completed, receiver exiting", "error", werr)

				return nil
			}

			log.Debug("Buffered inbound bytes", "n", n)
		}

		if err == io.EOF {
			in.Close()
			log.Debug("Peer closed connection, receiver exiting")

			return nil
		}

		if err != nil {
			terr := &errors.TransportError{Op: "read", Err: err}
			in.CloseWithError(terr)
			log.Debug("Receiver stopping on read failure", "error", err)

			return terr
		}
	}
}
