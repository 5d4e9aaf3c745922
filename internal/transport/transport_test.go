package transport

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/streamwire/streamwire-go/internal/bytechan"
	"github.com/streamwire/streamwire-go/internal/config"
	"github.com/streamwire/streamwire-go/internal/errors"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestRunSender_DrainsPipeToConn verifies the sender writes committed
// bytes in order and exits once the pipe completes.
func TestRunSender_DrainsPipeToConn(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	out := bytechan.New(0)

	done := make(chan error, 1)

	go func() {
		done <- RunSender(discardLog(), client, out)
		client.Close()
	}()

	go func() {
		_, _ = out.Write([]byte("first "))
		_, _ = out.Write([]byte("second"))
		out.Close()
	}()

	got, err := io.ReadAll(server)
	require.NoError(t, err)
	require.Equal(t, "first second", string(got))

	require.NoError(t, <-done)
}

// TestRunSender_WriteFailureFailsPipe verifies a dead connection surfaces
// as a TransportError on the outbound pipe.
func TestRunSender_WriteFailureFailsPipe(t *testing.T) {
	client, server := net.Pipe()
	server.Close()
	defer client.Close()

	out := bytechan.New(0)

	done := make(chan error, 1)

	go func() {
		done <- RunSender(discardLog(), client, out)
	}()

	_, _ = out.Write([]byte("doomed"))

	err := <-done
	require.Error(t, err)

	var terr *errors.TransportError

	require.ErrorAs(t, err, &terr)
	require.Equal(t, "write", terr.Op)

	// The pipe now rejects the producer with the same error.
	_, werr := out.Write([]byte("more"))
	require.ErrorAs(t, werr, &terr)
}

// TestRunReceiver_PumpsConnToPipe verifies inbound bytes become readable
// through the pipe and a peer close yields clean end-of-stream.
func TestRunReceiver_PumpsConnToPipe(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	in := bytechan.New(0)

	done := make(chan error, 1)

	go func() {
		done <- RunReceiver(discardLog(), client, in, 16)
	}()

	go func() {
		_, _ = server.Write([]byte("inbound "))
		_, _ = server.Write([]byte("bytes"))
		server.Close()
	}()

	got, err := io.ReadAll(in)
	require.NoError(t, err)
	require.Equal(t, "inbound bytes", string(got))

	require.NoError(t, <-done)
}

// TestRunReceiver_ReadFailureFailsPipe verifies an aborted connection
// surfaces as a TransportError to a blocked pipe reader.
func TestRunReceiver_ReadFailureFailsPipe(t *testing.T) {
	client, server := net.Pipe()

	in := bytechan.New(0)

	done := make(chan error, 1)

	go func() {
		done <- RunReceiver(discardLog(), client, in, 16)
	}()

	waiting := make(chan error, 1)

	go func() {
		_, err := in.Next(1)
		waiting <- err
	}()

	// Closing our own end makes the blocked Read fail rather than EOF.
	client.Close()

	defer server.Close()

	select {
	case err := <-waiting:
		var terr *errors.TransportError

		require.ErrorAs(t, err, &terr)
	case <-time.After(time.Second):
		t.Fatal("blocked pipe reader did not wake on transport failure")
	}

	<-done
}

// TestRunReceiver_StopsWhenPipeTornDown verifies the receiver exits when
// the session completes the inbound pipe during shutdown.
func TestRunReceiver_StopsWhenPipeTornDown(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	in := bytechan.New(0)
	in.CloseWithError(errors.ErrSessionClosed)

	done := make(chan error, 1)

	go func() {
		done <- RunReceiver(discardLog(), client, in, 16)
	}()

	_, _ = server.Write([]byte("late data"))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("receiver did not exit after pipe teardown")
	}
}

// TestDial_Loopback verifies a plain TCP dial against a local listener.
func TestDial_Loopback(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer ln.Close()

	go func() {
		conn, aerr := ln.Accept()
		if aerr == nil {
			conn.Close()
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)

	conn, err := Dial(context.Background(), "127.0.0.1", addr.Port, false,
		(&config.Options{}).WithDefaults())
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

// TestDial_Refused verifies a failed dial returns an error.
func TestDial_Refused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	opts := (&config.Options{}).WithDefaults()
	opts.DialTimeout = 500 * time.Millisecond

	_, err = Dial(context.Background(), "127.0.0.1", port, false, opts)
	require.Error(t, err)
}

// TestDial_CustomDialer verifies an injected dialer replaces the built-in
// connection setup.
func TestDial_CustomDialer(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()

	opts := (&config.Options{}).WithDefaults()
	opts.Dialer = dialerFunc(func(context.Context, string, string) (net.Conn, error) {
		return client, nil
	})

	conn, err := Dial(context.Background(), "example.com", 80, true, opts)
	require.NoError(t, err)
	require.Same(t, client, conn)
}

type dialerFunc func(ctx context.Context, network, addr string) (net.Conn, error)

func (f dialerFunc) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return f(ctx, network, addr)
}
