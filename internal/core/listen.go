package core

import (
	"context"
	"io"
	"net"
	"os"

	"gorelay/internal/capability"
	gerrors "gorelay/internal/errors"
	"gorelay/internal/metrics"
	"gorelay/internal/retry"
	"gorelay/internal/session"
	"gorelay/util"
)

// ListenMode accepts inbound connections and runs a capability on
// each one in its own detached goroutine. The acceptor keeps no
// handle on a handler after dispatch: handlers own and close their
// connections, and a handler failure ends only that connection.
// Failures of the listening socket itself end the whole mode.
type ListenMode struct {
	Address    string // ":port"
	MaxConns   int    // concurrent handler cap (0 = unlimited)
	Capability capability.Capability
	Logger     *util.Logger
	Metrics    *metrics.Collector

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *ListenMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *ListenMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run starts listening and dispatches accepted connections to the
// capability until the context is cancelled.
func (m *ListenMode) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.Address)
	if err != nil {
		return gerrors.Wrap("listen", m.Address, err)
	}
	defer ln.Close()

	m.Logger.Verbose("listening on %s (tcp)", ln.Addr())

	// Shut the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var sem chan struct{}
	if m.MaxConns > 0 {
		sem = make(chan struct{}, m.MaxConns)
	}

	var delay retry.Delay
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			// Aborted and temporary conditions: back off and keep
			// the listening socket.
			if gerrors.IsRetryable(err) {
				m.Logger.Verbose("transient accept failure: %v", err)
				if serr := delay.Sleep(ctx); serr != nil {
					return nil
				}
				continue
			}
			return gerrors.Wrap("accept", m.Address, err)
		}
		delay.Reset()

		if sem != nil {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				conn.Close()
				return nil
			}
		}

		m.Metrics.ConnectionOpened()
		m.Logger.Verbose("connection from %s", conn.RemoteAddr())

		go m.serveConn(ctx, conn, sem)
	}
}

// serveConn runs the capability for one connection. It is the sole
// closer of conn and is never joined by the accept loop.
func (m *ListenMode) serveConn(ctx context.Context, conn net.Conn, sem chan struct{}) {
	defer func() {
		conn.Close()
		m.Metrics.ConnectionClosed()
		if sem != nil {
			<-sem
		}
	}()

	sess := session.New(conn, m.stdin(), m.stdout(), m.Logger, m.Metrics)
	if err := m.Capability.Handle(ctx, sess); err != nil {
		m.Metrics.RecordError(err.Error())
		m.Logger.Error("handler %s: %v", conn.RemoteAddr(), err)
	}
}
