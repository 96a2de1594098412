package core

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gorelay/config"
	"gorelay/internal/capability"
	gerrors "gorelay/internal/errors"
	"gorelay/internal/retry"
	"gorelay/internal/transport"
	"gorelay/util"
)

func TestBuildRejectsMalformedAddress(t *testing.T) {
	cfg := &config.Config{Host: "not.an.ip", Port: config.DefaultPort}

	_, err := Build(cfg, util.NewLogger(0), nil)
	require.Error(t, err)

	var ce *gerrors.ConfigError
	require.ErrorAs(t, err, &ce, "malformed addresses are a config error, found before dialling")
	require.Equal(t, "host", ce.Field)
}

func TestBuildAllowsHostnameWithDNS(t *testing.T) {
	cfg := &config.Config{Host: "db.internal", Port: config.DefaultPort, AllowDNS: true}

	_, err := Build(cfg, util.NewLogger(0), nil)
	require.NoError(t, err)
}

func TestConnectModeReceivesPayload(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	payload := bytes.Repeat([]byte("p"), 64)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		util.WriteFull(conn, payload) //nolint:errcheck
		conn.Close()
	}()

	stdinR, stdinW := io.Pipe()
	defer stdinW.Close()
	var out bytes.Buffer

	m := &ConnectMode{
		Dialer:     &transport.TCPDialer{},
		Capability: &capability.Relay{},
		Network:    "tcp",
		Address:    ln.Addr().String(),
		Logger:     util.NewLogger(0),
		Stdin:      stdinR,
		Stdout:     &out,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, m.Run(ctx))
	require.Equal(t, payload, out.Bytes())
}

func TestConnectModeLocalEOF(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		data, _ := io.ReadAll(conn)
		conn.Close()
		received <- data
	}()

	m := &ConnectMode{
		Dialer:     &transport.TCPDialer{},
		Capability: &capability.Relay{},
		Network:    "tcp",
		Address:    ln.Addr().String(),
		Logger:     util.NewLogger(0),
		Stdin:      strings.NewReader("hello\n"),
		Stdout:     io.Discard,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, m.Run(ctx))

	select {
	case data := <-received:
		require.Equal(t, "hello\n", string(data))
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the relay end")
	}
}

func TestConnectModeDialFailure(t *testing.T) {
	// A port with nothing listening.
	port, err := util.FindFreePort()
	require.NoError(t, err)

	m := &ConnectMode{
		Dialer:     &transport.TCPDialer{},
		Capability: &capability.Relay{},
		Network:    "tcp",
		Address:    util.FormatAddr("127.0.0.1", port),
		Logger:     util.NewLogger(0),
		Stdin:      strings.NewReader(""),
		Stdout:     io.Discard,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.Error(t, m.Run(ctx))
}

func TestDialRetryExhausts(t *testing.T) {
	port, err := util.FindFreePort()
	require.NoError(t, err)

	d := &transport.TCPDialer{
		Retry: &retry.Backoff{
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			MaxAttempts:  3,
		},
		Logger: util.NewLogger(0),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = d.Dial(ctx, "tcp", util.FormatAddr("127.0.0.1", port))
	require.Error(t, err)
	require.Contains(t, err.Error(), "max retries")
}

func TestDialRetryWaitsForServer(t *testing.T) {
	port, err := util.FindFreePort()
	require.NoError(t, err)
	addr := util.FormatAddr("127.0.0.1", port)

	// Bring the listener up only after the first attempts have failed.
	lnCh := make(chan net.Listener, 1)
	go func() {
		time.Sleep(100 * time.Millisecond)
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			lnCh <- nil
			return
		}
		lnCh <- ln
	}()

	d := &transport.TCPDialer{
		Retry: &retry.Backoff{
			InitialDelay: 20 * time.Millisecond,
			MaxDelay:     50 * time.Millisecond,
			MaxAttempts:  0, // until context
		},
		Logger: util.NewLogger(0),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := d.Dial(ctx, "tcp", addr)
	require.NoError(t, err)
	conn.Close()

	if ln := <-lnCh; ln != nil {
		ln.Close()
	}
}
