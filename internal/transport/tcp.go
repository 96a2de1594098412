package transport

import (
	"context"
	"net"
	"syscall"
	"time"

	"gorelay/internal/errors"
	"gorelay/internal/retry"
	"gorelay/util"
)

// TCPDialer establishes plain TCP connections, optionally retrying
// transient failures with exponential backoff.
type TCPDialer struct {
	Timeout time.Duration

	// Retry, when non-nil, redials on retryable failures (connection
	// refused by a not-yet-listening server, temporary conditions).
	// Non-retryable errors abort immediately.
	Retry *retry.Backoff

	Logger *util.Logger
}

// Dial connects to address over TCP.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}

	if d.Retry == nil {
		conn, err := dialer.DialContext(ctx, network, address)
		if err != nil {
			return nil, errors.Wrap("dial", address, err)
		}
		return conn, nil
	}

	var conn net.Conn
	err := d.Retry.Do(ctx, func(attempt int) error {
		var derr error
		conn, derr = dialer.DialContext(ctx, network, address)
		if derr == nil {
			return nil
		}
		ne := errors.Wrap("dial", address, derr)
		// Refused connections are retryable here: the whole point of
		// --retry is waiting for a server that is not up yet.
		if !ne.Retryable && !errors.Is(derr, syscall.ECONNREFUSED) {
			return retry.Permanent(ne)
		}
		if d.Logger != nil {
			d.Logger.Verbose("dial attempt %d failed: %v", attempt, derr)
		}
		return ne
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Close is a no-op for stateless TCP dialers.
func (d *TCPDialer) Close() error { return nil }
