package capability

import (
	"context"

	"gorelay/internal/session"
	"gorelay/util"
)

// Echo reads newline-terminated lines from the connection and writes
// each one back unchanged until the peer stops sending.
type Echo struct {
	// MaxLine is the line-buffer capacity, terminator included
	// (default util.MaxChunk). Longer lines are echoed in pieces.
	MaxLine int
}

// Handle echoes lines until end-of-stream or context cancellation.
func (e *Echo) Handle(ctx context.Context, sess *session.Session) error {
	size := e.MaxLine
	if size <= 0 {
		size = util.MaxChunk
	}
	buf := make([]byte, size)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := util.ReadLine(sess.Conn, buf)
		if err != nil {
			return err
		}
		if n == 0 {
			// Clean end-of-stream: the peer is done.
			return nil
		}
		if err := util.WriteFull(sess.Conn, buf[:n]); err != nil {
			return err
		}
	}
}
