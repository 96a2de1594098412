package capability

import (
	"context"

	"gorelay/internal/session"
	"gorelay/util"
)

// Relay copies data bidirectionally between the connection and the
// session's stdin/stdout, the default interactive and pipe mode.
// The first end-of-stream on either side ends the session.
type Relay struct{}

// Handle shuttles bytes between the network connection and the local
// I/O endpoints until one side closes or the context is cancelled.
func (r *Relay) Handle(ctx context.Context, sess *session.Session) error {
	return util.Relay(ctx, sess.Conn, sess.Stdin, sess.Stdout)
}
