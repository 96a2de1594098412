// Package capability defines what happens over an established
// connection. Each Capability encapsulates a single behaviour, such
// as relaying local I/O, echoing lines, or sending a greeting banner,
// and operates on a Session rather than a raw net.Conn, which keeps
// capabilities testable and decoupled from transport details.
package capability

import (
	"context"

	"gorelay/internal/session"
)

// Capability handles a single connection according to a specific
// behaviour. The capability owns the connection's unit of work but
// never its closure: the caller that accepted or dialled the
// connection closes it exactly once when Handle returns.
type Capability interface {
	// Handle runs the capability against the given session.
	// It blocks until the connection is done or the context is
	// cancelled.
	Handle(ctx context.Context, sess *session.Session) error
}
