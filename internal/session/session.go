// Package session represents a single connection lifecycle, binding a
// network connection with I/O endpoints, logging, and metrics.
//
// Sessions decouple capabilities from concrete I/O sources: a
// capability doesn't need to know whether it's reading from os.Stdin
// or a test buffer, it just uses the session's Reader/Writer.
package session

import (
	"io"
	"net"

	"gorelay/internal/metrics"
	"gorelay/util"
)

// Session encapsulates the runtime context for a single connection.
// Capabilities operate on sessions rather than raw connections,
// enabling clean testing and I/O abstraction.
type Session struct {
	Conn    net.Conn
	Stdin   io.Reader
	Stdout  io.Writer
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// New creates a Session bound to the given connection and I/O pair.
// When collector is non-nil the connection is instrumented so every
// read and write is counted.
func New(conn net.Conn, stdin io.Reader, stdout io.Writer, logger *util.Logger, collector *metrics.Collector) *Session {
	if collector != nil {
		conn = &measuredConn{Conn: conn, collector: collector}
	}
	return &Session{
		Conn:    conn,
		Stdin:   stdin,
		Stdout:  stdout,
		Logger:  logger,
		Metrics: collector,
	}
}

// measuredConn counts bytes crossing the connection.
type measuredConn struct {
	net.Conn
	collector *metrics.Collector
}

func (c *measuredConn) Read(p []byte) (int, error) {
	n, err := c.Conn.Read(p)
	c.collector.BytesReceived(int64(n))
	return n, err
}

func (c *measuredConn) Write(p []byte) (int, error) {
	n, err := c.Conn.Write(p)
	c.collector.BytesSent(int64(n))
	return n, err
}
