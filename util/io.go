package util

import (
	"context"
	"errors"
	"io"
	"net"
)

// MaxChunk is the largest number of bytes moved by one relay read and
// the default line-buffer capacity, terminator included.
const MaxChunk = 256

// ReadLine reads a single newline-terminated line from r into buf.
//
// At most len(buf)-1 data bytes are stored; the newline, when seen, is
// kept as the last data byte. The byte after the data is always set to
// zero. Reads are issued one byte at a time so that nothing beyond the
// delimiter is consumed from the stream. A clean end-of-stream is not
// an error: ReadLine returns whatever was read before it.
//
// The returned count excludes the zero terminator. A zero-length buf
// is a no-op returning 0.
func ReadLine(r io.Reader, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	limit := len(buf) - 1
	n := 0
	for n < limit {
		nr, err := r.Read(buf[n : n+1])
		if nr > 0 {
			n += nr
			if buf[n-1] == '\n' {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			buf[n] = 0
			return n, err
		}
	}
	buf[n] = 0
	return n, nil
}

// WriteFull writes all of p to w, looping over partial writes. On
// return either every byte has been accepted by w or the error from
// the failing write is reported; no partial success is ever returned.
func WriteFull(w io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// CopyChunks forwards src to dst in reads of at most len(buf) bytes,
// delivering each chunk in full (via WriteFull) before the next read.
// It returns the total byte count forwarded. A clean end-of-stream on
// src ends the copy without error.
func CopyChunks(dst io.Writer, src io.Reader, buf []byte) (int64, error) {
	var total int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			total += int64(n)
			if werr := WriteFull(dst, buf[:n]); werr != nil {
				return total, werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, err
		}
	}
}

// Relay shuttles data between a network connection and a local
// reader/writer pair (typically stdin/stdout) until either side
// reaches end-of-stream or the context is cancelled. The first
// end-of-stream terminates both directions: the connection is closed
// so no further read is attempted on the side that signalled it.
//
// Relay joins the network-reading goroutine (the close unblocks it)
// but never the local-input one: a source with no data pending, such
// as an idle terminal, cannot be unblocked portably. That goroutine
// is left detached and dies on its next read or write.
func Relay(ctx context.Context, conn net.Conn, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	netDone := make(chan struct{})

	// remote → local output
	go func() {
		defer close(netDone)
		buf := GetChunk()
		defer PutChunk(buf)
		_, err := CopyChunks(out, conn, *buf)
		errCh <- err
		cancel()
	}()

	// local input → remote
	go func() {
		buf := GetChunk()
		defer PutChunk(buf)
		_, err := CopyChunks(conn, in, *buf)
		errCh <- err
		cancel()
	}()

	<-ctx.Done()
	conn.Close() // unblock the pending network read/write
	<-netDone

	var relayErr error
	for {
		select {
		case err := <-errCh:
			if err != nil && !isHarmless(err) && relayErr == nil {
				relayErr = err
			}
		default:
			return relayErr
		}
	}
}

// isHarmless returns true for errors that are expected while tearing
// a relay down: the losing direction sees the connection it was
// blocked on vanish underneath it.
func isHarmless(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	// net.OpError wrapping "use of closed network connection"
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}
