package capability

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"gorelay/internal/session"
	"gorelay/util"
)

const (
	// DefaultBannerSize is the on-wire size of a banner payload.
	DefaultBannerSize = 64

	// maxGreeting bounds the random greeting length in bytes.
	maxGreeting = 10
)

// Banner sends a short random greeting, zero-padded to a fixed-size
// chunk, then returns. It is a one-shot server payload. The generator is
// an explicit per-instance source rather than the process-wide one,
// seeded once at construction.
type Banner struct {
	size int

	mu  sync.Mutex // rand.Rand is not safe for concurrent handlers
	rng *rand.Rand
}

// NewBanner returns a Banner writing size-byte payloads. A size of 0
// selects DefaultBannerSize.
func NewBanner(seed int64, size int) (*Banner, error) {
	if size == 0 {
		size = DefaultBannerSize
	}
	if size < maxGreeting+2 || size > util.MaxChunk {
		return nil, fmt.Errorf("banner size %d out of range %d-%d",
			size, maxGreeting+2, util.MaxChunk)
	}
	return &Banner{
		size: size,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Handle writes one newline-terminated random greeting padded with
// zeros to the configured size, delivered in full via the exact
// writer.
func (b *Banner) Handle(ctx context.Context, sess *session.Session) error {
	buf := make([]byte, b.size)

	b.mu.Lock()
	n := b.rng.Intn(maxGreeting) + 1
	for i := 0; i < n; i++ {
		buf[i] = byte('a' + b.rng.Intn(26))
	}
	b.mu.Unlock()
	buf[n] = '\n'

	sess.Logger.Debug("banner: sending %d-byte payload (%d-byte greeting)", b.size, n)
	return util.WriteFull(sess.Conn, buf)
}
