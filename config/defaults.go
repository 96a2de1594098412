package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the relay port used when -p is absent, on both
	// the listen and connect sides.
	DefaultPort = 1027

	// DefaultMaxLine is the line-buffer capacity in bytes, zero
	// terminator included.
	DefaultMaxLine = 256

	// DefaultBannerSize is the on-wire size of a banner payload.
	DefaultBannerSize = 64

	// DefaultDialTimeout is the connect-mode TCP timeout.
	DefaultDialTimeout = 30 * time.Second

	// DefaultMaxConns is the concurrent handler cap in listen mode.
	// Zero means no admission control beyond the OS accept queue.
	DefaultMaxConns = 0
)
