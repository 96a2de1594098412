// Package config defines the runtime configuration for gorelay and
// provides helpers for parsing and validating ports and addresses.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	gerrors "gorelay/internal/errors"
)

// Config holds every tuneable for a single gorelay session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Host    string // connect mode: server address
	Port    int    // destination port (connect) or bind port (listen)
	Listen  bool
	Timeout time.Duration

	// AllowDNS permits hostnames in connect mode. Off by default:
	// the target must be a numeric IPv4 address.
	AllowDNS bool

	// RetryAttempts redials this many times with backoff in connect
	// mode (0 = single attempt).
	RetryAttempts int

	// ── Listen behaviour ─────────────────────────────────────────────
	Echo       bool // echo lines back instead of relaying
	Banner     bool // send a random greeting and hang up
	BannerSize int  // on-wire banner payload size
	MaxLine    int  // line-buffer capacity, terminator included
	MaxConns   int  // concurrent handler cap (0 = unlimited)

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
	Stats   bool // print a metrics snapshot on exit
}

// ── Port / address helpers ───────────────────────────────────────────

// ParsePort accepts a numeric port string in 1-65535.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// ValidateHost checks a connect-mode target. Without allowDNS the
// host must be a numeric IPv4 address in dotted-decimal form; this is
// verified before any connection is attempted.
func ValidateHost(host string, allowDNS bool) error {
	if host == "" {
		return &gerrors.ConfigError{
			Field:   "host",
			Message: "server address is required",
			Hint:    "gorelay <addr> to connect, gorelay -l to listen",
		}
	}
	if allowDNS {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return &gerrors.ConfigError{
			Field:   "host",
			Value:   host,
			Message: "not a numeric IPv4 address",
			Hint:    "pass --dns to allow hostnames",
		}
	}
	return nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &gerrors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
		}
	}

	if c.Listen {
		if c.Echo && c.Banner {
			return fmt.Errorf("--echo and --banner are mutually exclusive")
		}
		if c.MaxConns < 0 {
			return &gerrors.ConfigError{
				Field:   "max-conns",
				Value:   c.MaxConns,
				Message: "must be zero or positive",
			}
		}
	} else {
		if c.Echo || c.Banner {
			return fmt.Errorf("--echo and --banner require listen mode (-l)")
		}
		if err := ValidateHost(c.Host, c.AllowDNS); err != nil {
			return err
		}
	}

	if c.MaxLine < 0 {
		return &gerrors.ConfigError{
			Field:   "max-line",
			Value:   c.MaxLine,
			Message: "must be zero or positive",
		}
	}

	return nil
}
