package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the GORELAY_ prefix. Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg. Only non-empty
// env vars override the existing value. This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("GORELAY_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("GORELAY_PORT"); v > 0 {
		cfg.Port = v
	}
	if envBool("GORELAY_LISTEN") {
		cfg.Listen = true
	}
	if envBool("GORELAY_DNS") {
		cfg.AllowDNS = true
	}
	if v := envInt("GORELAY_TIMEOUT"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v := envInt("GORELAY_RETRY"); v > 0 {
		cfg.RetryAttempts = v
	}

	// Listen behaviour
	if envBool("GORELAY_ECHO") {
		cfg.Echo = true
	}
	if envBool("GORELAY_BANNER") {
		cfg.Banner = true
	}
	if v := envInt("GORELAY_BANNER_SIZE"); v > 0 {
		cfg.BannerSize = v
	}
	if v := envInt("GORELAY_MAX_LINE"); v > 0 {
		cfg.MaxLine = v
	}
	if v := envInt("GORELAY_MAX_CONNS"); v > 0 {
		cfg.MaxConns = v
	}

	// Output
	if v := envInt("GORELAY_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	if envBool("GORELAY_STATS") {
		cfg.Stats = true
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
