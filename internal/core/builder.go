package core

import (
	"fmt"
	"time"

	"gorelay/config"
	"gorelay/internal/capability"
	"gorelay/internal/metrics"
	"gorelay/internal/retry"
	"gorelay/internal/transport"
	"gorelay/util"
)

// Build constructs the appropriate Mode from the given configuration.
// This is the single dispatch point between the CLI and the modes.
func Build(cfg *config.Config, logger *util.Logger, collector *metrics.Collector) (Mode, error) {
	if cfg.Listen {
		return buildListen(cfg, logger, collector)
	}
	return buildConnect(cfg, logger, collector)
}

// ── mode builders ────────────────────────────────────────────────────

func buildConnect(cfg *config.Config, logger *util.Logger, collector *metrics.Collector) (Mode, error) {
	if err := config.ValidateHost(cfg.Host, cfg.AllowDNS); err != nil {
		return nil, err
	}

	dialer := &transport.TCPDialer{
		Timeout: cfg.Timeout,
		Logger:  logger,
	}
	if cfg.RetryAttempts > 0 {
		dialer.Retry = retry.DefaultBackoff(cfg.RetryAttempts + 1)
	}

	return &ConnectMode{
		Dialer:     dialer,
		Capability: &capability.Relay{},
		Network:    "tcp",
		Address:    util.FormatAddr(cfg.Host, cfg.Port),
		Logger:     logger,
		Metrics:    collector,
	}, nil
}

func buildListen(cfg *config.Config, logger *util.Logger, collector *metrics.Collector) (Mode, error) {
	handler, err := buildCapability(cfg)
	if err != nil {
		return nil, err
	}

	return &ListenMode{
		Address:    fmt.Sprintf(":%d", cfg.Port),
		MaxConns:   cfg.MaxConns,
		Capability: handler,
		Logger:     logger,
		Metrics:    collector,
	}, nil
}

// buildCapability selects the per-connection behaviour for listen
// mode. Connect mode always relays.
func buildCapability(cfg *config.Config) (capability.Capability, error) {
	switch {
	case cfg.Banner:
		return capability.NewBanner(time.Now().UnixNano(), cfg.BannerSize)
	case cfg.Echo:
		return &capability.Echo{MaxLine: cfg.MaxLine}, nil
	default:
		return &capability.Relay{}, nil
	}
}
