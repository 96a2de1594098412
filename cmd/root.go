// Package cmd wires up the CLI flags and dispatches to the relay core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"gorelay/config"
	"gorelay/internal/core"
	"gorelay/internal/metrics"
	"gorelay/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X gorelay/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate gorelay mode.
func Execute(ctx context.Context, args []string) error {
	cfg := &config.Config{
		Port:    config.DefaultPort,
		MaxLine: config.DefaultMaxLine,
		Timeout: config.DefaultDialTimeout,
	}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("gorelay", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.Listen, "listen", "l", cfg.Listen, "Listen mode")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port number")
	fs.BoolVar(&cfg.AllowDNS, "dns", cfg.AllowDNS, "Allow hostnames (default: numeric IPv4 only)")
	fs.IntVarP(&cfg.RetryAttempts, "retry", "r", cfg.RetryAttempts, "Redial attempts with backoff")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Connect timeout in seconds")

	// ── listen behaviour ─────────────────────────────────────────
	fs.BoolVar(&cfg.Echo, "echo", cfg.Echo, "Echo lines back (with -l)")
	fs.BoolVar(&cfg.Banner, "banner", cfg.Banner, "Send a random greeting and hang up (with -l)")
	fs.IntVar(&cfg.BannerSize, "banner-size", cfg.BannerSize, "Banner payload size in bytes")
	fs.IntVar(&cfg.MaxLine, "max-line", cfg.MaxLine, "Line buffer capacity in bytes")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "Max concurrent connections (0 = unlimited)")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "Print a metrics snapshot on exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("gorelay %s\n", version)
		return nil
	}

	if timeoutSec > 0 {
		cfg.Timeout = time.Duration(timeoutSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build and run ────────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	var collector *metrics.Collector
	if cfg.Stats || cfg.Verbose >= 2 {
		collector = metrics.New()
	}

	mode, err := core.Build(cfg, logger, collector)
	if err != nil {
		return err
	}

	runErr := mode.Run(ctx)
	if collector != nil {
		fmt.Fprintln(os.Stderr, collector.JSON())
	}
	return runErr
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if cfg.Listen {
		if len(remaining) > 0 {
			return fmt.Errorf("listen mode takes no positional arguments")
		}
		return nil
	}

	// Connect mode: exactly one server address.
	switch len(remaining) {
	case 0:
		if cfg.Host == "" {
			return fmt.Errorf("server address required (use --help for usage)")
		}
	case 1:
		cfg.Host = remaining[0]
	default:
		return fmt.Errorf("too many arguments for connect mode")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `gorelay - duplex TCP byte-stream relay v%s

Usage:
  gorelay [options] <addr>              Connect and relay stdin/stdout
  gorelay -l [options]                  Listen and relay per connection
  gorelay -l --echo                     Listen, echoing lines back
  gorelay -l --banner                   Listen, greeting and hanging up

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  gorelay 192.0.2.10                    Relay to 192.0.2.10:%d
  gorelay -p 9000 --dns db.internal     Relay to a hostname
  gorelay -l -p 9000 --max-conns 64     Bounded listen mode
  echo "hello" | gorelay 192.0.2.10     Pipe data
`, config.DefaultPort)
}
