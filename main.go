package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/assetgrid/internal/app"
	"github.com/atomicstack/assetgrid/internal/config"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is replaced at build time through -ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitError carries the process exit status for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return 1
}

// newRootCmd builds the command tree. Without a subcommand it opens the
// catalog browser.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assetgrid [source]",
		Short: "Browse an asset catalog as a searchable card grid",
		Long: `assetgrid loads a catalog.json index from a local path or an HTTP(S)
URL and shows its items as a virtualised card grid with folder, facet
and text filters.

Every flag can also be set through an ASSETGRID_* environment variable
or a YAML file named by --config.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			defer logging.Close()
			traceStartup(cfg)
			if err := app.Run(cfg.App); err != nil {
				logging.Error(err)
				return err
			}
			return nil
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newQueryCmd(), newTreeCmd(), newVersionCmd())
	return cmd
}

// loadConfig resolves and validates options for cmd and points logging at
// the configured destination.
func loadConfig(cmd *cobra.Command, positional []string) (config.Config, error) {
	cfg, err := config.Resolve(cmd.Flags(), positional, os.Environ())
	if err != nil {
		return config.Config{}, &exitError{code: 2, err: fmt.Errorf("configuration error: %w", err)}
	}
	if len(os.Args) > 1 {
		cfg.Args = append([]string(nil), os.Args[1:]...)
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, &exitError{code: 2, err: fmt.Errorf("configuration error: %w", err)}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	logging.SetVerbose(cfg.Features.Verbose)
	return cfg, nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
