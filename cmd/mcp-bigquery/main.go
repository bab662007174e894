// Package main provides the entry point for the mcp-bigquery server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/txn2/mcp-bigquery/internal/server"
	"github.com/txn2/mcp-bigquery/pkg/bigquery"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type serverOptions struct {
	configPath  string
	transport   string
	address     string
	projectID   string
	location    string
	credentials string
	verbose     bool
	showVersion bool
}

func parseFlags(args []string) (serverOptions, error) {
	opts := serverOptions{}
	fs := flag.NewFlagSet("mcp-bigquery", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	fs.StringVar(&opts.transport, "transport", "stdio", "Transport type: stdio, http")
	fs.StringVar(&opts.address, "address", ":8080", "Server address for HTTP transport")
	fs.StringVar(&opts.projectID, "project", "", "Google Cloud project id (overrides config)")
	fs.StringVar(&opts.location, "location", "", "Query execution region (overrides config)")
	fs.StringVar(&opts.credentials, "credentials", "", "Path to service account credentials file")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("parsing flags: %w", err)
	}
	return opts, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	// Logs go to stderr: stdout belongs to the stdio transport.
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// loadConfig resolves configuration from file, environment and flags, with
// flags taking precedence.
func loadConfig(opts serverOptions) (bigquery.Config, error) {
	cfg, err := bigquery.LoadConfig(opts.configPath)
	if err != nil {
		return bigquery.Config{}, err
	}
	if opts.projectID != "" {
		cfg.ProjectID = opts.projectID
	}
	if opts.location != "" {
		cfg.Location = opts.location
	}
	if opts.credentials != "" {
		cfg.CredentialsFile = opts.credentials
	}
	return cfg, nil
}

func run() error {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Printf("mcp-bigquery version %s\n", server.Version)
		return nil
	}

	log := newLogger(opts.verbose)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, log, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Warn("closing server", "error", err)
		}
	}()

	switch opts.transport {
	case "stdio":
		return srv.ServeStdio(ctx)
	case "http":
		return srv.ServeHTTP(ctx, opts.address)
	default:
		return fmt.Errorf("unknown transport: %s", opts.transport)
	}
}
