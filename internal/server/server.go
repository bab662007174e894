// Package server wires configuration, the warehouse client and the toolkit
// into a servable MCP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/txn2/mcp-bigquery/pkg/bigquery"
	"github.com/txn2/mcp-bigquery/pkg/health"
	"github.com/txn2/mcp-bigquery/pkg/tools"
)

// Version is set at build time.
var Version = "dev"

// serverName identifies this implementation to MCP clients.
const serverName = "mcp-bigquery"

// httpShutdownTimeout bounds graceful HTTP shutdown.
const httpShutdownTimeout = 10 * time.Second

// Server hosts the MCP server over stdio or HTTP.
type Server struct {
	log     *slog.Logger
	cfg     bigquery.Config
	toolkit *tools.Toolkit
	mcp     *mcp.Server
	checker *health.Checker
}

// Option customizes server construction.
type Option func(*options)

type options struct {
	client bigquery.Client
}

// WithClient injects a warehouse client instead of constructing the Google
// one. Used by tests.
func WithClient(client bigquery.Client) Option {
	return func(o *options) { o.client = client }
}

// New validates configuration, builds the warehouse client and registers the
// toolkit. Configuration errors here are fatal: the caller must exit before
// serving.
func New(ctx context.Context, log *slog.Logger, cfg bigquery.Config, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = cfg.ApplyDefaults()

	client := o.client
	if client == nil {
		var err error
		client, err = bigquery.NewGoogleClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating warehouse client: %w", err)
		}
	}

	toolkit := tools.New(log, client, cfg)

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: Version,
	}, nil)

	if err := toolkit.RegisterAll(mcpServer); err != nil {
		toolkit.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	toolkit.RegisterTableResources(ctx, mcpServer)

	return &Server{
		log:     log,
		cfg:     cfg,
		toolkit: toolkit,
		mcp:     mcpServer,
		checker: health.NewChecker(client),
	}, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// ServeStdio runs the server on stdin/stdout until the context is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.checker.SetReady()
	s.log.Info("serving MCP over stdio", "project", s.cfg.ProjectID, "location", s.cfg.Location)
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("stdio transport: %w", err)
	}
	return nil
}

// ServeHTTP runs the server on a stateless streamable HTTP handler with
// health and metrics endpoints.
func (s *Server) ServeHTTP(ctx context.Context, address string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, &mcp.StreamableHTTPOptions{Stateless: true})

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.checker.LivenessHandler())
	mux.HandleFunc("/readyz", s.checker.ReadinessHandler())

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.checker.SetReady()
		s.log.Info("serving MCP over HTTP", "address", address, "project", s.cfg.ProjectID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.checker.SetDraining()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down HTTP server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	}
}

// Close releases the toolkit and its warehouse client.
func (s *Server) Close() error {
	return s.toolkit.Close()
}
