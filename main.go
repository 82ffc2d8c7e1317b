package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vercel/config-mcp-server/internal/config"
	"github.com/vercel/config-mcp-server/internal/logging"
	"github.com/vercel/config-mcp-server/internal/metrics"
	"github.com/vercel/config-mcp-server/tools"
	"github.com/vercel/config-mcp-server/validator"
)

const (
	version     = "0.1.0"
	serverName  = "vercel-config-mcp-server"
	description = "MCP server for vercel.json validation and configuration assistance"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           serverName,
		Short:         description,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML settings file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		// Logging may not be set up yet; MCP uses stdout for protocol
		fmt.Fprintf(os.Stderr, "%s: %v\n", serverName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(settings)
	if err != nil {
		return err
	}
	logging.SetGlobal(logger)
	defer logging.Sync()

	logging.Info("server starting", zap.String("name", serverName), zap.String("version", version))

	v, err := validator.New(validator.WithFileName(settings.FileName))
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	collector := metrics.NewCollector(nil)
	if settings.MetricsAddress != "" {
		srv := startMetricsServer(settings.MetricsAddress, collector)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Warn("metrics server shutdown failed", zap.Error(err))
			}
		}()
	}

	server := createMCPServer()

	toolset := tools.New(v, settings, collector)
	count := toolset.Register(server)
	logging.Info("tools registered", zap.Int("count", count))

	// Set up cleanup on shutdown
	defer func() {
		if err := toolset.Close(); err != nil {
			logging.Error("failed to close doc search", zap.Error(err))
		}
	}()

	logging.Info("server ready and waiting for connections")

	// Run server with stdio transport
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// newLogger writes to the configured log file, or stderr
func newLogger(s *config.Settings) (*zap.Logger, error) {
	if s.LogFile != "" {
		return logging.NewFile(s.LogLevel, s.LogFile, s.LogRotation)
	}
	return logging.New(s.LogLevel)
}

// createMCPServer initializes the MCP server
func createMCPServer() *mcp.Server {
	return mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil, // Default options
	)
}

func startMetricsServer(addr string, collector *metrics.Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logging.Info("metrics endpoint listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
