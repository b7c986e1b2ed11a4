package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/twmcp-io/twmcp/internal/api"
	"github.com/twmcp-io/twmcp/internal/config"
	"github.com/twmcp-io/twmcp/internal/logbuf"
	"github.com/twmcp-io/twmcp/internal/tool"
)

const (
	serverName    = "twitter-mcp"
	serverVersion = "0.1.0"
)

func main() {
	transport := flag.String("transport", "", "MCP transport: http or stdio (default from TWMCP_TRANSPORT)")
	host := flag.String("host", "", "Listen host for http transport (default from TWMCP_HOST)")
	port := flag.Int("port", 0, "Listen port for http transport (default from TWMCP_PORT)")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Set up logging. In stdio mode stdout carries the MCP wire, so logs
	// must go to stderr.
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logOut := os.Stdout
	if cfg.Transport == config.TransportStdio {
		logOut = os.Stderr
	}
	logBuf := logbuf.New(2000)
	jsonHandler := slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logbuf.NewHandler(jsonHandler, logBuf))

	// Startup diagnostics: which credential variables are set, never values.
	config.CredentialsFromEnv().LogPresence(logger)

	// Credentials are resolved per tool call, so a rotated token does not
	// require a daemon restart.
	session := &tool.Session{Source: config.CredentialsFromEnv, Logger: logger}
	registry := tool.NewRegistry()
	for _, t := range tool.NewTwitterTools(session) {
		registry.Register(t)
	}
	logger.Info("tools registered", "count", registry.Len())

	mcpServer := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	mcpServer.AddTools(tool.ServerTools(registry)...)

	switch cfg.Transport {
	case config.TransportStdio:
		logger.Info("twmcpd starting", "transport", "stdio")
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("stdio server failed", "error", err)
			os.Exit(1)
		}

	case config.TransportHTTP:
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mcpHTTP := server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))
		apiSrv := api.NewServer(mcpHTTP, api.Config{
			Host: cfg.Host,
			Port: cfg.Port,
			Key:  cfg.APIKey,
		}, logger, logBuf)

		logger.Info("twmcpd starting", "transport", "http", "host", cfg.Host, "port", cfg.Port)
		if err := apiSrv.Start(ctx); err != nil {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("twmcpd stopped")
}
