package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/radutopala/shopsearch/internal/mcp"
)

func main() {
	logPath := os.Getenv("MCP_LOG_FILE")
	if logPath == "" {
		logPath = "/tmp/storefront-mcp-server.log"
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the log file
		logFile = os.Stderr
	} else {
		defer logFile.Close()
	}

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverName := os.Getenv("MCP_SERVER_NAME")
	if serverName == "" {
		serverName = "storefront-search"
	}

	serverVersion := os.Getenv("MCP_SERVER_VERSION")
	if serverVersion == "" {
		serverVersion = "0.1.0"
	}

	server, err := mcp.NewStorefrontServer(serverName, serverVersion, logger)
	if err != nil {
		logger.Error("Failed to create storefront server", "error", err)
		os.Exit(1)
	}

	if addr := os.Getenv("MCP_HTTP_ADDR"); addr != "" {
		if err := serveHTTP(ctx, addr, server, logger); err != nil {
			logger.Error("Storefront server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("Starting storefront server over stdio...", "name", serverName, "version", serverVersion)
	if err := server.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		logger.Error("Storefront server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Storefront server finished")
}

func serveHTTP(ctx context.Context, addr string, server *mcp.StorefrontServer, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.HTTPHandler(),
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	logger.Info("Starting storefront server over Streamable HTTP...", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Storefront server finished")
	return nil
}
