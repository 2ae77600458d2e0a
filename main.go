// Command quizhub starts the quiz session broker.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Configuration comes from QUIZHUB_-prefixed environment variables (and an
// optional .env file); command-line flags override individual values.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"

	"github.com/quizhub/quizhub/api"
	"github.com/quizhub/quizhub/quiz/catalog"
	"github.com/quizhub/quizhub/quiz/config"
	"github.com/quizhub/quizhub/quiz/room"
	"github.com/quizhub/quizhub/quiz/service"
	"github.com/quizhub/quizhub/transport/mcp"
	"github.com/quizhub/quizhub/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "QuizHub Session Broker"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	cmd := &cli.Command{
		Name:    "quizhub",
		Usage:   "real-time session broker for multiplayer quiz games",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "HTTP server host (overrides QUIZHUB_HOST)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "HTTP server port (overrides QUIZHUB_PORT)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging (overrides QUIZHUB_DEBUG)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			return runServer(ctx, cfg, logger)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint (default)",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, logger, err := setup(cmd)
					if err != nil {
						return err
					}
					return runServer(ctx, cfg, logger)
				},
			},
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server, reusing an external API or starting an internal one",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, logger, err := setup(cmd)
					if err != nil {
						return err
					}
					return runStdioMCP(cfg, logger)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides, and builds the logger.
func setup(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}
	if cmd.IsSet("debug") {
		cfg.Debug = cmd.Bool("debug")
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	slog.SetDefault(logger)

	return cfg, logger, nil
}

// buildBroker wires the registry, catalog, and authorizer into a broker.
func buildBroker(cfg *config.Config, logger *slog.Logger) service.Broker {
	rooms := room.NewRegistry()
	quizzes := catalog.NewCatalog()
	auth := service.NewStaticKeyAuthorizer(cfg.AdminKey)
	return service.NewBroker(rooms, quizzes, auth, cfg.DefaultCapacity, logger)
}

// runServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp proxy endpoint, and blocks until a shutdown signal arrives.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	broker := buildBroker(cfg, logger)

	hub := websocket.NewHub(broker, logger)
	go hub.Run()

	apiServer := api.NewServer(broker, hub, logger)

	addr := cfg.Addr()
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			"addr", addr,
			"rest", fmt.Sprintf("http://%s/api", addr),
			"websocket", fmt.Sprintf("ws://%s/ws", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// mcpHandler exposes the MCP client over a plain POST endpoint so HTTP
// clients can speak MCP without a stdio transport.
func mcpHandler(client *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := client.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an external API
// at the configured address; if unavailable, it starts a minimal internal
// HTTP API bound to a random loopback port and targets that.
func runStdioMCP(cfg *config.Config, logger *slog.Logger) error {
	externalURL := fmt.Sprintf("http://%s", cfg.Addr())
	baseURL := externalURL

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		logger.Info("using external API server for MCP", "url", externalURL)
	} else {
		logger.Info("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()

		broker := buildBroker(cfg, logger)
		hub := websocket.NewHub(broker, logger)
		go hub.Run()

		internalServer := &http.Server{
			Handler: api.NewServer(broker, hub, logger),
		}
		go func() {
			if err := internalServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				logger.Error("internal HTTP server error", "err", err)
			}
		}()

		// Give the listener a moment before the first tool call.
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
		logger.Info("internal HTTP server ready", "addr", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	logger.Info("MCP stdio server ready", "target", baseURL)
	if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
