// Command knightstour starts the Knight's Tour game server.
//
// It supports two modes:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags (with environment fallbacks) control host/port, config and session
// directories, and the log level.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/knightstour/api"
	"github.com/wricardo/mcp-training/knightstour/game/config"
	"github.com/wricardo/mcp-training/knightstour/game/service"
	"github.com/wricardo/mcp-training/knightstour/game/session"
	"github.com/wricardo/mcp-training/knightstour/transport/mcp"
	"github.com/wricardo/mcp-training/knightstour/transport/websocket"
)

// Version information
const (
	Version = "2.0.0"
	AppName = "Knight's Tour Game Server"
)

// main loads the environment, builds the CLI, and runs the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("Error loading .env file: %v", err)
		}
	} else {
		logrus.Info("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "knightstour",
		Usage:   "knight's tour puzzle server with REST, WebSocket, and MCP transports",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing board configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "session-dir",
				Value:   "sessions",
				Usage:   "Directory for persisted sessions",
				Sources: cli.EnvVars("SESSION_DIR"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := logrus.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("invalid log level %q: %w", cmd.String("log-level"), err)
			}
			logrus.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run the HTTP server with REST API, WebSocket hub, and /mcp endpoint",
				Action:  runServe,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run the MCP stdio server, reusing an external API when one is up",
				Action:  runStdioMCP,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
func runServe(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, err := initializeServices(cmd.String("config-dir"), cmd.String("session-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Create WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(gameService, hub)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))

	// The /mcp endpoint shares the stdio tool surface
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()

		logrus.Infof("%s v%s listening on %s", AppName, Version, addr)
		logrus.Infof("REST API: http://%s/api", addr)
		logrus.Infof("WebSocket: ws://%s/ws?session=<session_id>", addr)
		logrus.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-stop
	logrus.Infof("Received signal: %v. Shutting down...", sig)

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	// Flush all sessions so nothing in flight is lost
	if err := sessionManager.SaveAllSessions(); err != nil {
		logrus.Errorf("Failed to save sessions on shutdown: %v", err)
	}

	wg.Wait()
	logrus.Info("Server stopped")
	return nil
}

// initializeServices wires config/session managers and the game service.
// It also starts background routines for session expiry and filesystem sync.
func initializeServices(configDir, sessionDir string) (service.GameService, *session.Manager, error) {
	// Create config manager first (needed for persistence)
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	// Create session persistence
	persistence, err := session.NewFilePersistence(sessionDir, configManager)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
	}

	// Create session manager with persistence
	sessionManager := session.NewManagerWithPersistence(persistence)

	// Load persisted sessions on startup
	if err := sessionManager.LoadPersistedSessions(); err != nil {
		logrus.Warnf("Failed to load persisted sessions: %v", err)
	}

	// Create game service
	gameService := service.NewGameService(sessionManager, configManager)

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager)

	// Start filesystem sync routine
	go filesystemSyncRoutine(sessionManager, persistence)

	return gameService, sessionManager, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			logrus.Infof("Cleaned up %d expired sessions", removed)
		}
	}
}

// filesystemSyncRoutine periodically syncs in-memory sessions with filesystem state.
// It removes sessions from memory when their corresponding files are deleted.
func filesystemSyncRoutine(manager *session.Manager, persistence session.SessionPersistence) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if persistence == nil {
			continue
		}

		memorySessions := manager.List()

		pruned := 0
		for _, sess := range memorySessions {
			if !persistence.Exists(sess.ID) {
				// File deleted, remove from memory
				if err := manager.DeleteFromMemory(sess.ID); err == nil {
					pruned++
					logrus.Infof("Pruned session %s from memory (file deleted)", sess.ID)
				}
			}
		}

		if pruned > 0 {
			logrus.Infof("Filesystem sync: pruned %d orphaned sessions from memory", pruned)
		}
	}
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an external API on the configured port; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	gameService, _, err := initializeServices(cmd.String("config-dir"), cmd.String("session-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	var baseURL string

	// First, try to connect to an external API server on the configured port
	externalURL := fmt.Sprintf("http://localhost:%d", cmd.Int("port"))
	logrus.Infof("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		logrus.Infof("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		logrus.Info("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		// Get the actual port that was assigned
		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		logrus.Infof("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		// Create WebSocket hub
		hub := websocket.NewHub()
		go hub.Run()

		// Create API server
		apiServer := api.NewServer(gameService, hub)

		httpServer := &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				logrus.Errorf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	// Create MCP client pointing to the selected server
	mcpClient := mcp.NewClient(baseURL)

	// Run MCP stdio server (blocking); logrus writes to stderr so stdout stays clean
	logrus.Info("MCP stdio server ready")
	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
