package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"arbor/internal/config"
	"arbor/internal/handler"
	"arbor/internal/middleware"
	"arbor/internal/repository/memory"
	chatService "arbor/internal/service/chat"
	llmService "arbor/internal/service/llm"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: cfg.Debug,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"provider", cfg.DefaultProvider,
		"model", cfg.DefaultModel,
	)

	// The forest is volatile, process-lifetime state.
	forest := memory.NewForest()

	// Setup completion provider
	provider, err := llmService.SetupProvider(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to setup completion provider: %v", err)
	}

	// Conversation service and handlers
	conversation := chatService.NewService(forest, provider, cfg, logger)
	chatHandler := handler.NewChatHandler(conversation, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Conversation routes
	mux.HandleFunc("GET /api/forest", chatHandler.GetForest)
	mux.HandleFunc("POST /api/messages", chatHandler.PostMessage)
	mux.HandleFunc("DELETE /api/messages/{id}", chatHandler.DeleteMessage)
	mux.HandleFunc("GET /api/messages/{id}/path", chatHandler.GetMessagePath)

	// Build middleware chain
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // provider calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
