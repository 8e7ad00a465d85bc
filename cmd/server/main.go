package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/kinds"
	"inkwell/internal/middleware"
	"inkwell/internal/repository/postgres"
	"inkwell/internal/service/workspace"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logSink io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logSink = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logSink, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verification: JWKS-backed in deployed environments, a fixed
	// demo owner when no identity provider is configured locally.
	var authMiddleware func(http.Handler) http.Handler
	if cfg.AuthJWKSURL != "" {
		verifier, err := auth.NewJWKSVerifier(cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create token verifier: %v", err)
		}
		defer verifier.Close()
		authMiddleware = middleware.Auth(verifier)
	} else {
		if cfg.Environment == "prod" {
			log.Fatal("AUTH_JWKS_URL is required in prod")
		}
		logger.Warn("no AUTH_JWKS_URL configured, all requests resolve to the demo owner",
			"owner_id", cfg.DemoOwnerID,
		)
		authMiddleware = middleware.StaticAuth(cfg.DemoOwnerID)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	bookRepo := postgres.NewBookRepository(repoConfig)
	contentRepo := postgres.NewContentRepository(repoConfig)

	// Load per-kind creation presets
	registry, err := kinds.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load kind presets: %v", err)
	}

	// Create the workspace service and handler
	workspaceService := workspace.NewService(bookRepo, contentRepo, registry, logger)
	itemHandler := handler.NewItemHandler(workspaceService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", itemHandler.HealthCheck)

	// Item routes
	mux.HandleFunc("GET /api/items", itemHandler.ListItems)
	mux.HandleFunc("POST /api/items", itemHandler.CreateItem)
	mux.HandleFunc("PATCH /api/items/{id}", itemHandler.UpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", itemHandler.DeleteItem)
	mux.HandleFunc("POST /api/items/{id}/trash", itemHandler.TrashItem)
	mux.HandleFunc("POST /api/items/{id}/restore", itemHandler.RestoreItem)

	// Trash listing
	mux.HandleFunc("GET /api/trash", itemHandler.ListTrash)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = authMiddleware(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
