package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/database"
	"github.com/daybook-app/daybook/internal/handlers"
	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/middleware"
	"github.com/daybook-app/daybook/internal/services"
	"github.com/daybook-app/daybook/internal/services/ai"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Environment == "development" {
		logger.SetLevel(logging.LevelDebug)
		logging.SetDefaultLevel(logging.LevelDebug)
	}

	logger.Info("Starting Daybook server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run embedded migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	authService := services.NewAuthService([]byte(cfg.Auth.JWTSecret))
	userService := services.NewUserService(db.Pool)
	entryService := services.NewEntryService(db.Pool)
	aiService := ai.NewService(cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler(userService, authService)
	entryHandler := handlers.NewEntryHandler(entryService)
	aiHandler := handlers.NewAIHandler(entryService, aiService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	securityHeaders := middleware.NewSecurityHeaders(cfg.Server.Secure)
	requestLogger := middleware.NewRequestLogger(logger)

	// Login attempts are limited per client IP, AI summaries per user.
	loginLimiter := middleware.NewRateLimiter(redisDB.Client, 20, 15*time.Minute, "ratelimit:login:", middleware.ClientIP)
	aiLimiter := middleware.NewRateLimiter(redisDB.Client, 10, 1*time.Hour, "ratelimit:ai:", func(r *http.Request) string {
		userID := handlers.GetUserIDFromContext(r.Context())
		if userID == uuid.Nil {
			return ""
		}
		return userID.String()
	})

	requireAuth := authMiddleware.RequireAuth

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /users/register", http.HandlerFunc(authHandler.Register))
	mux.Handle("POST /users/login", loginLimiter.Middleware(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /users/me", requireAuth(http.HandlerFunc(authHandler.Me)))

	// User endpoints (self only)
	mux.Handle("GET /users/{id}", requireAuth(http.HandlerFunc(userHandler.Get)))
	mux.Handle("PUT /users/{id}", requireAuth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("DELETE /users/{id}", requireAuth(http.HandlerFunc(userHandler.Delete)))

	// Entry endpoints
	mux.Handle("GET /entries", requireAuth(http.HandlerFunc(entryHandler.List)))
	mux.Handle("POST /entries", requireAuth(http.HandlerFunc(entryHandler.Create)))
	mux.Handle("GET /entries/search", requireAuth(http.HandlerFunc(entryHandler.Search)))
	mux.Handle("GET /entries/{id}", requireAuth(http.HandlerFunc(entryHandler.Get)))
	mux.Handle("PUT /entries/{id}", requireAuth(http.HandlerFunc(entryHandler.Update)))
	mux.Handle("DELETE /entries/{id}", requireAuth(http.HandlerFunc(entryHandler.Delete)))

	// AI summary endpoint
	mux.Handle("POST /api/ai-summary", requireAuth(aiLimiter.Middleware(http.HandlerFunc(aiHandler.Summary))))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = securityHeaders.Apply(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// AI summaries can legitimately take a while; keep a higher write
		// timeout so the client gets a JSON error instead of a dropped
		// connection.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
