package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tallyhq/tally/docs"
	"github.com/tallyhq/tally/internal/archive"
	"github.com/tallyhq/tally/internal/balance"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/database"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/reminder"
	"github.com/tallyhq/tally/internal/user"
	mw "github.com/tallyhq/tally/pkg/middleware"
)

// @title        Tally Ledger API
// @version      1.0
// @description  Peer-to-peer debt ledger: mirrored debt/credit transactions, atomic settlement, archival history.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.ApplyMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Connected to database successfully")

	// Reminder rate limiter: shared via Redis when configured, otherwise
	// process-local
	var limiter reminder.Limiter
	if cfg.RedisAddr != "" {
		redisClient, err := reminder.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		limiter = reminder.NewRedisLimiter(redisClient)
		log.Println("Connected to redis successfully")
	} else {
		limiter = reminder.NewMemoryLimiter()
		log.Println("REDIS_ADDR not set, using in-memory rate limiter")
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Ledger feature
	ledgerRepo := ledger.NewRepository(db)
	ledgerService := ledger.NewService(ledgerRepo)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Archive feature
	archiveRepo := archive.NewRepository(db)
	archiveService := archive.NewService(archiveRepo)
	archiveHandler := archive.NewHandler(archiveService)

	// Balance feature
	balanceRepo := balance.NewRepository(db)
	balanceService := balance.NewService(balanceRepo)
	balanceHandler := balance.NewHandler(balanceService)

	// Reminder feature
	reminderService := reminder.NewService(ledgerRepo, limiter)
	reminderHandler := reminder.NewHandler(reminderService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Caller identity: JWT from the identity provider, or the dev header
	// middleware when no secret is configured
	if cfg.JWTSecret != "" {
		r.Use(mw.Auth(cfg.JWTSecret))
	} else {
		log.Println("JWT_SECRET not set, using X-User-ID dev middleware")
		r.Use(mw.TestUser)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/transactions", ledgerHandler.Routes())
		r.Mount("/archives", archiveHandler.Routes())
		r.Mount("/balances", balanceHandler.Routes())
		r.Mount("/reminders", reminderHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
