package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "solestore/internal/auth/handler"
	authservice "solestore/internal/auth/service"
	authstore "solestore/internal/auth/store"
	"solestore/internal/auth/token"
	cataloghandler "solestore/internal/catalog/handler"
	catalogservice "solestore/internal/catalog/service"
	catalogstore "solestore/internal/catalog/store"
	ordershandler "solestore/internal/orders/handler"
	ordersservice "solestore/internal/orders/service"
	ordersstore "solestore/internal/orders/store"
	"solestore/internal/platform/config"
	"solestore/internal/platform/database"
	"solestore/internal/platform/httpserver"
	"solestore/internal/platform/logger"
	"solestore/internal/platform/metrics"
	"solestore/internal/platform/middleware"
	"solestore/internal/platform/redis"
	profilehandler "solestore/internal/profile/handler"
	profileservice "solestore/internal/profile/service"
	promotionshandler "solestore/internal/promotions/handler"
	promotionsservice "solestore/internal/promotions/service"
	promotionsstore "solestore/internal/promotions/store"
	"solestore/pkg/platform/httputil"
)

const tokenIssuer = "solestore"

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx := context.Background()

	db, err := database.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()

	// Auth.
	users := authstore.NewPostgres(db)
	tokens := token.NewService(cfg.Auth.JWTSigningKey, tokenIssuer, cfg.Auth.TokenTTL)
	auth := authservice.NewService(users, tokens, log, m)
	if err := auth.SeedAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		log.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	// Catalog, optionally behind the Redis read-through cache.
	var sneakers catalogstore.Store = catalogstore.NewPostgres(db)
	var cached *catalogstore.Cached
	if redisClient != nil {
		cached = &catalogstore.Cached{
			Next:    sneakers,
			Redis:   redisClient,
			TTL:     cfg.Redis.CacheTTL,
			Logger:  log,
			Metrics: m,
		}
		sneakers = cached
	}
	catalog := catalogservice.NewService(sneakers, log)

	// Orders.
	var orderOpts []ordersservice.Option
	if cached != nil {
		orderOpts = append(orderOpts, ordersservice.WithCacheInvalidator(cached))
	}
	orders := ordersservice.NewService(
		newOrdersPostgresTx(db),
		ordersstore.NewPostgresReader(db),
		log, m, orderOpts...,
	)

	// Promotions and profile.
	promotions := promotionsservice.NewService(promotionsstore.NewPostgres(db), log)
	profile := profileservice.NewService(users, log)

	authHandler := authhandler.New(auth, log)
	catalogHandler := cataloghandler.New(catalog, log)
	ordersHandler := ordershandler.New(orders, log)
	promotionsHandler := promotionshandler.New(promotions, log)
	profileHandler := profilehandler.New(profile, log)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Observe(log, m))

	router.Get("/health", healthHandler(db, redisClient))
	router.Handle("/metrics", promhttp.Handler())

	// Public routes.
	router.Group(func(r chi.Router) {
		authHandler.Register(r)
		catalogHandler.Register(r)
		promotionsHandler.Register(r)
	})

	// Authenticated routes.
	requireAuth := middleware.RequireAuth(tokens, userLookup{auth}, log)
	router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		authHandler.RegisterProtected(r)
		ordersHandler.Register(r)
		profileHandler.Register(r)
	})

	// Admin routes.
	router.Group(func(r chi.Router) {
		r.Use(requireAuth, middleware.RequireAdmin)
		catalogHandler.RegisterAdmin(r)
		ordersHandler.RegisterAdmin(r)
		promotionsHandler.RegisterAdmin(r)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("server started", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// userLookup adapts the auth service to the middleware's lookup interface.
type userLookup struct {
	auth *authservice.Service
}

func (l userLookup) Lookup(ctx context.Context, id uuid.UUID) (bool, error) {
	profile, err := l.auth.UserByID(ctx, id)
	if err != nil {
		return false, err
	}
	return profile.IsAdmin, nil
}

// healthHandler reports readiness of the backing stores.
func healthHandler(db interface {
	PingContext(ctx context.Context) error
}, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"status": "ok", "postgres": "up"}
		code := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status["status"] = "degraded"
			status["postgres"] = "down"
			code = http.StatusServiceUnavailable
		}
		if redisClient != nil {
			status["redis"] = "up"
			if err := redisClient.Health(ctx); err != nil {
				status["status"] = "degraded"
				status["redis"] = "down"
				code = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, code, status)
	}
}
