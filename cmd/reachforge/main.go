package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	rfhttp "github.com/reachforge/reachforge/internal/adapter/http"
	"github.com/reachforge/reachforge/internal/adapter/llm"
	rfnats "github.com/reachforge/reachforge/internal/adapter/nats"
	"github.com/reachforge/reachforge/internal/adapter/otel"
	"github.com/reachforge/reachforge/internal/adapter/postgres"
	"github.com/reachforge/reachforge/internal/adapter/ristretto"
	"github.com/reachforge/reachforge/internal/adapter/ws"
	"github.com/reachforge/reachforge/internal/config"
	"github.com/reachforge/reachforge/internal/logger"
	"github.com/reachforge/reachforge/internal/middleware"
	"github.com/reachforge/reachforge/internal/resilience"
	"github.com/reachforge/reachforge/internal/service"
)

const serviceName = "reachforge"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "admin":
			if err := runAdmin(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			return
		case "migrate":
			if err := runMigrate(os.Args[2:]); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				os.Exit(1)
			}
			return
		case "serve":
			// fall through to the server
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s (expected serve, migrate, or admin)\n", os.Args[1])
			os.Exit(1)
		}
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx := context.Background()

	// --- Telemetry ---
	shutdownTelemetry, err := otel.Setup(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	queue, err := rfnats.Connect(ctx, cfg.NATS.URL)
	if err != nil {
		return fmt.Errorf("nats: %w", err)
	}
	defer func() { _ = queue.Close() }()

	cache, err := ristretto.New(cfg.Cache.MaxBytes)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer cache.Close()

	llmClient := llm.NewClient(cfg.LLM)
	llmClient.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout))

	// --- Services ---
	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)

	hub := ws.NewHub(func(ctx context.Context, token string) (string, error) {
		u, err := authSvc.ValidateSession(ctx, token)
		if err != nil {
			return "", err
		}
		return u.ID, nil
	})

	ventureSvc := service.NewVentureService(store)
	prospectSvc := service.NewProspectService(store)

	handlers := &rfhttp.Handlers{
		Auth:         authSvc,
		Ventures:     ventureSvc,
		BrandGuides:  service.NewBrandGuideService(store, ventureSvc),
		Content:      service.NewContentService(store, queue, hub, metrics),
		Prospects:    prospectSvc,
		Outreach:     service.NewOutreachService(store, prospectSvc, queue, hub, metrics),
		Capabilities: service.NewCapabilityService(store, cache, cfg.Cache.CatalogTTL),
		Writer:       service.NewWriterService(store, llmClient, metrics),
		Suggest:      service.NewSuggestService(store, llmClient, metrics),
		Dashboard:    service.NewDashboardService(store),
	}

	// Expired sessions are reaped in the background for the life of
	// the process.
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go authSvc.SweepExpiredSessions(sweepCtx, time.Hour)

	// --- HTTP ---
	r := chi.NewRouter()

	r.Use(rfhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestID)
	r.Use(rfhttp.Logger)
	r.Use(rfhttp.SecurityHeaders)
	r.Use(otel.HTTPMiddleware(serviceName))
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Auth(authSvc))

	r.Get("/health", healthHandler(pool))
	r.Get("/ws", hub.HandleWS)

	rfhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second, // generation streams stay open
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// healthHandler reports process and database health.
func healthHandler(pool interface{ Ping(context.Context) error }) http.HandlerFunc {
	type healthStatus struct {
		Status   string `json:"status"`
		Postgres string `json:"postgres"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{Status: "ok", Postgres: "ok"}
		code := http.StatusOK
		if err := pool.Ping(r.Context()); err != nil {
			status.Status = "degraded"
			status.Postgres = err.Error()
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
