package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/georgemunganga/printa-orders/internal/config"
	"github.com/georgemunganga/printa-orders/internal/modules/auth"
	"github.com/georgemunganga/printa-orders/internal/modules/backend"
	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/modules/order"
	"github.com/georgemunganga/printa-orders/internal/pkg/logging"
	"github.com/georgemunganga/printa-orders/internal/pkg/metrics"
	"github.com/georgemunganga/printa-orders/internal/pkg/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Metrics ─────────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(reg, cfg.ServiceName)
	backendMetrics := metrics.NewBackendMetrics(reg, cfg.ServiceName)

	// ── Order service client ────────────────────────────────
	var tokens auth.TokenSource
	if signer := auth.NewSigner(cfg.BackendJWTSecret, cfg.BackendJWTSubject, cfg.ServiceName, auth.DefaultTTL); signer != nil {
		tokens = signer
	}
	client := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Timeout: cfg.BackendTimeout,
		Tokens:  tokens,
		Metrics: backendMetrics,
		Service: cfg.ServiceName,
	})

	// ── Drafts ──────────────────────────────────────────────
	drafts := order.NewMemoryDraftRepository()
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatal(err)
		}
		if err := order.MigrateDrafts(ctx, db); err != nil {
			log.Fatal(err)
		}
		drafts = order.NewPostgresDraftRepository(db)
		fmt.Println("Order drafts stored in Postgres")
	}

	views, err := view.New()
	if err != nil {
		log.Fatal(err)
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(serverMetrics.Middleware)

	router.Method(http.MethodGet, "/metrics", metrics.Handler(reg))

	order.NewHandler(order.HandlerConfig{
		Orders:               client,
		Products:             client,
		Drafts:               drafts,
		Views:                views,
		Service:              cfg.ServiceName,
		LineFetchConcurrency: cfg.LineFetchConcurrency,
	}).RegisterRoutes(router)

	catalog.NewHandler(client, views, cfg.ServiceName).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Log(logging.Fields{Service: cfg.ServiceName, Op: "start", Message: "web console listening on :" + cfg.Port + ", order service " + cfg.BackendBaseURL})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
