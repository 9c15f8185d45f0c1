package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Strob0t/clientdesk/internal/adapter/csvexport"
	cdhttp "github.com/Strob0t/clientdesk/internal/adapter/http"
	cdotel "github.com/Strob0t/clientdesk/internal/adapter/otel"
	"github.com/Strob0t/clientdesk/internal/adapter/ristretto"
	"github.com/Strob0t/clientdesk/internal/middleware"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/service"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info("config loaded",
		"port", cfg.Server.Port,
		"store", cfg.Store.Driver,
		"log_level", cfg.Logging.Level,
		"auth_enabled", cfg.Auth.Enabled,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---

	shutdownOtel, err := cdotel.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOtel(flushCtx); err != nil {
			log.Warn("otel shutdown", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info("store ready", "driver", cfg.Store.Driver)

	metrics, err := cdotel.NewMetrics(nil)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---

	runner := operation.NewRunner(log, metrics)
	authSvc := service.NewAuthService(store, &cfg.Auth, runner)
	affiliateSvc := service.NewAffiliateService(store, authSvc, runner)
	if cfg.Cache.MaxCostBytes > 0 {
		links, err := ristretto.New(cfg.Cache)
		if err != nil {
			return fmt.Errorf("link cache: %w", err)
		}
		defer links.Close()
		affiliateSvc.WithLinkCache(links, cfg.Cache.LinkTTL)
		log.Info("link cache enabled", "max_cost_bytes", cfg.Cache.MaxCostBytes, "ttl", cfg.Cache.LinkTTL)
	}

	handlers := &cdhttp.Handlers{
		Projects:      service.NewProjectService(store, runner),
		Journals:      service.NewJournalService(store, runner),
		Affiliates:    affiliateSvc,
		Auth:          authSvc,
		Export:        csvexport.Sink{},
		BodyLimit:     cfg.Server.BodyLimit,
		SecureCookies: cfg.Server.SecureCookies,
	}

	// --- HTTP ---

	limiter := middleware.NewRateLimiter(cfg.Rate.RequestsPerSecond, cfg.Rate.Burst)
	stopCleanup := limiter.StartCleanup(cleanupInterval, cfg.Rate.MaxIdleTime)
	defer stopCleanup()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(cdotel.HTTPMiddleware(cfg.Telemetry.ServiceName))
	r.Use(cdhttp.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(cdhttp.SecurityHeaders)
	r.Use(cdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.Auth(authSvc, cfg.Auth.Enabled))
	cdhttp.MountRoutes(r, handlers, limiter.Handler)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
