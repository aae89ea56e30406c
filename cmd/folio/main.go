package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	cfhttp "github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/http"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/memkv"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/natskv"
	cfotel "github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/otel"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/postgres"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/ristretto"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/adapter/ws"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/config"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/cvextract"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/domain/template"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/logger"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/middleware"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/port/docstore"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/resilience"
	"github.com/HamzaKhandev1446/Portfolio-builder-app/internal/service"
)

const tokenCleanupInterval = time.Hour

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "serve":
			return serve(args[1:])
		case "admin":
			return runAdmin(args[1:])
		case "cv":
			return runCV(args[1:])
		case "resolve":
			return runResolve(args[1:])
		case "help", "-h", "--help":
			printHelp()
			return nil
		}
	}
	return serve(args)
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Usage: folio [serve] [options]
       folio <command> [options]

Commands:
  serve            Run the HTTP server (default)
  admin            Manage accounts (create-user, list-users, reset-password)
  cv extract       Print the data extracted from a text CV as JSON
  resolve          Resolve route and host signals to a user ID

Server options:
  -c, --config     Path to YAML config file (default folio.yaml)
  -p, --port       HTTP listen port
  --log-level      debug|info|warn|error
  --dsn            PostgreSQL DSN
  --nats-url       NATS server URL
  --store          Document store backend (nats|memory)
`)
}

func serve(args []string) error {
	flags, err := config.ParseFlags(args)
	if err != nil {
		return err
	}
	cfg, path, err := config.LoadWithCLI(flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, logCloser := logger.New(cfg.Logging)
	defer logCloser.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"file", path,
		"port", cfg.Server.Port,
		"store", cfg.Store.Backend,
		"auth_enabled", cfg.Auth.Enabled,
		"claim_mode", cfg.Tenant.ClaimMode,
		"primary_host", cfg.Site.PrimaryHost,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability ---

	otelShutdown, err := cfotel.Init(ctx, cfg.OTEL)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := cfotel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Infrastructure ---

	docs, closeDocs, err := openDocStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeDocs()

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

	publicCache, err := ristretto.New(cfg.Cache.L1MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer publicCache.Close()

	registry, err := template.NewRegistry(template.Builtin()...)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	breaker := resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout,
		resilience.WithStateChange(func(from, to string) {
			slog.Warn("docstore breaker state changed", "from", from, "to", to)
		}),
	)

	// --- Services ---

	authSvc := service.NewAuthService(postgres.NewStore(pool), &cfg.Auth)
	authSvc.StartTokenCleanup(ctx, tokenCleanupInterval)

	resolver := service.NewResolverService(docs, breaker, cfg.Site.PrimaryHost, cfg.Store.LookupTimeout)
	resolver.SetMetrics(metrics)

	tenants := service.NewTenantService(docs, cfg.Tenant.ClaimMode, cfg.Site.Origin)
	tenants.SetMetrics(metrics)

	portfolios := service.NewPortfolioService(docs, registry, publicCache, cfg.Cache.PublicTTL)

	cvImport := service.NewCVImportService(cvextract.New(), portfolios, cfg.Import.MaxBytes)
	cvImport.SetPool(resilience.NewPool(cfg.Import.MaxConcurrent))
	cvImport.SetMetrics(metrics)

	if !cfg.Auth.Enabled {
		slog.Warn("authentication disabled, owner routes act as the dev user", "user_id", middleware.DevUserID)
	}

	// --- HTTP ---

	handlers := &cfhttp.Handlers{
		Auth:       authSvc,
		Resolver:   resolver,
		Tenants:    tenants,
		Portfolios: portfolios,
		CVImport:   cvImport,
		Templates:  registry,
	}

	limiter := middleware.NewRateLimiterFromConfig(cfg.Rate)
	limiter.StartCleanup(ctx, cfg.Rate.CleanupInterval, cfg.Rate.MaxIdleTime)

	hub := ws.NewHub(portfolios, originPatterns(cfg.Server.CORSOrigin))

	r := chi.NewRouter()
	if cfg.OTEL.Enabled {
		r.Use(cfotel.HTTPMiddleware(cfg.OTEL.ServiceName))
	}
	r.Use(middleware.RequestID)
	if cfg.Server.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Host(cfg.Server.TrustProxy))
	r.Use(cfhttp.SecurityHeaders)
	r.Use(cfhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(cfhttp.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	cfhttp.MountRoutes(r, handlers, hub, middleware.Auth(authSvc, cfg.Auth.Enabled), limiter.Handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	}
	slog.Info("shutting down server")

	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openDocStore connects the configured document store backend.
func openDocStore(ctx context.Context, cfg config.Store) (docstore.Store, func(), error) {
	if cfg.Backend == config.StoreMemory {
		slog.Warn("using in-memory document store, data is lost on restart")
		return memkv.New(), func() {}, nil
	}

	s, err := natskv.Connect(ctx, cfg.URL, cfg.Bucket, uint8(cfg.History)) //nolint:gosec // validated to 1..64
	if err != nil {
		return nil, nil, fmt.Errorf("docstore: %w", err)
	}
	return s, func() { _ = s.Close() }, nil
}

// originPatterns turns the editor origin into the host pattern accepted for
// WebSocket upgrades.
func originPatterns(origin string) []string {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return nil
	}
	return []string{u.Host}
}
