package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/supplychain-leads/cmd/mainconfig"
	"github.com/wolfman30/supplychain-leads/internal/api/router"
	appconfig "github.com/wolfman30/supplychain-leads/internal/config"
	"github.com/wolfman30/supplychain-leads/internal/events"
	"github.com/wolfman30/supplychain-leads/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/supplychain-leads/internal/http/middleware"
	"github.com/wolfman30/supplychain-leads/internal/leads"
	"github.com/wolfman30/supplychain-leads/internal/notify"
	"github.com/wolfman30/supplychain-leads/internal/observability/metrics"
	"github.com/wolfman30/supplychain-leads/internal/session"
	"github.com/wolfman30/supplychain-leads/internal/site"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting supplychain-leads server",
		"env", cfg.Env,
		"port", cfg.Port,
		"leads_store", cfg.LeadsStore,
		"session_store", cfg.SessionStore,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := setup(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setup wires every dependency of the HTTP handler. The returned cleanup
// releases pools and clients.
func setup(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	registry, metricsHandler := setupMetrics()
	wizardMetrics := metrics.NewWizardMetrics(registry)
	leadMetrics := metrics.NewLeadMetrics(registry)

	var awsCfg *aws.Config
	if needsAWS(cfg) {
		loaded, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, func() {}, fmt.Errorf("load aws config: %w", err)
		}
		awsCfg = &loaded
	}

	repo, closeRepo, err := setupLeadRepository(ctx, cfg, awsCfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	cleanups = append(cleanups, closeRepo)

	sink := leads.NewSink(repo, logger,
		leads.WithMetrics(leadMetrics),
		leads.WithStoreLabel(cfg.LeadsStore),
		leads.WithHooks(setupHooks(cfg, awsCfg, logger)...),
		leads.WithHookTimeout(cfg.LeadHookTimeout),
	)

	store, closeStore, err := setupSessionStore(ctx, cfg, logger)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	cleanups = append(cleanups, closeStore)

	renderer, err := site.NewRenderer(site.DefaultContent())
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	wizardHandler := handlers.NewWizardHandler(store, sink, renderer, wizardMetrics, handlers.WizardConfig{
		CookieName:   cfg.SessionCookieName,
		CookieSecure: cfg.SessionCookieSecure || cfg.IsProduction(),
		SessionTTL:   cfg.SessionTTL,
	}, logger)

	var limiter *httpmiddleware.RateLimiter
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		limiter = httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set; admin lead listing disabled")
	}

	handler := router.New(&router.Config{
		Logger:             logger,
		WizardHandler:      wizardHandler,
		LeadsHandler:       leads.NewHandler(sink, repo, logger),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})
	return handler, cleanup, nil
}

func setupMetrics() (*prometheus.Registry, http.Handler) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func needsAWS(cfg *appconfig.Config) bool {
	return cfg.LeadsStore == appconfig.StoreDynamoDB ||
		cfg.LeadEventsQueueURL != "" ||
		(cfg.SESFromEmail != "" && cfg.SendGridAPIKey == "")
}

func setupLeadRepository(ctx context.Context, cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) (leads.Repository, func(), error) {
	switch cfg.LeadsStore {
	case appconfig.StoreMemory, "":
		if cfg.IsProduction() {
			logger.Warn("using in-memory lead store in production; leads are lost on restart")
		}
		return leads.NewInMemoryRepository(), func() {}, nil
	case appconfig.StorePostgres:
		pool := connectPostgresPool(ctx, cfg.DatabaseURL, logger)
		if pool == nil {
			return nil, func() {}, errors.New("postgres lead store requires a reachable DATABASE_URL")
		}
		return leads.NewPostgresRepository(pool), pool.Close, nil
	case appconfig.StoreDynamoDB:
		if awsCfg == nil {
			return nil, func() {}, errors.New("dynamodb lead store requires aws config")
		}
		return leads.NewDynamoRepository(dynamodb.NewFromConfig(*awsCfg), cfg.LeadsTable), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown LEADS_STORE %q", cfg.LeadsStore)
	}
}

// connectPostgresPool returns nil when the URL is empty or the database is
// unreachable.
func connectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if databaseURL == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("failed to ping postgres", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// setupHooks builds the best-effort side effects of a stored lead. The
// constructors return nil pointers when unconfigured, so each is checked
// before it becomes an interface value.
func setupHooks(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) []leads.CreatedHook {
	var hooks []leads.CreatedHook

	if sender := setupEmailSender(cfg, awsCfg, logger); sender != nil {
		if n := notify.NewLeadNotifier(sender, cfg.NotifyEmailTo, cfg.PublicBaseURL, logger); n != nil {
			hooks = append(hooks, n)
		}
	}

	if cfg.LeadEventsQueueURL != "" && awsCfg != nil {
		publisher := events.NewSQSPublisher(sqs.NewFromConfig(*awsCfg), cfg.LeadEventsQueueURL)
		hooks = append(hooks, events.NewLeadCreatedHook(publisher, logger))
	}
	return hooks
}

func setupEmailSender(cfg *appconfig.Config, awsCfg *aws.Config, logger *logging.Logger) notify.EmailSender {
	if cfg.NotifyEmailTo == "" {
		return nil
	}
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		return sg
	}
	if awsCfg != nil {
		if ses := notify.NewSESSender(sesv2.NewFromConfig(*awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); ses != nil {
			return ses
		}
	}
	if !cfg.IsProduction() {
		return notify.NewStubEmailSender(logger)
	}
	logger.Warn("NOTIFY_EMAIL_TO set but no email provider configured")
	return nil
}

func setupSessionStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case appconfig.StoreMemory, "":
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	case appconfig.StoreRedis:
		client := mainconfig.NewRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, func() {}, fmt.Errorf("redis session store: %w", err)
		}
		logger.Info("redis session store connected", "addr", cfg.RedisAddr)
		return session.NewRedisStore(client, cfg.SessionTTL), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
}
