package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	appconfig "github.com/wolfman30/supplychain-leads/internal/config"
	"github.com/wolfman30/supplychain-leads/internal/notify"
	"github.com/wolfman30/supplychain-leads/internal/session"
	"github.com/wolfman30/supplychain-leads/pkg/logging"
)

func memoryConfig() *appconfig.Config {
	return &appconfig.Config{
		Env:               "test",
		LeadsStore:        appconfig.StoreMemory,
		SessionStore:      appconfig.StoreMemory,
		SessionTTL:        time.Hour,
		SessionCookieName: "lead_wizard",
		AdminJWTSecret:    "secret",
		RateLimitRPS:      10,
		RateLimitBurst:    10,
	}
}

func TestSetupServesPageHealthAndMetrics(t *testing.T) {
	logger := logging.New("error")
	handler, cleanup, err := setup(context.Background(), memoryConfig(), logger)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer cleanup()

	for _, path := range []string{"/", "/health", "/api/wizard"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "go_goroutines") {
		t.Fatalf("expected runtime collectors to be exported")
	}
}

func TestSetupRejectsUnknownStores(t *testing.T) {
	logger := logging.New("error")

	cfg := memoryConfig()
	cfg.LeadsStore = "sqlite"
	if _, _, err := setup(context.Background(), cfg, logger); err == nil {
		t.Fatalf("expected error for unknown lead store")
	}

	cfg = memoryConfig()
	cfg.SessionStore = "memcached"
	if _, _, err := setup(context.Background(), cfg, logger); err == nil {
		t.Fatalf("expected error for unknown session store")
	}
}

func TestSetupLeadRepositoryPostgresRequiresURL(t *testing.T) {
	cfg := memoryConfig()
	cfg.LeadsStore = appconfig.StorePostgres
	if _, _, err := setupLeadRepository(context.Background(), cfg, nil, logging.New("error")); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}
}

func TestConnectPostgresPoolEmptyURLReturnsNil(t *testing.T) {
	logger := logging.New("error")
	if pool := connectPostgresPool(context.Background(), "", logger); pool != nil {
		t.Fatalf("expected nil pool for empty URL")
	}
}

func TestSetupSessionStoreRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.SessionStore = appconfig.StoreRedis
	cfg.RedisAddr = mr.Addr()

	store, closeStore, err := setupSessionStore(context.Background(), cfg, logging.New("error"))
	if err != nil {
		t.Fatalf("setup redis store: %v", err)
	}
	defer closeStore()
	if _, ok := store.(*session.RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}
}

func TestSetupSessionStoreRedisUnreachable(t *testing.T) {
	cfg := memoryConfig()
	cfg.SessionStore = appconfig.StoreRedis
	cfg.RedisAddr = "127.0.0.1:1"

	if _, _, err := setupSessionStore(context.Background(), cfg, logging.New("error")); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

func TestSetupHooksSkipsUnconfiguredProviders(t *testing.T) {
	logger := logging.New("error")

	if hooks := setupHooks(memoryConfig(), nil, logger); len(hooks) != 0 {
		t.Fatalf("expected no hooks, got %d", len(hooks))
	}

	cfg := memoryConfig()
	cfg.NotifyEmailTo = "ops@example.com"
	hooks := setupHooks(cfg, nil, logger)
	if len(hooks) != 1 || hooks[0].Name() != "email" {
		t.Fatalf("expected stub email hook outside production, got %v", hooks)
	}

	cfg.Env = "production"
	if hooks := setupHooks(cfg, nil, logger); len(hooks) != 0 {
		t.Fatalf("expected no email hook in production without a provider, got %d", len(hooks))
	}
}

func TestSetupEmailSenderPrefersSendGrid(t *testing.T) {
	cfg := memoryConfig()
	cfg.NotifyEmailTo = "ops@example.com"
	cfg.SendGridAPIKey = "SG.test"
	cfg.SendGridFromEmail = "noreply@example.com"

	sender := setupEmailSender(cfg, nil, logging.New("error"))
	if _, ok := sender.(*notify.SendGridSender); !ok {
		t.Fatalf("expected SendGrid sender, got %T", sender)
	}
}

func TestNeedsAWS(t *testing.T) {
	cfg := memoryConfig()
	if needsAWS(cfg) {
		t.Fatalf("memory config should not load AWS")
	}
	cfg.LeadEventsQueueURL = "http://localhost:4566/000000000000/leads"
	if !needsAWS(cfg) {
		t.Fatalf("queue url should load AWS")
	}
}
