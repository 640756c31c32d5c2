package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("TRIP_AI_PROVIDER", "")
	t.Setenv("TRIP_SEARCH_BACKEND", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AMAP_API_KEY", "a-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"TRIP_HTTP_ADDR", "TRIP_DB_DSN", "TRIP_REDIS_ADDR", "TRIP_CORS_ORIGINS",
		"TRIP_AI_PLAN_TIMEOUT_SEC", "TRIP_AI_REGION_TIMEOUT_SEC", "TRIP_AI_REGION_ENABLED",
		"TRIP_KEYWORD_DELAY_MS", "TRIP_QUOTA_MONTHLY", "TRIP_SEARCH_QPS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.DB.DSN != "" || cfg.Redis.Addr != "" {
		t.Errorf("DB and Redis should be disabled by default, got %q %q", cfg.DB.DSN, cfg.Redis.Addr)
	}
	if cfg.AI.Provider != ProviderGemini || cfg.Search.Backend != BackendAMap {
		t.Errorf("provider/backend = %q/%q", cfg.AI.Provider, cfg.Search.Backend)
	}
	if !cfg.AI.RegionEnabled {
		t.Error("region pre-pass should default to enabled")
	}
	if cfg.AI.PlanTimeout != 30*time.Second || cfg.AI.RegionTimeout != 3*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.AI.PlanTimeout, cfg.AI.RegionTimeout)
	}
	if cfg.Search.KeywordDelay != 200*time.Millisecond || cfg.Search.QPS != 3 {
		t.Errorf("search pacing = %v/%v", cfg.Search.KeywordDelay, cfg.Search.QPS)
	}
	if cfg.Quota.Monthly != 100 {
		t.Errorf("Monthly = %d", cfg.Quota.Monthly)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("TRIP_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRIP_AI_REGION_ENABLED", "false")
	t.Setenv("TRIP_AI_PLAN_TIMEOUT_SEC", "10")
	t.Setenv("TRIP_QUOTA_MONTHLY", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.AI.RegionEnabled {
		t.Error("region pre-pass should be disabled")
	}
	if cfg.AI.PlanTimeout != 10*time.Second {
		t.Errorf("PlanTimeout = %v", cfg.AI.PlanTimeout)
	}
	if cfg.Quota.Monthly != 100 {
		t.Errorf("bad int should fall back to default, got %d", cfg.Quota.Monthly)
	}
}

func TestLoadMissingKeys(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"gemini", map[string]string{"GEMINI_API_KEY": ""}},
		{"openai", map[string]string{"TRIP_AI_PROVIDER": "openai", "OPENAI_API_KEY": ""}},
		{"amap", map[string]string{"AMAP_API_KEY": ""}},
		{"google", map[string]string{"TRIP_SEARCH_BACKEND": "google", "GOOGLE_MAPS_API_KEY": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); !errors.Is(err, ErrMissingKey) {
				t.Fatalf("err = %v, want ErrMissingKey", err)
			}
		})
	}
}

func TestLoadUnknownProvider(t *testing.T) {
	setRequired(t)
	t.Setenv("TRIP_AI_PROVIDER", "claude")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
