// README: Config loader with env defaults for HTTP, DB, Redis, AI and place search settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	BackendAMap   = "amap"
	BackendGoogle = "google"
)

var ErrMissingKey = errors.New("missing api key")

type AIConfig struct {
	Provider      string
	GeminiKey     string
	GeminiModel   string
	OpenAIKey     string
	OpenAIBase    string
	OpenAIModel   string
	RegionEnabled bool
	PlanTimeout   time.Duration
	RegionTimeout time.Duration
}

type SearchConfig struct {
	Backend          string
	AMapKey          string
	GoogleKey        string
	QPS              float64
	KeywordDelay     time.Duration
	StrategyDelay    time.Duration
	RateLimitBackoff time.Duration
	CacheTTL         time.Duration
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	AI     AIConfig
	Search SearchConfig
	Quota  struct {
		Monthly int
	}
}

// Load reads the environment, after an optional .env file. An empty DB DSN
// disables quotas and an empty Redis address disables the search cache.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIP_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = splitList(envOrDefault("TRIP_CORS_ORIGINS", "*"))
	cfg.DB.DSN = os.Getenv("TRIP_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIP_REDIS_ADDR")

	cfg.AI.Provider = strings.ToLower(envOrDefault("TRIP_AI_PROVIDER", ProviderGemini))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GeminiModel = envOrDefault("TRIP_GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIBase = envOrDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.AI.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.AI.RegionEnabled = envOrDefaultBool("TRIP_AI_REGION_ENABLED", true)
	cfg.AI.PlanTimeout = time.Duration(envOrDefaultInt("TRIP_AI_PLAN_TIMEOUT_SEC", 30)) * time.Second
	cfg.AI.RegionTimeout = time.Duration(envOrDefaultInt("TRIP_AI_REGION_TIMEOUT_SEC", 3)) * time.Second

	cfg.Search.Backend = strings.ToLower(envOrDefault("TRIP_SEARCH_BACKEND", BackendAMap))
	cfg.Search.AMapKey = os.Getenv("AMAP_API_KEY")
	cfg.Search.GoogleKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Search.QPS = envOrDefaultFloat("TRIP_SEARCH_QPS", 3)
	cfg.Search.KeywordDelay = time.Duration(envOrDefaultInt("TRIP_KEYWORD_DELAY_MS", 200)) * time.Millisecond
	cfg.Search.StrategyDelay = time.Duration(envOrDefaultInt("TRIP_STRATEGY_DELAY_MS", 150)) * time.Millisecond
	cfg.Search.RateLimitBackoff = time.Duration(envOrDefaultInt("TRIP_RATE_LIMIT_BACKOFF_MS", 500)) * time.Millisecond
	cfg.Search.CacheTTL = time.Duration(envOrDefaultInt("TRIP_SEARCH_CACHE_TTL_MIN", 60)) * time.Minute

	cfg.Quota.Monthly = envOrDefaultInt("TRIP_QUOTA_MONTHLY", 100)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.AI.Provider {
	case ProviderGemini:
		if c.AI.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY: %w", ErrMissingKey)
		}
	case ProviderOpenAI:
		if c.AI.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY: %w", ErrMissingKey)
		}
	default:
		return fmt.Errorf("unknown TRIP_AI_PROVIDER %q", c.AI.Provider)
	}

	switch c.Search.Backend {
	case BackendAMap:
		if c.Search.AMapKey == "" {
			return fmt.Errorf("AMAP_API_KEY: %w", ErrMissingKey)
		}
	case BackendGoogle:
		if c.Search.GoogleKey == "" {
			return fmt.Errorf("GOOGLE_MAPS_API_KEY: %w", ErrMissingKey)
		}
	default:
		return fmt.Errorf("unknown TRIP_SEARCH_BACKEND %q", c.Search.Backend)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
