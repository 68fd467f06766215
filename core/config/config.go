package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/WanderingWalnut/Grantly/core/db"
)

type Config struct {
	OTel      OTelConfig
	Discovery DiscoveryConfig
	Search    SearchConfig
	Locator   LocatorConfig
	Redis     RedisConfig
	DraftLLM  LLMConfig
	Env       string
	LogLevel  string
	Port      string
	NodeID    int64
	DB        db.Config
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
	Environment    string
	// SampleRatio is the fraction of new traces kept; 0 or >= 1 keeps all.
	SampleRatio float64
}

// DiscoveryConfig selects how grants are discovered. Mode and QueryStrategy
// are kept as raw strings; the discovery package parses them.
type DiscoveryConfig struct {
	Mode           string // "mock" or "live"
	DatasetPath    string
	QueryStrategy  string // "single" or "fanout"
	SearchDomains  []string
	TrustedDomains []string
	// AllowedDomains is the relevance allow-list. nil follows SearchDomains;
	// an empty list accepts any .ca host or jurisdiction mention.
	AllowedDomains []string
}

type SearchConfig struct {
	APIKey           string
	BaseURL          string
	Timeout          time.Duration
	MaxTokensPerPage int
}

type LocatorConfig struct {
	UserAgent string
	LinkHint  string
	Timeout   time.Duration
	CacheTTL  time.Duration
	// WarmSchedule is a cron spec for pre-locating dataset links; empty disables it.
	WarmSchedule string
}

type RedisConfig struct {
	URL string
}

type LLMConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
	ServiceTypeCLI    ServiceType = "cli"
)

const (
	DefaultDatasetPath     = "data/samples/grants_sample.json"
	DefaultSearchBaseURL   = "https://api.perplexity.ai"
	DefaultDraftLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultDraftLLMModel   = "gemini-2.5-flash"
)

var defaultDomains = "canada.ca,gc.ca,alberta.ca"

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.cli for grantctl
//
// Falls back to .env if service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("GRANTLY_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	timeout := time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 20)) * time.Second

	cfg := Config{
		Env:      getEnv("GRANTLY_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),
		Port:     getEnv("PORT", "8080"),
		NodeID:   int64(getEnvInt("NODE_ID", 1)),
		DB: db.Config{
			DSN:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvInt32("DB_MAX_CONNS", 10),
			MinConns: getEnvInt32("DB_MIN_CONNS", 2),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "grantly"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnv("GRANTLY_ENV", "development"),
			SampleRatio:    getEnvFloat("OTEL_TRACES_SAMPLER_ARG", 1),
		},
		Discovery: DiscoveryConfig{
			Mode:           strings.ToLower(strings.TrimSpace(getEnv("GRANT_FINDER_MODE", "mock"))),
			DatasetPath:    getEnv("GRANT_DATASET_PATH", DefaultDatasetPath),
			QueryStrategy:  getEnv("SEARCH_QUERY_STRATEGY", "single"),
			SearchDomains:  getEnvList("SEARCH_DOMAINS", defaultDomains),
			TrustedDomains: getEnvList("TRUSTED_DOMAINS", defaultDomains),
			AllowedDomains: getEnvList("RELEVANCE_ALLOWED_DOMAINS", ""),
		},
		Search: SearchConfig{
			APIKey:           getEnv("PERPLEXITY_API_KEY", ""),
			BaseURL:          getEnv("PERPLEXITY_BASE_URL", DefaultSearchBaseURL),
			Timeout:          timeout,
			MaxTokensPerPage: getEnvInt("SEARCH_MAX_TOKENS_PER_PAGE", 1024),
		},
		Locator: LocatorConfig{
			UserAgent: getEnv("LOCATOR_USER_AGENT", "grantly-locator/1.0"),
			LinkHint:  getEnv("LOCATOR_LINK_HINT", "Sample"),
			Timeout:   timeout,
			CacheTTL:  time.Duration(getEnvInt("LINK_CACHE_TTL_HOURS", 24)) * time.Hour,

			WarmSchedule: getEnv("LINK_WARM_SCHEDULE", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		DraftLLM: LLMConfig{
			APIKey:    getEnv("DRAFT_LLM_API_KEY", ""),
			BaseURL:   getEnv("DRAFT_LLM_BASE_URL", DefaultDraftLLMBaseURL),
			Model:     getEnv("DRAFT_LLM_MODEL", DefaultDraftLLMModel),
			MaxTokens: getEnvInt("DRAFT_LLM_MAX_TOKENS", 4096),
			Timeout:   time.Duration(getEnvInt("DRAFT_LLM_TIMEOUT_SECONDS", 120)) * time.Second,
		},
	}

	switch cfg.Discovery.Mode {
	case "mock", "live":
	default:
		return Config{}, fmt.Errorf("GRANT_FINDER_MODE must be mock or live, got %q", cfg.Discovery.Mode)
	}

	if timeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c SearchConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) int32 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blank entries. An
// unset variable with no fallback is nil; a variable set to "" is an empty,
// non-nil list.
func getEnvList(key, fallback string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		if fallback == "" {
			return nil
		}
		raw = fallback
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
