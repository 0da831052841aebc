package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Batch store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// BatchJobBudget bounds one sequential job: the two minute poll deadline, one
// trailing poll interval and slack for the submit call.
const BatchJobBudget = 150 * time.Second

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	// ReplicateAPIToken is checked per batch, not at startup, so the service
	// can boot and serve presets without credentials.
	ReplicateAPIToken     string
	ReplicateBaseURL      string
	ReplicateModel        string
	ReplicateModelVersion string
	ProviderRatePerMinute int

	PresetsFile string
	// ReferenceArchiveDir enables archiving uploaded reference images.
	ReferenceArchiveDir string

	BatchStore  string
	BatchTTL    time.Duration
	DatabaseURL string
	RedisURL    string

	MaxUploadBytes   int64
	MaxCombos        int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		ReplicateAPIToken:     strings.TrimSpace(os.Getenv("REPLICATE_API_TOKEN")),
		ReplicateBaseURL:      getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		ReplicateModel:        strings.TrimSpace(os.Getenv("REPLICATE_MODEL")),
		ReplicateModelVersion: strings.TrimSpace(os.Getenv("REPLICATE_MODEL_VERSION")),
		ProviderRatePerMinute: getEnvInt("PROVIDER_REQUESTS_PER_MINUTE", 300),
		PresetsFile:           strings.TrimSpace(os.Getenv("PRESETS_FILE")),
		ReferenceArchiveDir:   strings.TrimSpace(os.Getenv("REFERENCE_ARCHIVE_DIR")),
		BatchStore:            strings.ToLower(getEnv("BATCH_STORE", StoreMemory)),
		BatchTTL:              getEnvDuration("BATCH_TTL", 24*time.Hour),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisURL:              os.Getenv("REDIS_URL"),
		MaxUploadBytes:        int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
		MaxCombos:             getEnvInt("MAX_COMBOS_PER_BATCH", 16),
		HTTPReadTimeout:       time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:       time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:       getEnvInt("RATE_LIMIT_PER_MINUTE", 30),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	switch cfg.BatchStore {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when BATCH_STORE=postgres")
		}
	case StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when BATCH_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("unsupported BATCH_STORE %q", cfg.BatchStore)
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if cfg.MaxCombos <= 0 {
		return nil, fmt.Errorf("MAX_COMBOS_PER_BATCH must be positive")
	}

	// Batches run in the request, so the default write timeout covers the
	// largest batch allowed plus a minute for upload and persistence.
	cfg.HTTPWriteTimeout = time.Duration(cfg.MaxCombos)*BatchJobBudget + time.Minute
	if secs := getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.HTTPWriteTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
