package infra

import (
	"testing"
	"time"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BATCH_STORE", "DATABASE_URL", "REDIS_URL", "REPLICATE_API_TOKEN", "REPLICATE_MODEL", "REPLICATE_MODEL_VERSION", "BATCH_TTL", "MAX_UPLOAD_MB", "MAX_COMBOS_PER_BATCH", "HTTP_WRITE_TIMEOUT_SECONDS", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearStoreEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.BatchStore != StoreMemory {
		t.Fatalf("BatchStore mismatch: got %q want %q", cfg.BatchStore, StoreMemory)
	}
	if cfg.BatchTTL != 24*time.Hour {
		t.Fatalf("BatchTTL mismatch: got %v", cfg.BatchTTL)
	}
	if cfg.ReplicateBaseURL != "https://api.replicate.com/v1" {
		t.Fatalf("ReplicateBaseURL mismatch: got %q", cfg.ReplicateBaseURL)
	}
	if cfg.ReplicateAPIToken != "" {
		t.Fatalf("expected empty token, got %q", cfg.ReplicateAPIToken)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("MaxUploadBytes mismatch: got %d", cfg.MaxUploadBytes)
	}
	if cfg.MaxCombos != 16 {
		t.Fatalf("MaxCombos mismatch: got %d", cfg.MaxCombos)
	}
}

func TestLoadConfigWriteTimeoutCoversLargestBatch(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("MAX_COMBOS_PER_BATCH", "4")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	// four jobs that each poll to the deadline and one trailing interval
	worst := 4 * (120*time.Second + 2500*time.Millisecond)
	if cfg.HTTPWriteTimeout <= worst {
		t.Fatalf("write timeout %v does not cover worst batch %v", cfg.HTTPWriteTimeout, worst)
	}
	if cfg.HTTPWriteTimeout != 4*BatchJobBudget+time.Minute {
		t.Fatalf("write timeout = %v", cfg.HTTPWriteTimeout)
	}

	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "90")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.HTTPWriteTimeout != 90*time.Second {
		t.Fatalf("explicit write timeout ignored: %v", cfg.HTTPWriteTimeout)
	}

	t.Setenv("MAX_COMBOS_PER_BATCH", "0")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for zero combo ceiling")
	}
}

func TestLoadConfigDoesNotRequireToken(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("REPLICATE_API_TOKEN", "  r8_token  ")
	t.Setenv("REPLICATE_MODEL", "acme/fitting-room")
	t.Setenv("BATCH_TTL", "90m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ReplicateAPIToken != "r8_token" {
		t.Fatalf("token not trimmed: %q", cfg.ReplicateAPIToken)
	}
	if cfg.ReplicateModel != "acme/fitting-room" {
		t.Fatalf("model mismatch: %q", cfg.ReplicateModel)
	}
	if cfg.BatchTTL != 90*time.Minute {
		t.Fatalf("BatchTTL mismatch: %v", cfg.BatchTTL)
	}
}

func TestLoadConfigStoreValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{name: "postgres without url", env: map[string]string{"BATCH_STORE": "postgres"}, wantErr: true},
		{name: "postgres with url", env: map[string]string{"BATCH_STORE": "postgres", "DATABASE_URL": "postgres://example"}},
		{name: "redis without url", env: map[string]string{"BATCH_STORE": "redis"}, wantErr: true},
		{name: "redis with url", env: map[string]string{"BATCH_STORE": "Redis", "REDIS_URL": "redis://localhost:6379/0"}},
		{name: "unknown store", env: map[string]string{"BATCH_STORE": "s3"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearStoreEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.example" || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}
