package config

import (
	"context"
	"strings"
	"testing"

	"github.com/jonwraymond/authgate/policy"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SIGNING_SECRET", "test-signing-secret-0123456789ab")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServiceName != "authgate" {
		t.Errorf("expected default service name authgate, got %q", cfg.ServiceName)
	}
	if cfg.AccessTokenTTL != "15m" || cfg.RefreshTokenTTL != "7d" {
		t.Errorf("unexpected default TTLs: %q %q", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if string(cfg.SigningSecret()) != "test-signing-secret-0123456789ab" {
		t.Error("signing secret not resolved from env ref")
	}
	if cfg.Rules() == nil {
		t.Fatal("expected compiled rules")
	}
	if got := cfg.Rules().Classify("/health"); got != policy.ClassExcluded {
		t.Errorf("expected /health excluded, got %v", got)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_REF", "secretref:env:AUTHGATE_NO_SUCH_SECRET")

	_, err := Load(context.Background())
	if err == nil {
		t.Fatal("expected error for unresolvable secret")
	}
	if !strings.Contains(err.Error(), "signing secret") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "1h30m")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error for compound TTL")
	}
}

func TestLoad_PolicyAdditions(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_EXCLUDED_PATHS", "/app/user/refresh,/status")
	t.Setenv("AUTH_EXCLUDED_PATTERNS", `^/assets/`)
	t.Setenv("AUTH_OPTIONAL_PATHS", "/app/feed")
	t.Setenv("AUTH_APIKEY_PREFIXES", "/internal/")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rules := cfg.Rules()
	tests := []struct {
		path string
		want policy.Class
	}{
		{"/app/user/refresh", policy.ClassExcluded},
		{"/status", policy.ClassExcluded},
		{"/assets/logo.png", policy.ClassExcluded},
		{"/app/feed", policy.ClassOptional},
		{"/internal/sync", policy.ClassAPIKey},
		{"/app/user/profile", policy.ClassOptional}, // stock rule survives
		{"/app/orders", policy.ClassMandatory},
	}
	for _, tt := range tests {
		if got := rules.Classify(tt.path); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoad_BadPattern(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH_EXCLUDED_PATTERNS", `^/bad[`)

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestLoad_BadLogLevel(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LOG_LEVEL", "chatty")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestConfig_Observe(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TRACING_EXPORTER", "stdout")
	t.Setenv("METRICS_EXPORTER", "none")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	obs := cfg.Observe()
	if !obs.Tracing.Enabled || obs.Tracing.Exporter != "stdout" {
		t.Errorf("unexpected tracing config: %+v", obs.Tracing)
	}
	if obs.Metrics.Enabled {
		t.Error("metrics exporter none should leave metrics disabled")
	}
	if !obs.Logging.Enabled || obs.Logging.Level != "debug" {
		t.Errorf("unexpected logging config: %+v", obs.Logging)
	}
}
