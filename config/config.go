package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/jonwraymond/authgate/observe"
	"github.com/jonwraymond/authgate/policy"
	"github.com/jonwraymond/authgate/secret"
	"github.com/jonwraymond/authgate/token"
)

// Config is the parsed service configuration. SigningSecret and Rules
// are derived during Load and immutable afterwards.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"authgate"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":3000"`

	// SigningSecretRef is a secretref resolved at load time, so the
	// secret value stays out of the config surface.
	SigningSecretRef string `env:"JWT_SECRET_REF" envDefault:"secretref:env:JWT_SIGNING_SECRET"`
	Issuer           string `env:"JWT_ISSUER" envDefault:"authgate"`
	Audience         string `env:"JWT_AUDIENCE" envDefault:"authgate-clients"`
	AccessTokenTTL   string `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL  string `env:"REFRESH_TOKEN_TTL" envDefault:"7d"`

	// Policy additions, appended to the stock rule set.
	ExcludedPaths    []string `env:"AUTH_EXCLUDED_PATHS" envSeparator:","`
	ExcludedPatterns []string `env:"AUTH_EXCLUDED_PATTERNS" envSeparator:","`
	OptionalPaths    []string `env:"AUTH_OPTIONAL_PATHS" envSeparator:","`
	APIKeyPrefixes   []string `env:"AUTH_APIKEY_PREFIXES" envSeparator:","`

	LogLevel        string  `env:"LOG_LEVEL" envDefault:"info"`
	TracingExporter string  `env:"TRACING_EXPORTER" envDefault:"none"`
	MetricsExporter string  `env:"METRICS_EXPORTER" envDefault:"none"`
	TraceSamplePct  float64 `env:"TRACE_SAMPLE_PCT" envDefault:"1.0"`

	// Login throttling, per identifier.
	LoginRatePerSec float64 `env:"LOGIN_RATE_PER_SEC" envDefault:"0.2"`
	LoginBurst      int     `env:"LOGIN_BURST" envDefault:"5"`

	signingSecret []byte
	rules         *policy.RuleSet
}

// Load reads the environment into a Config, resolves the signing
// secret, and compiles the rule set. Every failure here is a startup
// abort; there is no degraded mode.
func Load(ctx context.Context) (*Config, error) {
	// Best-effort: absence of a .env file is the normal production case.
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.finish(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish(ctx context.Context) error {
	resolver := secret.NewResolver(true, secret.NewEnvProvider(), secret.NewFileProvider())
	resolved, err := resolver.ResolveValue(ctx, c.SigningSecretRef)
	if err != nil {
		return fmt.Errorf("config: resolve signing secret: %w", err)
	}
	if resolved == "" {
		return errors.New("config: signing secret is empty")
	}
	c.signingSecret = []byte(resolved)

	if _, err := token.ParseTTL(c.AccessTokenTTL); err != nil {
		return fmt.Errorf("config: access token ttl: %w", err)
	}
	if _, err := token.ParseTTL(c.RefreshTokenTTL); err != nil {
		return fmt.Errorf("config: refresh token ttl: %w", err)
	}

	rules := policy.Default()
	for _, p := range c.ExcludedPaths {
		rules.Exclusions = append(rules.Exclusions, policy.Exact(p))
	}
	for _, p := range c.ExcludedPatterns {
		rules.Exclusions = append(rules.Exclusions, policy.Pattern(p))
	}
	rules.OptionalPaths = append(rules.OptionalPaths, c.OptionalPaths...)
	rules.APIKeyPrefixes = append(rules.APIKeyPrefixes, c.APIKeyPrefixes...)
	if err := rules.Compile(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.rules = rules

	obs := c.Observe()
	if err := obs.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// SigningSecret returns the resolved HS256 signing secret.
func (c *Config) SigningSecret() []byte {
	return c.signingSecret
}

// Rules returns the compiled policy rule set.
func (c *Config) Rules() *policy.RuleSet {
	return c.rules
}

// Observe builds the telemetry configuration.
func (c *Config) Observe() observe.Config {
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     c.Version,
		Tracing: observe.TracingConfig{
			Enabled:   c.TracingExporter != "" && c.TracingExporter != "none",
			Exporter:  c.TracingExporter,
			SamplePct: c.TraceSamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.MetricsExporter != "" && c.MetricsExporter != "none",
			Exporter: c.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   c.LogLevel,
		},
	}
}
