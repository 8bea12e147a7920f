// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
	"github.com/donaldgifford/marketplace-gateway/internal/oauth"
)

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Platform    PlatformConfig    `yaml:"platform"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Items       ItemsConfig       `yaml:"items"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PlatformConfig defines the commerce platform endpoints and OAuth client.
type PlatformConfig struct {
	AuthURL        string          `yaml:"auth_url"`
	APIURL         string          `yaml:"api_url"`
	TokenURL       string          `yaml:"token_url"`
	ClientID       string          `yaml:"client_id"`
	ClientSecret   string          `yaml:"client_secret"`
	RedirectURI    string          `yaml:"redirect_uri"`
	Timeout        time.Duration   `yaml:"timeout"`
	ConnectTimeout time.Duration   `yaml:"connect_timeout"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines outbound API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"` // 0 disables the daily quota
}

// CredentialsConfig selects the credential backend and renewal strategy.
type CredentialsConfig struct {
	Backend      string `yaml:"backend"`  // env, file, static
	Strategy     string `yaml:"strategy"` // always-renew, renew-on-load, renew-with-fallback
	RefreshToken string `yaml:"refresh_token"`
	FilePath     string `yaml:"file_path"`
	AccessToken  string `yaml:"access_token"`
	// CacheUntilExpiry reuses a minted access token until shortly before it
	// expires instead of renewing on every call.
	CacheUntilExpiry bool `yaml:"cache_until_expiry"`
}

// ItemsConfig defines item resolution limits.
type ItemsConfig struct {
	Concurrency int `yaml:"concurrency"`
	MaxResults  int `yaml:"max_results"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`  // debug, info, warn, error
	Format     string `yaml:"format"` // text, json
	File       string `yaml:"file"`   // optional rotating log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// RenewalStrategy returns the configured strategy. Load has already
// validated it.
func (c *CredentialsConfig) RenewalStrategy() oauth.Strategy {
	s, err := oauth.ParseStrategy(c.Strategy)
	if err != nil {
		return oauth.DefaultStrategy(c.Backend)
	}
	return s
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyPlatformDefaults(&cfg.Platform)
	applyCredentialsDefaults(&cfg.Credentials)
	applyItemsDefaults(&cfg.Items)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyPlatformDefaults(p *PlatformConfig) {
	if p.AuthURL == "" {
		p.AuthURL = "https://auth.mercadolibre.com/authorization"
	}
	if p.APIURL == "" {
		p.APIURL = "https://api.mercadolibre.com"
	}
	if p.TokenURL == "" {
		p.TokenURL = p.APIURL + "/oauth/token"
	}
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
	if p.ConnectTimeout == 0 {
		p.ConnectTimeout = 5 * time.Second
	}
	applyRateLimitDefaults(&p.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 10
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyCredentialsDefaults(c *CredentialsConfig) {
	if c.Backend == "" {
		c.Backend = credstore.BackendEnv
	}
	if c.Strategy == "" {
		c.Strategy = string(oauth.DefaultStrategy(c.Backend))
	}
}

func applyItemsDefaults(i *ItemsConfig) {
	if i.Concurrency == 0 {
		i.Concurrency = 4
	}
	if i.MaxResults == 0 {
		i.MaxResults = 10
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
	if l.File != "" && l.MaxSizeMB == 0 {
		l.MaxSizeMB = 50
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Platform.ClientID == "" {
		errs = append(errs, fmt.Errorf("platform.client_id is required"))
	}
	if cfg.Platform.ClientSecret == "" {
		errs = append(errs, fmt.Errorf("platform.client_secret is required"))
	}
	if cfg.Platform.RedirectURI == "" {
		errs = append(errs, fmt.Errorf("platform.redirect_uri is required"))
	}

	for name, raw := range map[string]string{
		"platform.auth_url":  cfg.Platform.AuthURL,
		"platform.api_url":   cfg.Platform.APIURL,
		"platform.token_url": cfg.Platform.TokenURL,
	} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL (got %q)", name, raw))
		}
	}

	switch cfg.Credentials.Backend {
	case credstore.BackendEnv:
		if cfg.Credentials.RefreshToken == "" {
			errs = append(
				errs,
				fmt.Errorf("credentials.refresh_token is required when backend is env"),
			)
		}
	case credstore.BackendFile:
		if cfg.Credentials.FilePath == "" {
			errs = append(
				errs,
				fmt.Errorf("credentials.file_path is required when backend is file"),
			)
		}
	case credstore.BackendStatic:
		if cfg.Credentials.AccessToken == "" {
			errs = append(
				errs,
				fmt.Errorf("credentials.access_token is required when backend is static"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"credentials.backend must be one of: env, file, static (got %q)",
				cfg.Credentials.Backend,
			),
		)
	}

	strategy, err := oauth.ParseStrategy(cfg.Credentials.Strategy)
	if err != nil {
		errs = append(errs, fmt.Errorf("credentials.strategy: %w", err))
	}
	if err == nil && cfg.Credentials.Backend == credstore.BackendStatic &&
		strategy.RequiresRefreshToken() && cfg.Credentials.RefreshToken == "" {
		errs = append(errs, fmt.Errorf(
			"credentials.refresh_token is required when backend is static and strategy is %s",
			strategy,
		))
	}

	if cfg.Items.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("items.concurrency must be at least 1"))
	}
	if cfg.Items.MaxResults < 1 {
		errs = append(errs, fmt.Errorf("items.max_results must be at least 1"))
	}

	return errors.Join(errs...)
}
