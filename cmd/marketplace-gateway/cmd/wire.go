package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/donaldgifford/marketplace-gateway/internal/config"
	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
	"github.com/donaldgifford/marketplace-gateway/internal/items"
	"github.com/donaldgifford/marketplace-gateway/internal/oauth"
	"github.com/donaldgifford/marketplace-gateway/internal/platform"
	"github.com/donaldgifford/marketplace-gateway/pkg/logger"
)

var envKeyReplacer = strings.NewReplacer("-", "_")

// app holds every component built from the configuration.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	logCloser  io.Closer
	tokens     *oauth.Manager
	limiter    *platform.RateLimiter
	gateway    *platform.Gateway
	client     *platform.Client
	aggregator *items.Aggregator
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotenvIfPresent(viper.GetString("env-file")); err != nil {
		return nil, err
	}

	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if lvl := viper.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, nil
}

func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg)
}

func newApp(cfg *config.Config) (*app, error) {
	log, closer := logger.NewWithFile(cfg.Logging.Level, cfg.Logging.Format, logger.FileOptions{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   true,
	})

	store, err := credstore.New(cfg.Credentials.Backend, credstore.Options{
		RefreshToken: cfg.Credentials.RefreshToken,
		FilePath:     cfg.Credentials.FilePath,
		AccessToken:  cfg.Credentials.AccessToken,
	})
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("building credential store: %w", err)
	}

	pc := cfg.Platform
	httpClient := platform.NewHTTPClient(pc.ConnectTimeout, pc.Timeout)

	tokens := oauth.NewManager(pc.ClientID, pc.ClientSecret, store,
		oauth.WithAuthURL(pc.AuthURL),
		oauth.WithTokenURL(pc.TokenURL),
		oauth.WithRedirectURI(pc.RedirectURI),
		oauth.WithStrategy(cfg.Credentials.RenewalStrategy()),
		oauth.WithHTTPClient(httpClient),
		oauth.WithExpiryCache(cfg.Credentials.CacheUntilExpiry),
		oauth.WithLogger(log.With("component", "oauth")),
	)

	limiter := platform.NewRateLimiter(
		pc.RateLimit.PerSecond,
		pc.RateLimit.Burst,
		pc.RateLimit.DailyLimit,
	)

	gw := platform.NewGateway(tokens,
		platform.WithBaseURL(pc.APIURL),
		platform.WithHTTPClient(httpClient),
		platform.WithRateLimiter(limiter),
		platform.WithLogger(log.With("component", "platform")),
	)

	return &app{
		cfg:       cfg,
		logger:    log,
		logCloser: closer,
		tokens:    tokens,
		limiter:   limiter,
		gateway:   gw,
		client:    platform.NewClient(gw),
		aggregator: items.NewAggregator(gw,
			items.WithConcurrency(cfg.Items.Concurrency),
			items.WithLogger(log.With("component", "items")),
		),
	}, nil
}

func (a *app) Close() error {
	return a.logCloser.Close()
}
