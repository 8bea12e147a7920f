// Package oauth owns the platform's OAuth2 credential lifecycle: the
// authorization-code handshake and refresh-token renewal.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
	"github.com/donaldgifford/marketplace-gateway/internal/metrics"
	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

const (
	defaultAuthURL  = "https://auth.mercadolibre.com/authorization"
	defaultTokenURL = "https://api.mercadolibre.com/oauth/token" //nolint:gosec // not a credential
	refreshBuffer   = 60 * time.Second
)

// Manager is the single authority for producing a usable access token.
// Every load→renew→save sequence runs under one mutex, so concurrent
// requests never race on the credential store.
//
// By default each AccessToken call performs a full renewal. Enabling the
// expiry cache (WithExpiryCache) reuses the last minted token until 60
// seconds before it expires, which lowers token endpoint traffic.
type Manager struct {
	conf     *oauth2.Config
	store    credstore.Store
	strategy Strategy
	client   *http.Client
	logger   *slog.Logger

	cacheUntilExpiry bool

	mu      sync.Mutex
	cached  *domain.Credentials
	nowFunc func() time.Time // for testing
}

// Option configures the Manager.
type Option func(*Manager)

// WithAuthURL overrides the default authorization endpoint.
func WithAuthURL(u string) Option {
	return func(m *Manager) {
		m.conf.Endpoint.AuthURL = u
	}
}

// WithTokenURL overrides the default token endpoint.
func WithTokenURL(u string) Option {
	return func(m *Manager) {
		m.conf.Endpoint.TokenURL = u
	}
}

// WithRedirectURI sets the redirect URI registered with the platform.
func WithRedirectURI(u string) Option {
	return func(m *Manager) {
		m.conf.RedirectURL = u
	}
}

// WithStrategy sets the renewal strategy.
func WithStrategy(s Strategy) Option {
	return func(m *Manager) {
		m.strategy = s
	}
}

// WithHTTPClient overrides the HTTP client used against the token endpoint.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.client = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithExpiryCache enables reuse of the last minted token until shortly
// before its expiry.
func WithExpiryCache(enabled bool) Option {
	return func(m *Manager) {
		m.cacheUntilExpiry = enabled
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(m *Manager) {
		m.nowFunc = f
	}
}

// NewManager creates a Manager for the given client credentials.
func NewManager(
	clientID, clientSecret string,
	store credstore.Store,
	opts ...Option,
) *Manager {
	m := &Manager{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   defaultAuthURL,
				TokenURL:  defaultTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		store:    store,
		strategy: StrategyAlwaysRenew,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   slog.New(slog.DiscardHandler),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Strategy returns the renewal strategy in effect.
func (m *Manager) Strategy() Strategy {
	return m.strategy
}

// BeginAuthorization builds the URL the user's browser is sent to for
// consent. It has no side effects.
func (m *Manager) BeginAuthorization(clientID, redirectURI string) string {
	conf := *m.conf
	conf.ClientID = clientID
	conf.RedirectURL = redirectURI
	return conf.AuthCodeURL("")
}

// AuthorizationURL is BeginAuthorization with the configured client id and
// redirect URI.
func (m *Manager) AuthorizationURL() string {
	return m.BeginAuthorization(m.conf.ClientID, m.conf.RedirectURL)
}

// CompleteAuthorization exchanges a one-time authorization code for a token
// pair and persists it.
func (m *Manager) CompleteAuthorization(
	ctx context.Context,
	code string,
) (domain.Credentials, error) {
	if code == "" {
		return domain.Credentials{}, &AuthError{Reason: ReasonMissingCode}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tok, err := m.conf.Exchange(m.clientContext(ctx), code)
	if err != nil {
		metrics.AuthorizationExchangesTotal.WithLabelValues("rejected").Inc()
		return domain.Credentials{}, newAuthError(ReasonAuthorizationRejected, err)
	}

	creds := credentialsFromToken(tok, "")
	if err := m.store.Save(ctx, creds); err != nil {
		metrics.AuthorizationExchangesTotal.WithLabelValues("error").Inc()
		return domain.Credentials{}, fmt.Errorf("persisting credentials: %w", err)
	}
	m.cached = &creds

	metrics.AuthorizationExchangesTotal.WithLabelValues("ok").Inc()
	m.logger.Info("authorization completed",
		"has_refresh_token", creds.RefreshToken != "",
		"expires_at", creds.ExpiresAt,
	)
	return creds, nil
}

// AccessToken returns a usable access token according to the configured
// strategy.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cacheUntilExpiry && m.cachedValidLocked() {
		return m.cached.AccessToken, nil
	}
	return m.renewLocked(ctx)
}

// RenewAccessToken always renews, bypassing the expiry cache. The gateway
// calls it after the platform rejects a token.
func (m *Manager) RenewAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.renewLocked(ctx)
}

// Ready reports whether the store holds credentials from which the
// configured strategy can produce a token.
func (m *Manager) Ready(ctx context.Context) error {
	creds, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return credstore.ErrNoCredentials
	}
	if m.strategy.RequiresRefreshToken() && !creds.HasRefreshToken() {
		return &AuthError{Reason: ReasonNoRefreshToken}
	}
	return nil
}

func (m *Manager) renewLocked(ctx context.Context) (string, error) {
	creds, err := m.store.Load(ctx)
	if err != nil && !errors.Is(err, credstore.ErrNoCredentials) {
		return "", fmt.Errorf("loading credentials: %w", err)
	}

	switch m.strategy {
	case StrategyAlwaysRenew:
		fresh, err := m.refreshLocked(ctx, creds)
		if err != nil {
			return "", err
		}
		return fresh.AccessToken, nil

	case StrategyRenewOnLoad:
		fresh, err := m.refreshLocked(ctx, creds)
		if err != nil {
			return "", err
		}
		if err := m.store.Save(ctx, *fresh); err != nil {
			return "", fmt.Errorf("persisting renewed credentials: %w", err)
		}
		return fresh.AccessToken, nil

	case StrategyRenewWithFallback:
		fresh, err := m.refreshLocked(ctx, creds)
		if err == nil {
			if saveErr := m.store.Save(ctx, *fresh); saveErr != nil {
				m.logger.Warn("persisting renewed credentials failed", "error", saveErr)
			}
			return fresh.AccessToken, nil
		}
		if creds != nil && creds.AccessToken != "" {
			metrics.TokenFallbacksTotal.Inc()
			m.logger.Warn("renewal failed, serving static access token", "error", err)
			return creds.AccessToken, nil
		}
		return "", err

	default:
		return "", fmt.Errorf("unsupported renewal strategy %q", m.strategy)
	}
}

func (m *Manager) refreshLocked(
	ctx context.Context,
	creds *domain.Credentials,
) (*domain.Credentials, error) {
	if !creds.HasRefreshToken() {
		metrics.TokenRenewalsTotal.WithLabelValues(string(m.strategy), "unavailable").Inc()
		return nil, &AuthError{Reason: ReasonNoRefreshToken}
	}

	src := m.conf.TokenSource(
		m.clientContext(ctx),
		&oauth2.Token{RefreshToken: creds.RefreshToken},
	)
	tok, err := src.Token()
	if err != nil {
		authErr := newAuthError(ReasonRefreshRejected, err)
		metrics.TokenRenewalsTotal.WithLabelValues(string(m.strategy), authErr.Reason).Inc()
		return nil, authErr
	}

	fresh := credentialsFromToken(tok, creds.RefreshToken)
	m.cached = &fresh

	metrics.TokenRenewalsTotal.WithLabelValues(string(m.strategy), "ok").Inc()
	m.logger.Debug("access token renewed",
		"strategy", m.strategy,
		"refresh_rotated", fresh.RefreshToken != creds.RefreshToken,
		"expires_at", fresh.ExpiresAt,
	)
	return &fresh, nil
}

func (m *Manager) cachedValidLocked() bool {
	if m.cached == nil || m.cached.AccessToken == "" || m.cached.ExpiresAt == nil {
		return false
	}
	return m.nowFunc().Before(m.cached.ExpiresAt.Add(-refreshBuffer))
}

func (m *Manager) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, m.client)
}

func credentialsFromToken(tok *oauth2.Token, previousRefresh string) domain.Credentials {
	creds := domain.Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if creds.RefreshToken == "" {
		creds.RefreshToken = previousRefresh
	}
	if !tok.Expiry.IsZero() {
		expiry := tok.Expiry.UTC()
		creds.ExpiresAt = &expiry
	}
	return creds
}
