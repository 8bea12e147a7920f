package oauth

import (
	"fmt"

	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
)

// Strategy selects how AccessToken produces a token. It is fixed for the
// lifetime of a Manager.
type Strategy string

// Renewal strategies.
const (
	// StrategyAlwaysRenew ignores any stored access token and exchanges the
	// stored refresh token on every call. The result is not persisted.
	StrategyAlwaysRenew Strategy = "always-renew"
	// StrategyRenewOnLoad loads the stored pair, exchanges its refresh token
	// and persists the renewed pair.
	StrategyRenewOnLoad Strategy = "renew-on-load"
	// StrategyRenewWithFallback behaves like StrategyRenewOnLoad but serves the
	// stored static access token, possibly stale, when renewal fails.
	StrategyRenewWithFallback Strategy = "renew-with-fallback"
)

// ParseStrategy converts a configuration value into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAlwaysRenew, StrategyRenewOnLoad, StrategyRenewWithFallback:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf(
			"renewal strategy must be one of: %s, %s, %s (got %q)",
			StrategyAlwaysRenew, StrategyRenewOnLoad, StrategyRenewWithFallback, s,
		)
	}
}

// RequiresRefreshToken reports whether the strategy cannot produce a token
// without a stored refresh token.
func (s Strategy) RequiresRefreshToken() bool {
	return s != StrategyRenewWithFallback
}

// DefaultStrategy returns the strategy that matches a credential backend
// when none is configured explicitly.
func DefaultStrategy(backend string) Strategy {
	switch backend {
	case credstore.BackendFile:
		return StrategyRenewOnLoad
	case credstore.BackendStatic:
		return StrategyRenewWithFallback
	default:
		return StrategyAlwaysRenew
	}
}
