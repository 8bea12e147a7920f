// Package credstore persists the OAuth2 token pair behind a pluggable backend.
// Exactly one backend is selected at startup; they are never layered.
package credstore

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// ErrNoCredentials is returned by Load when the backend holds nothing yet.
// It is the expected state before the first authorization.
var ErrNoCredentials = errors.New("no credentials available")

// Store loads and saves the current credentials.
type Store interface {
	Load(ctx context.Context) (*domain.Credentials, error)
	Save(ctx context.Context, creds domain.Credentials) error
}

// Backend names accepted by New.
const (
	BackendEnv    = "env"
	BackendFile   = "file"
	BackendStatic = "static"
)

// Options carries the parameters of every backend; only the ones relevant to
// the selected backend are read.
type Options struct {
	RefreshToken string
	FilePath     string
	AccessToken  string
}

// New builds the store for the named backend.
func New(backend string, opts Options) (Store, error) {
	switch backend {
	case BackendEnv:
		return NewEnvStore(opts.RefreshToken), nil
	case BackendFile:
		return NewFileStore(opts.FilePath), nil
	case BackendStatic:
		return NewStaticStore(opts.AccessToken, opts.RefreshToken), nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q", backend)
	}
}

// EnvStore serves a refresh token taken from configuration and never persists
// anything. Every renewal starts from the same refresh token.
type EnvStore struct {
	refreshToken string
}

// NewEnvStore creates an EnvStore.
func NewEnvStore(refreshToken string) *EnvStore {
	return &EnvStore{refreshToken: refreshToken}
}

// Load returns credentials holding only the configured refresh token.
func (s *EnvStore) Load(_ context.Context) (*domain.Credentials, error) {
	if s.refreshToken == "" {
		return nil, ErrNoCredentials
	}
	return &domain.Credentials{RefreshToken: s.refreshToken}, nil
}

// Save is a no-op.
func (*EnvStore) Save(_ context.Context, _ domain.Credentials) error {
	return nil
}

// StaticStore holds a fixed access token used as the last resort when renewal
// fails. An optional refresh token lets renewal be attempted first.
type StaticStore struct {
	accessToken  string
	refreshToken string
}

// NewStaticStore creates a StaticStore.
func NewStaticStore(accessToken, refreshToken string) *StaticStore {
	return &StaticStore{accessToken: accessToken, refreshToken: refreshToken}
}

// Load returns the static credentials.
func (s *StaticStore) Load(_ context.Context) (*domain.Credentials, error) {
	if s.accessToken == "" && s.refreshToken == "" {
		return nil, ErrNoCredentials
	}
	return &domain.Credentials{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
	}, nil
}

// Save is a no-op.
func (*StaticStore) Save(_ context.Context, _ domain.Credentials) error {
	return nil
}
