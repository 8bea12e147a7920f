package oauth_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
	"github.com/donaldgifford/marketplace-gateway/internal/oauth"
	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// tokenJSON returns a platform token response as JSON bytes.
func tokenJSON(access, refresh string) []byte {
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"token_type":"Bearer","expires_in":21600,"scope":"offline_access read write","user_id":12345,"refresh_token":%q}`,
		access,
		refresh,
	))
}

func writeToken(w http.ResponseWriter, access, refresh string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(tokenJSON(access, refresh))
}

func writeError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// tokenServer is a fake token endpoint that mints sequential access tokens
// and rotates refresh tokens.
type tokenServer struct {
	srv *httptest.Server

	exchanges atomic.Int32
	refreshes atomic.Int32

	mu            sync.Mutex
	refreshTokens []string
}

func newTokenServer(t *testing.T) *tokenServer {
	t.Helper()

	ts := &tokenServer{}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseForm()) {
			return
		}
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			n := ts.exchanges.Add(1)
			writeToken(w, fmt.Sprintf("APP_USR-code-%d", n), fmt.Sprintf("TG-code-%d", n))
		case "refresh_token":
			n := ts.refreshes.Add(1)
			ts.mu.Lock()
			ts.refreshTokens = append(ts.refreshTokens, r.PostForm.Get("refresh_token"))
			ts.mu.Unlock()
			writeToken(w, fmt.Sprintf("APP_USR-refresh-%d", n), fmt.Sprintf("TG-refresh-%d", n))
		default:
			writeError(w, http.StatusBadRequest, `{"error":"unsupported_grant_type"}`)
		}
	}))
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *tokenServer) seenRefreshTokens() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.refreshTokens...)
}

func newManager(
	t *testing.T,
	tokenURL string,
	store credstore.Store,
	opts ...oauth.Option,
) *oauth.Manager {
	t.Helper()

	opts = append([]oauth.Option{
		oauth.WithTokenURL(tokenURL),
		oauth.WithRedirectURI("https://gateway.example.com/auth/callback"),
	}, opts...)
	return oauth.NewManager("client-123", "secret-456", store, opts...)
}

func TestManager_BeginAuthorization(t *testing.T) {
	t.Parallel()

	m := oauth.NewManager(
		"client-123",
		"secret-456",
		credstore.NewEnvStore(""),
		oauth.WithAuthURL("https://auth.example.com/authorization"),
		oauth.WithTokenURL("http://127.0.0.1:0/unreachable"),
	)

	raw := m.BeginAuthorization("client-789", "https://app.example.com/cb?x=1")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "auth.example.com", u.Host)
	assert.Equal(t, "/authorization", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-789", q.Get("client_id"))
	assert.Equal(t, "https://app.example.com/cb?x=1", q.Get("redirect_uri"))
	assert.Len(t, q, 3)
}

func TestManager_AuthorizationURL(t *testing.T) {
	t.Parallel()

	m := newManager(t, "http://127.0.0.1:0", credstore.NewEnvStore(""),
		oauth.WithAuthURL("https://auth.example.com/authorization"))

	u, err := url.Parse(m.AuthorizationURL())
	require.NoError(t, err)
	assert.Equal(t, "client-123", u.Query().Get("client_id"))
	assert.Equal(t, "https://gateway.example.com/auth/callback", u.Query().Get("redirect_uri"))
}

func TestManager_CompleteAuthorization_RequestFormat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "TG-one-time-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret-456", r.PostForm.Get("client_secret"))
		assert.Equal(t, "https://gateway.example.com/auth/callback", r.PostForm.Get("redirect_uri"))

		writeToken(w, "APP_USR-first", "TG-first")
	}))
	defer srv.Close()

	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	m := newManager(t, srv.URL, store, oauth.WithStrategy(oauth.StrategyRenewOnLoad))

	creds, err := m.CompleteAuthorization(context.Background(), "TG-one-time-code")
	require.NoError(t, err)
	assert.Equal(t, "APP_USR-first", creds.AccessToken)
	assert.Equal(t, "TG-first", creds.RefreshToken)
	require.NotNil(t, creds.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(6*time.Hour), *creds.ExpiresAt, time.Minute)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "APP_USR-first", saved.AccessToken)
	assert.Equal(t, "TG-first", saved.RefreshToken)
}

func TestManager_CompleteAuthorization_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		code       string
		handler    http.HandlerFunc
		wantReason string
		wantStatus int
		wantBody   string
	}{
		{
			name: "invalid grant",
			code: "TG-used-code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusBadRequest,
					`{"error":"invalid_grant","error_description":"Error validating grant."}`)
			},
			wantReason: oauth.ReasonAuthorizationRejected,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid_grant",
		},
		{
			name: "server error",
			code: "TG-code",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusInternalServerError, `oops`)
			},
			wantReason: oauth.ReasonAuthorizationRejected,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "oops",
		},
		{
			name: "missing code",
			code: "",
			handler: func(_ http.ResponseWriter, _ *http.Request) {
				t.Error("token endpoint must not be called without a code")
			},
			wantReason: oauth.ReasonMissingCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
			m := newManager(t, srv.URL, store)

			_, err := m.CompleteAuthorization(context.Background(), tt.code)
			require.Error(t, err)

			var authErr *oauth.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantReason, authErr.Reason)
			assert.Equal(t, tt.wantStatus, authErr.UpstreamStatus)
			assert.Contains(t, authErr.UpstreamBody, tt.wantBody)

			_, err = store.Load(context.Background())
			require.ErrorIs(t, err, credstore.ErrNoCredentials, "failed exchange must not persist")
		})
	}
}

func TestManager_AuthorizeThenAccessToken(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	m := newManager(t, ts.srv.URL, store, oauth.WithStrategy(oauth.StrategyRenewOnLoad))

	_, err := m.CompleteAuthorization(context.Background(), "TG-code")
	require.NoError(t, err)

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "APP_USR-refresh-1", token)

	assert.Equal(t, int32(1), ts.exchanges.Load(), "no second authorization round-trip")
	assert.Equal(t, []string{"TG-code-1"}, ts.seenRefreshTokens())
}

func TestManager_AlwaysRenew(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	m := newManager(t, ts.srv.URL, credstore.NewEnvStore("TG-env"))
	require.Equal(t, oauth.StrategyAlwaysRenew, m.Strategy())

	var tokens []string
	for range 3 {
		token, err := m.AccessToken(context.Background())
		require.NoError(t, err)
		tokens = append(tokens, token)
	}

	assert.Equal(t, []string{"APP_USR-refresh-1", "APP_USR-refresh-2", "APP_USR-refresh-3"}, tokens)
	assert.Equal(t, []string{"TG-env", "TG-env", "TG-env"}, ts.seenRefreshTokens())
}

func TestManager_AlwaysRenew_NoRefreshToken(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	m := newManager(t, ts.srv.URL, credstore.NewEnvStore(""))

	_, err := m.AccessToken(context.Background())

	var authErr *oauth.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, oauth.ReasonNoRefreshToken, authErr.Reason)
	assert.Equal(t, int32(0), ts.refreshes.Load())
}

func TestManager_RenewOnLoad_PersistsRotation(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	require.NoError(t, store.Save(context.Background(), domain.Credentials{
		AccessToken:  "APP_USR-stale",
		RefreshToken: "TG-initial",
	}))

	m := newManager(t, ts.srv.URL, store, oauth.WithStrategy(oauth.StrategyRenewOnLoad))

	first, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	second, err := m.AccessToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "APP_USR-refresh-1", first)
	assert.Equal(t, "APP_USR-refresh-2", second)
	assert.Equal(t, []string{"TG-initial", "TG-refresh-1"}, ts.seenRefreshTokens())

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "APP_USR-refresh-2", saved.AccessToken)
	assert.Equal(t, "TG-refresh-2", saved.RefreshToken)
}

func TestManager_RenewOnLoad_NoCredentials(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	m := newManager(t, ts.srv.URL, store, oauth.WithStrategy(oauth.StrategyRenewOnLoad))

	_, err := m.AccessToken(context.Background())

	var authErr *oauth.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, oauth.ReasonNoRefreshToken, authErr.Reason)
}

func TestManager_RefreshErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantReason string
		wantStatus int
		wantBody   string
	}{
		{
			name: "refresh rejected with 400",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusBadRequest, `{"error":"invalid_grant","message":"invalid refresh_token"}`)
			},
			wantReason: oauth.ReasonRefreshRejected,
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid refresh_token",
		},
		{
			name: "refresh rejected with 401",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusUnauthorized, `{"error":"invalid_client"}`)
			},
			wantReason: oauth.ReasonRefreshRejected,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid_client",
		},
		{
			name: "response without access token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
			},
			wantReason: oauth.ReasonTokenRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			m := newManager(t, srv.URL, credstore.NewEnvStore("TG-env"))

			_, err := m.AccessToken(context.Background())

			var authErr *oauth.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantReason, authErr.Reason)
			assert.Equal(t, tt.wantStatus, authErr.UpstreamStatus)
			assert.Contains(t, authErr.UpstreamBody, tt.wantBody)
		})
	}
}

func TestManager_RefreshTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	tokenURL := srv.URL
	srv.Close()

	m := newManager(t, tokenURL, credstore.NewEnvStore("TG-env"))

	_, err := m.AccessToken(context.Background())

	var authErr *oauth.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, oauth.ReasonTokenRequestFailed, authErr.Reason)
	assert.Zero(t, authErr.UpstreamStatus)
	assert.Error(t, errors.Unwrap(authErr))
}

func TestManager_RenewWithFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		store       credstore.Store
		handler     http.HandlerFunc
		wantToken   string
		wantErr     bool
		wantReason  string
		wantRefresh int32
	}{
		{
			name:  "refresh 500 serves static token",
			store: credstore.NewStaticStore("APP_USR-static", "TG-static"),
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusInternalServerError, `{"message":"internal"}`)
			},
			wantToken:   "APP_USR-static",
			wantRefresh: 1,
		},
		{
			name:  "refresh success wins over static token",
			store: credstore.NewStaticStore("APP_USR-static", "TG-static"),
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeToken(w, "APP_USR-fresh", "TG-next")
			},
			wantToken:   "APP_USR-fresh",
			wantRefresh: 1,
		},
		{
			name:  "no refresh token serves static token without calling upstream",
			store: credstore.NewStaticStore("APP_USR-static", ""),
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeToken(w, "APP_USR-unexpected", "")
			},
			wantToken:   "APP_USR-static",
			wantRefresh: 0,
		},
		{
			name:  "no static token surfaces the renewal error",
			store: credstore.NewStaticStore("", "TG-static"),
			handler: func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusInternalServerError, `{"message":"internal"}`)
			},
			wantErr:     true,
			wantReason:  oauth.ReasonRefreshRejected,
			wantRefresh: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			m := newManager(t, srv.URL, tt.store, oauth.WithStrategy(oauth.StrategyRenewWithFallback))

			token, err := m.AccessToken(context.Background())
			assert.Equal(t, tt.wantRefresh, calls.Load())

			if tt.wantErr {
				var authErr *oauth.AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantReason, authErr.Reason)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestManager_ExpiryCache(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	now := time.Now()

	var mu sync.Mutex
	currentTime := now

	m := newManager(t, ts.srv.URL, credstore.NewEnvStore("TG-env"),
		oauth.WithExpiryCache(true),
		oauth.WithNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	first, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	second, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), ts.refreshes.Load())

	// Forced renewal bypasses the cache.
	forced, err := m.RenewAccessToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, forced)
	assert.Equal(t, int32(2), ts.refreshes.Load())

	// Advance past expiry (21600s - 60s buffer).
	mu.Lock()
	currentTime = now.Add(6 * time.Hour)
	mu.Unlock()

	_, err = m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), ts.refreshes.Load())
}

func TestManager_NoCacheByDefault(t *testing.T) {
	t.Parallel()

	ts := newTokenServer(t)
	m := newManager(t, ts.srv.URL, credstore.NewEnvStore("TG-env"))

	for range 2 {
		_, err := m.AccessToken(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), ts.refreshes.Load())
}

func TestManager_ConcurrentRenewalsAreSerialized(t *testing.T) {
	t.Parallel()

	var inFlight, maxInFlight, calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			prev := maxInFlight.Load()
			if n <= prev || maxInFlight.CompareAndSwap(prev, n) {
				break
			}
		}
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		writeToken(w, "APP_USR-concurrent", "TG-concurrent")
	}))
	defer srv.Close()

	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	require.NoError(t, store.Save(context.Background(), domain.Credentials{RefreshToken: "TG-initial"}))
	m := newManager(t, srv.URL, store, oauth.WithStrategy(oauth.StrategyRenewOnLoad))

	const goroutines = 8

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			token, err := m.AccessToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "APP_USR-concurrent", token)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(goroutines), calls.Load())
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestManager_Ready(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      credstore.Store
		strategy   oauth.Strategy
		wantErr    error
		wantReason string
	}{
		{name: "env with refresh token", store: credstore.NewEnvStore("TG-env"), strategy: oauth.StrategyAlwaysRenew},
		{
			name:     "static access token with fallback",
			store:    credstore.NewStaticStore("APP_USR-static", ""),
			strategy: oauth.StrategyRenewWithFallback,
		},
		{
			name:       "static access token without refresh token cannot renew",
			store:      credstore.NewStaticStore("APP_USR-static", ""),
			strategy:   oauth.StrategyRenewOnLoad,
			wantReason: oauth.ReasonNoRefreshToken,
		},
		{
			name:       "always-renew with access token only",
			store:      credstore.NewStaticStore("APP_USR-static", ""),
			strategy:   oauth.StrategyAlwaysRenew,
			wantReason: oauth.ReasonNoRefreshToken,
		},
		{
			name:     "env without refresh token",
			store:    credstore.NewEnvStore(""),
			strategy: oauth.StrategyAlwaysRenew,
			wantErr:  credstore.ErrNoCredentials,
		},
		{
			name:     "empty file store",
			store:    credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json")),
			strategy: oauth.StrategyRenewOnLoad,
			wantErr:  credstore.ErrNoCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := oauth.NewManager("client", "secret", tt.store, oauth.WithStrategy(tt.strategy))
			err := m.Ready(context.Background())
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantReason != "":
				var authErr *oauth.AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, tt.wantReason, authErr.Reason)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestManager_ReadyAfterGrantWithoutRefreshToken(t *testing.T) {
	t.Parallel()

	store := credstore.NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	require.NoError(t, store.Save(context.Background(), domain.Credentials{AccessToken: "APP_USR-only"}))

	m := oauth.NewManager("client", "secret", store, oauth.WithStrategy(oauth.StrategyRenewOnLoad))
	err := m.Ready(context.Background())

	var authErr *oauth.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, oauth.ReasonNoRefreshToken, authErr.Reason)
}

func TestStrategy_RequiresRefreshToken(t *testing.T) {
	t.Parallel()

	assert.True(t, oauth.StrategyAlwaysRenew.RequiresRefreshToken())
	assert.True(t, oauth.StrategyRenewOnLoad.RequiresRefreshToken())
	assert.False(t, oauth.StrategyRenewWithFallback.RequiresRefreshToken())
}

func TestAuthError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *oauth.AuthError
		want string
	}{
		{
			name: "with upstream status",
			err:  &oauth.AuthError{Reason: oauth.ReasonRefreshRejected, UpstreamStatus: 400, UpstreamBody: "bad"},
			want: "oauth refresh_rejected (status 400): bad",
		},
		{
			name: "with wrapped error",
			err:  &oauth.AuthError{Reason: oauth.ReasonTokenRequestFailed, Err: errors.New("dial tcp")},
			want: "oauth token_request_failed: dial tcp",
		},
		{
			name: "reason only",
			err:  &oauth.AuthError{Reason: oauth.ReasonNoRefreshToken},
			want: "oauth no_refresh_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
