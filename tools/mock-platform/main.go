// Package main implements a mock commerce platform for local development.
// It serves the OAuth token endpoint and the seller API routes the gateway
// uses from a JSON fixture, so the gateway can run without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const tokenLifetime = 6 * time.Hour

type fixture struct {
	Profile json.RawMessage   `json:"profile"`
	Items   []json.RawMessage `json:"items"`
}

type fixtureItem struct {
	raw      json.RawMessage
	id       string
	title    string
	readOnly bool
}

// platform is the mutable state of the mock: the fixture and the tokens it
// has handed out.
type platform struct {
	logger   *slog.Logger
	profile  json.RawMessage
	sellerID int64
	items    []fixtureItem
	byID     map[string]fixtureItem

	mu                  sync.Mutex
	accessTokens        map[string]time.Time
	issuedRefreshTokens map[string]bool
	nowFunc             func() time.Time
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-platform/testdata/fixture.json", "path to fixture file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	p := newPlatform(logger, fx)
	logger.Info("loaded fixture", "seller_id", p.sellerID, "items", len(p.items))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock platform", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, p.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func newPlatform(logger *slog.Logger, fx *fixture) *platform {
	p := &platform{
		logger:              logger,
		profile:             fx.Profile,
		sellerID:            gjson.GetBytes(fx.Profile, "id").Int(),
		byID:                make(map[string]fixtureItem, len(fx.Items)),
		accessTokens:        make(map[string]time.Time),
		issuedRefreshTokens: make(map[string]bool),
		nowFunc:             time.Now,
	}
	for _, raw := range fx.Items {
		fields := gjson.GetManyBytes(raw, "id", "title", "read_only")
		it := fixtureItem{
			raw:      raw,
			id:       fields[0].String(),
			title:    strings.ToLower(fields[1].String()),
			readOnly: fields[2].Bool(),
		}
		p.items = append(p.items, it)
		p.byID[it.id] = it
	}
	return p
}

func (p *platform) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", p.tokenHandler)
	mux.HandleFunc("GET /users/me", p.authenticated(p.meHandler))
	mux.HandleFunc("GET /users/{id}/items/search", p.authenticated(p.searchHandler))
	mux.HandleFunc("GET /items/{id}", p.authenticated(p.itemHandler))
	mux.HandleFunc("PUT /items/{id}", p.authenticated(p.updateItemHandler))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error":   code,
		"message": message,
		"status":  status,
	})
}

func (p *platform) tokenHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return
	}
	if r.PostForm.Get("client_id") == "" || r.PostForm.Get("client_secret") == "" {
		p.logger.Warn("token request missing client credentials")
		writeError(w, http.StatusUnauthorized, "invalid_client", "invalid client_id or client_secret")
		return
	}

	switch grant := r.PostForm.Get("grant_type"); grant {
	case "authorization_code":
		code := r.PostForm.Get("code")
		if code == "" || code == "invalid" {
			writeError(w, http.StatusBadRequest, "invalid_grant", "error validating grant")
			return
		}
	case "refresh_token":
		rt := r.PostForm.Get("refresh_token")
		if !p.consumeRefreshToken(rt) {
			writeError(w, http.StatusBadRequest, "invalid_grant", "error validating grant")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "unsupported_grant_type", "unsupported grant_type "+grant)
		return
	}

	access, refresh := p.issueTokens()
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  access,
		"token_type":    "Bearer",
		"expires_in":    int(tokenLifetime.Seconds()),
		"scope":         "offline_access read write",
		"user_id":       p.sellerID,
		"refresh_token": refresh,
	})
	p.logger.Info("issued mock token", "grant_type", r.PostForm.Get("grant_type"))
}

// consumeRefreshToken accepts a token this mock issued exactly once. Tokens
// it never issued are treated as long-lived external grants, such as one
// set in the gateway's config, and are accepted on every request. "revoked"
// is always rejected.
func (p *platform) consumeRefreshToken(rt string) bool {
	if rt == "" || rt == "revoked" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	used, issued := p.issuedRefreshTokens[rt]
	if !issued {
		return true
	}
	if used {
		return false
	}
	p.issuedRefreshTokens[rt] = true
	return true
}

func (p *platform) issueTokens() (access, refresh string) {
	access = "APP_USR-" + uuid.NewString()
	refresh = "TG-" + uuid.NewString()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.accessTokens[access] = p.nowFunc().Add(tokenLifetime)
	p.issuedRefreshTokens[refresh] = false
	return access, refresh
}

func (p *platform) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || !p.validAccessToken(token) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid access token")
			return
		}
		next(w, r)
	}
}

func (p *platform) validAccessToken(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	exp, ok := p.accessTokens[token]
	return ok && p.nowFunc().Before(exp)
}

func (p *platform) meHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write(p.profile)
}

func (p *platform) searchHandler(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != strconv.FormatInt(p.sellerID, 10) {
		writeError(w, http.StatusForbidden, "forbidden", "caller is not the item owner")
		return
	}

	q := strings.ToLower(r.URL.Query().Get("q"))
	limit := 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	matched := []string{}
	for _, it := range p.items {
		if q == "" || strings.Contains(it.title, q) {
			matched = append(matched, it.id)
		}
	}
	total := len(matched)

	if offset >= len(matched) {
		matched = []string{}
	} else {
		matched = matched[offset:min(offset+limit, len(matched))]
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"seller_id": strconv.FormatInt(p.sellerID, 10),
		"query":     r.URL.Query().Get("q"),
		"results":   matched,
		"paging": map[string]int{
			"total":  total,
			"offset": offset,
			"limit":  limit,
		},
	})
	p.logger.Info("search", "query", q, "matched", total, "returned", len(matched))
}

func (p *platform) itemHandler(w http.ResponseWriter, r *http.Request) {
	it, ok := p.byID[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write(it.raw)
}

func (p *platform) updateItemHandler(w http.ResponseWriter, r *http.Request) {
	it, ok := p.byID[r.PathValue("id")]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "item not found")
		return
	}
	if it.readOnly {
		writeError(w, http.StatusForbidden, "forbidden", "caller is not allowed to modify this item")
		return
	}
	if r.URL.Query().Get("dry_run") != "true" {
		writeError(w, http.StatusBadRequest, "bad_request", "mock platform only accepts dry_run updates")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !gjson.ValidBytes(body) {
		writeError(w, http.StatusBadRequest, "bad_request", "body must be a JSON object")
		return
	}

	preview, err := applyUpdate(it.raw, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write(preview)
}

// applyUpdate returns item with the top-level fields of update applied. The
// fixture itself is never modified.
func applyUpdate(item, update []byte) ([]byte, error) {
	out := append([]byte(nil), item...)
	var setErr error
	gjson.ParseBytes(update).ForEach(func(key, value gjson.Result) bool {
		out, setErr = sjson.SetRawBytes(out, key.String(), []byte(value.Raw))
		return setErr == nil
	})
	if setErr != nil {
		return nil, fmt.Errorf("applying update: %w", setErr)
	}
	return out, nil
}
