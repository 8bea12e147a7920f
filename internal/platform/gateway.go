// Package platform provides the authenticated call surface over the
// commerce platform's REST API, abstracted behind interfaces for testability.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/marketplace-gateway/internal/metrics"
)

const defaultBaseURL = "https://api.mercadolibre.com"

var errInvalidPayload = errors.New("response body is not valid JSON")

// TokenSource supplies bearer tokens. RenewAccessToken must mint a new token
// even when AccessToken would serve a cached one.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	RenewAccessToken(ctx context.Context) (string, error)
}

// Caller issues one authenticated platform call.
type Caller interface {
	Call(ctx context.Context, method, path string, query url.Values, body any) Result
}

// Gateway implements Caller. It attaches the current access token, classifies
// the response and retries exactly once with a renewed token after a 401.
type Gateway struct {
	tokens      TokenSource
	baseURL     string
	client      *http.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(g *Gateway) {
		g.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gateway) {
		g.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. Every upstream request, retries included, goes through
// Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(g *Gateway) {
		g.rateLimiter = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

// NewHTTPClient returns an HTTP client with explicit connect and overall
// request timeouts.
func NewHTTPClient(connectTimeout, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{Transport: transport, Timeout: timeout}
}

// NewGateway creates a new platform API gateway.
func NewGateway(tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		tokens:  tokens,
		baseURL: defaultBaseURL,
		client:  NewHTTPClient(5*time.Second, 30*time.Second),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Call performs an authenticated request against path (relative to the base
// URL). A non-nil body is sent as JSON.
func (g *Gateway) Call(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) Result {
	start := time.Now()

	res := g.call(ctx, method, path, query, body)

	metrics.PlatformCallDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	metrics.PlatformCallsTotal.WithLabelValues(method, res.Status.String()).Inc()

	if !res.OK() {
		g.logger.Debug("platform call failed",
			"method", method,
			"path", path,
			"result", res.Status.String(),
			"status", res.StatusCode,
			"error", res.Cause,
		)
	}
	return res
}

func (g *Gateway) call(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) Result {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Result{
				Status: StatusTransportError,
				Cause:  fmt.Errorf("marshaling request body: %w", err),
			}
		}
		payload = data
	}

	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	token, err := g.tokens.AccessToken(ctx)
	if err != nil {
		return Result{Status: StatusAuthFailed, Cause: fmt.Errorf("getting auth token: %w", err)}
	}

	res := g.do(ctx, method, u, payload, token)
	if res.Status != StatusAuthFailed {
		return res
	}

	// One retry with a freshly minted token; a second 401 is final.
	metrics.PlatformAuthRetriesTotal.Inc()

	token, err = g.tokens.RenewAccessToken(ctx)
	if err != nil {
		return Result{Status: StatusAuthFailed, Cause: fmt.Errorf("renewing auth token: %w", err)}
	}
	return g.do(ctx, method, u, payload, token)
}

func (g *Gateway) do(
	ctx context.Context,
	method, u string,
	payload []byte,
	token string,
) Result {
	if g.rateLimiter != nil {
		if err := g.rateLimiter.Wait(ctx); err != nil {
			return Result{Status: StatusTransportError, Cause: fmt.Errorf("rate limit: %w", err)}
		}
	}

	var bodyReader io.Reader = http.NoBody
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return Result{Status: StatusTransportError, Cause: fmt.Errorf("creating HTTP request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Result{Status: StatusTransportError, Cause: fmt.Errorf("executing request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{
			Status:     StatusTransportError,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("reading response body: %w", err),
		}
	}

	return classify(resp.StatusCode, respBody)
}

func classify(code int, body []byte) Result {
	switch {
	case code >= 200 && code < 300:
		if len(bytes.TrimSpace(body)) == 0 {
			return Result{Status: StatusOK, StatusCode: code}
		}
		if !json.Valid(body) {
			return Result{
				Status:     StatusUpstreamError,
				StatusCode: code,
				Body:       body,
				Cause:      errInvalidPayload,
			}
		}
		return Result{Status: StatusOK, StatusCode: code, Payload: json.RawMessage(body)}
	case code == http.StatusUnauthorized:
		return Result{Status: StatusAuthFailed, StatusCode: code, Body: body}
	case code == http.StatusForbidden:
		return Result{Status: StatusForbidden, StatusCode: code, Body: body}
	case code == http.StatusNotFound:
		return Result{Status: StatusNotFound, StatusCode: code, Body: body}
	default:
		return Result{Status: StatusUpstreamError, StatusCode: code, Body: body}
	}
}
