package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/marketplace-gateway/internal/oauth"
	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// Authorizer starts and completes the OAuth authorization-code flow.
type Authorizer interface {
	AuthorizationURL() string
	CompleteAuthorization(ctx context.Context, code string) (domain.Credentials, error)
}

// AuthHandler serves the authorization redirect and its callback.
type AuthHandler struct {
	auth   Authorizer
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(a Authorizer, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthHandler{auth: a, logger: logger}
}

// Login redirects the browser to the platform's consent page.
//
// @Summary Start authorization
// @Description Redirects to the platform authorization endpoint.
// @Tags auth
// @Success 302
// @Router /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.auth.AuthorizationURL())
}

// CallbackInput is the query the platform appends to the redirect URI.
type CallbackInput struct {
	Code             string `query:"code"              doc:"One-time authorization code"`
	Error            string `query:"error"             doc:"Error code when consent was refused"`
	ErrorDescription string `query:"error_description" doc:"Human readable consent error"`
}

// CallbackOutput reports a completed authorization. Tokens are never echoed.
type CallbackOutput struct {
	Body struct {
		Status    string     `json:"status"               example:"authorized"`
		ExpiresAt *time.Time `json:"expires_at,omitempty" doc:"Expiry of the minted access token"`
	}
}

// Callback exchanges the authorization code for tokens and persists them.
func (h *AuthHandler) Callback(ctx context.Context, input *CallbackInput) (*CallbackOutput, error) {
	if input.Error != "" {
		return nil, huma.Error400BadRequest(fmt.Sprintf("authorization denied: %s %s",
			input.Error, input.ErrorDescription))
	}
	if input.Code == "" {
		return nil, huma.Error400BadRequest("missing authorization code")
	}

	creds, err := h.auth.CompleteAuthorization(ctx, input.Code)
	if err != nil {
		h.logger.Error("authorization exchange failed", "error", err)

		var authErr *oauth.AuthError
		if errors.As(err, &authErr) {
			if authErr.Reason == oauth.ReasonMissingCode {
				return nil, huma.Error400BadRequest("missing authorization code")
			}
			return nil, huma.Error502BadGateway("authorization exchange failed: " + authErr.Reason)
		}
		return nil, huma.Error500InternalServerError("authorization exchange failed")
	}

	out := &CallbackOutput{}
	out.Body.Status = "authorized"
	out.Body.ExpiresAt = creds.ExpiresAt
	return out, nil
}

// RegisterAuthRoutes registers the OAuth callback with the Huma API.
func RegisterAuthRoutes(api huma.API, h *AuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "auth-callback",
		Method:      http.MethodGet,
		Path:        "/auth/callback",
		Summary:     "Complete authorization",
		Description: "Exchanges the authorization code from the platform redirect for tokens and stores them.",
		Tags:        []string{"auth"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.Callback)
}
