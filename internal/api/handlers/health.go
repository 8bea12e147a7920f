// Package handlers implements HTTP handlers for the marketplace gateway API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/marketplace-gateway/internal/credstore"
	"github.com/donaldgifford/marketplace-gateway/internal/oauth"
)

// ReadinessChecker reports whether the gateway can authenticate upstream calls.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// StatusResponse is the body of the liveness and readiness probes. Reason
// names why the gateway is not ready.
type StatusResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	checker ReadinessChecker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(c ReadinessChecker) *HealthHandler {
	return &HealthHandler{checker: c}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 if the stored credentials can yield a token under the
// active renewal strategy, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if err := h.checker.Ready(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, StatusResponse{
			Status: "unavailable",
			Reason: readinessReason(err),
		})
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ready"})
}

// readinessReason maps known credential failures to a stable reason. Other
// errors may carry file paths, so they are reported without detail.
func readinessReason(err error) string {
	var authErr *oauth.AuthError
	switch {
	case errors.Is(err, credstore.ErrNoCredentials):
		return "no_credentials"
	case errors.As(err, &authErr):
		return authErr.Reason
	default:
		return ""
	}
}
