package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// ProfileHandler exposes the authenticated seller's account.
type ProfileHandler struct {
	api platform.API
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(api platform.API) *ProfileHandler {
	return &ProfileHandler{api: api}
}

// ProfileOutput is the response for the profile endpoint.
type ProfileOutput struct {
	Body domain.Profile
}

// GetProfile returns the profile of the account the stored credentials belong to.
func (h *ProfileHandler) GetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	p, err := h.api.Me(ctx)
	if err != nil {
		return nil, platformError(err)
	}
	return &ProfileOutput{Body: *p}, nil
}

// RegisterProfileRoutes registers the profile endpoint with the Huma API.
func RegisterProfileRoutes(api huma.API, h *ProfileHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get seller profile",
		Description: "Returns the platform profile of the authenticated seller account.",
		Tags:        []string{"profile"},
		Errors: []int{
			http.StatusUnauthorized, http.StatusBadGateway, http.StatusGatewayTimeout,
		},
	}, h.GetProfile)
}
