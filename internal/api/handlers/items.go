package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// DefaultMaxResults caps how many items a search resolves.
const DefaultMaxResults = 10

// ItemResolver turns item ids into summaries, keeping input order.
type ItemResolver interface {
	Resolve(ctx context.Context, ids []string) []domain.ItemSummary
}

// ItemsHandler serves seller item search and permission probes.
type ItemsHandler struct {
	api        platform.API
	resolver   ItemResolver
	maxResults int
}

// NewItemsHandler creates a new ItemsHandler. A maxResults below 1 falls
// back to DefaultMaxResults.
func NewItemsHandler(api platform.API, resolver ItemResolver, maxResults int) *ItemsHandler {
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}
	return &ItemsHandler{api: api, resolver: resolver, maxResults: maxResults}
}

// --- Input/Output types ---

// SearchItemsInput is the query for searching the seller's items.
type SearchItemsInput struct {
	Query string `query:"q"     doc:"Free text matched against the seller's items" example:"guitar"`
	Limit int    `query:"limit" doc:"Maximum items to resolve (default and cap: max_results)" minimum:"0"`
}

// SearchItemsOutput is the response for an item search.
type SearchItemsOutput struct {
	Body struct {
		Query      string               `json:"query"`
		Items      []domain.ItemSummary `json:"items"`
		Total      int                  `json:"total"      doc:"Total matches reported by the platform"`
		Resolved   int                  `json:"resolved"   doc:"Items whose detail was fetched"`
		Unresolved int                  `json:"unresolved" doc:"Items shown as placeholders"`
	}
}

// ItemPermissionsInput identifies the item to probe.
type ItemPermissionsInput struct {
	ID string `path:"id" doc:"Platform item id" example:"MLA1234567890"`
}

// ItemPermissionsOutput is the result of a dry-run write probe.
type ItemPermissionsOutput struct {
	Body domain.PermissionCheck
}

// --- Handlers ---

// SearchItems looks up the seller's items matching q and resolves each id
// into a summary. Items whose detail lookup fails are returned as
// placeholders instead of failing the request.
func (h *ItemsHandler) SearchItems(ctx context.Context, input *SearchItemsInput) (*SearchItemsOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, huma.Error400BadRequest("query parameter q is required")
	}

	limit := input.Limit
	if limit <= 0 || limit > h.maxResults {
		limit = h.maxResults
	}

	me, err := h.api.Me(ctx)
	if err != nil {
		return nil, platformError(err)
	}

	found, err := h.api.SearchItemIDs(ctx, platform.SearchRequest{
		UserID: me.ID,
		Query:  query,
		Limit:  limit,
	})
	if err != nil {
		return nil, platformError(err)
	}

	ids := found.IDs
	if len(ids) > limit {
		ids = ids[:limit]
	}

	summaries := h.resolver.Resolve(ctx, ids)

	out := &SearchItemsOutput{}
	out.Body.Query = query
	out.Body.Items = summaries
	out.Body.Total = found.Total
	for i := range summaries {
		if summaries[i].Resolved {
			out.Body.Resolved++
		} else {
			out.Body.Unresolved++
		}
	}
	return out, nil
}

// ItemPermissions reports whether the account may modify an item.
func (h *ItemsHandler) ItemPermissions(
	ctx context.Context,
	input *ItemPermissionsInput,
) (*ItemPermissionsOutput, error) {
	check, err := h.api.ProbeItemWrite(ctx, input.ID)
	if err != nil {
		return nil, platformError(err)
	}
	return &ItemPermissionsOutput{Body: *check}, nil
}

// RegisterItemRoutes registers item endpoints with the Huma API.
func RegisterItemRoutes(api huma.API, h *ItemsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-items",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "Search seller items",
		Description: "Searches the seller's items and resolves each match into a summary. " +
			"Items whose detail cannot be fetched are returned unresolved.",
		Tags: []string{"items"},
		Errors: []int{
			http.StatusBadRequest, http.StatusUnauthorized,
			http.StatusBadGateway, http.StatusGatewayTimeout,
		},
	}, h.SearchItems)

	huma.Register(api, huma.Operation{
		OperationID: "get-item-permissions",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}/permissions",
		Summary:     "Probe item write permission",
		Description: "Sends a dry-run update echoing the current price and reports whether it was allowed.",
		Tags:        []string{"items"},
		Errors: []int{
			http.StatusUnauthorized, http.StatusNotFound,
			http.StatusBadGateway, http.StatusGatewayTimeout,
		},
	}, h.ItemPermissions)
}
