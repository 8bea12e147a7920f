package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// SearchRequest defines the parameters of a seller item search.
type SearchRequest struct {
	UserID int64
	Query  string
	Limit  int
	Offset int
}

// SearchResult holds the item ids returned by a seller item search.
type SearchResult struct {
	IDs   []string
	Total int
}

// API defines the typed operations the HTTP layer needs from the platform.
type API interface {
	Me(ctx context.Context) (*domain.Profile, error)
	SearchItemIDs(ctx context.Context, req SearchRequest) (*SearchResult, error)
	ProbeItemWrite(ctx context.Context, itemID string) (*domain.PermissionCheck, error)
}

// Client implements API on top of a Caller.
type Client struct {
	gw Caller
}

// NewClient creates a new Client.
func NewClient(gw Caller) *Client {
	return &Client{gw: gw}
}

// ItemPath returns the resource path of a single item.
func ItemPath(id string) string {
	return "/items/" + url.PathEscape(id)
}

// Me returns the profile of the authenticated account.
func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	res := c.gw.Call(ctx, http.MethodGet, "/users/me", nil, nil)
	if !res.OK() {
		return nil, &CallError{Op: "fetching profile", Result: res}
	}

	var p domain.Profile
	if err := json.Unmarshal(res.Payload, &p); err != nil {
		return nil, fmt.Errorf("parsing profile response: %w", err)
	}
	return &p, nil
}

// SearchItemIDs lists the ids of a seller's items matching a query.
func (c *Client) SearchItemIDs(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	q := url.Values{}
	if req.Query != "" {
		q.Set("q", req.Query)
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", strconv.Itoa(req.Offset))
	}

	path := fmt.Sprintf("/users/%d/items/search", req.UserID)
	res := c.gw.Call(ctx, http.MethodGet, path, q, nil)
	if !res.OK() {
		return nil, &CallError{Op: "searching items", Result: res}
	}

	results := gjson.GetBytes(res.Payload, "results")
	if !results.IsArray() {
		return nil, fmt.Errorf("parsing search response: results is not an array")
	}

	out := &SearchResult{
		IDs:   make([]string, 0, len(results.Array())),
		Total: int(gjson.GetBytes(res.Payload, "paging.total").Int()),
	}
	for _, r := range results.Array() {
		out.IDs = append(out.IDs, r.String())
	}
	return out, nil
}

// ProbeItemWrite checks whether the account may modify an item by sending a
// dry-run update that echoes the current price. A 403 answer is reported as
// not allowed rather than as an error.
func (c *Client) ProbeItemWrite(ctx context.Context, itemID string) (*domain.PermissionCheck, error) {
	current := c.gw.Call(ctx, http.MethodGet, ItemPath(itemID), nil, nil)
	if !current.OK() {
		return nil, &CallError{Op: "fetching item", Result: current}
	}

	body := map[string]any{}
	if price := gjson.GetBytes(current.Payload, "price"); price.Type == gjson.Number {
		body["price"] = json.Number(price.Raw)
	}

	res := c.gw.Call(ctx, http.MethodPut, ItemPath(itemID), url.Values{"dry_run": {"true"}}, body)
	switch res.Status {
	case StatusOK:
		return &domain.PermissionCheck{ItemID: itemID, Allowed: true, Status: res.Status.String()}, nil
	case StatusForbidden:
		return &domain.PermissionCheck{ItemID: itemID, Allowed: false, Status: res.Status.String()}, nil
	default:
		return nil, &CallError{Op: "probing item write", Result: res}
	}
}
