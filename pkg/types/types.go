// Package domain defines the core business types for the marketplace gateway.
package domain

import (
	"encoding/json"
	"time"
)

// Credentials is the OAuth2 token pair held for the single configured seller account.
type Credentials struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// HasRefreshToken reports whether renewal is possible without re-consent.
func (c *Credentials) HasRefreshToken() bool {
	return c != nil && c.RefreshToken != ""
}

// ListingState is the platform's publication status of an item.
type ListingState string

// Listing state constants.
const (
	ListingActive      ListingState = "active"
	ListingPaused      ListingState = "paused"
	ListingClosed      ListingState = "closed"
	ListingUnderReview ListingState = "under_review"
	ListingInactive    ListingState = "inactive"
	ListingUnresolved  ListingState = "unresolved"
)

// UnavailableTitle is the placeholder title of an item whose detail fetch failed.
const UnavailableTitle = "detail unavailable"

// ItemSummary is a display-ready view of a single item. When Resolved is false
// only ID is meaningful; the remaining optional fields are nil.
type ItemSummary struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Price        *json.Number `json:"price,omitempty"`
	Currency     *string      `json:"currency,omitempty"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty"`
	Permalink    *string      `json:"permalink,omitempty"`
	ListingState ListingState `json:"listing_state"`
	Resolved     bool         `json:"resolved"`
}

// UnresolvedItem returns the placeholder summary for an item whose detail
// could not be fetched.
func UnresolvedItem(id string) ItemSummary {
	return ItemSummary{
		ID:           id,
		Title:        UnavailableTitle,
		ListingState: ListingUnresolved,
	}
}

// Profile is the authenticated seller's account summary.
type Profile struct {
	ID        int64  `json:"id"`
	Nickname  string `json:"nickname"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	SiteID    string `json:"site_id,omitempty"`
	Permalink string `json:"permalink,omitempty"`
}

// PermissionCheck is the outcome of a dry-run write probe against an item.
type PermissionCheck struct {
	ItemID  string `json:"item_id"`
	Allowed bool   `json:"allowed"`
	Status  string `json:"status"`
}
