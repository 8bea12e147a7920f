package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/marketplace-gateway/internal/platform"
)

// QuotaReporter exposes the state of the platform call limiter.
type QuotaReporter interface {
	Snapshot() platform.Quota
}

// QuotaHandler serves the platform call budget.
type QuotaHandler struct {
	limiter QuotaReporter
}

// NewQuotaHandler creates a QuotaHandler. A nil limiter reports an
// unlimited budget.
func NewQuotaHandler(limiter QuotaReporter) *QuotaHandler {
	return &QuotaHandler{limiter: limiter}
}

// RateBody describes the per-second bucket.
type RateBody struct {
	PerSecond float64 `json:"per_second" example:"10"  doc:"Sustained calls per second, 0 when unlimited"`
	Burst     int     `json:"burst"      example:"10"  doc:"Bucket size"`
	Available float64 `json:"available"  example:"7.5" doc:"Calls the bucket admits right now without waiting"`
}

// DailyBody describes the 24-hour call window.
type DailyBody struct {
	Limit     int64      `json:"limit"              example:"5000" doc:"Calls allowed per window, 0 when unlimited"`
	Used      int64      `json:"used"               example:"142"`
	Remaining int64      `json:"remaining"          example:"4858" doc:"-1 when unlimited"`
	Rejected  int64      `json:"rejected"           example:"0"    doc:"Calls refused in this window because the limit was reached"`
	ResetAt   *time.Time `json:"reset_at,omitempty" doc:"When the window restarts"`
	Exhausted bool       `json:"exhausted"`
}

// QuotaOutput is the response of GET /api/v1/quota.
type QuotaOutput struct {
	Body struct {
		Rate  RateBody  `json:"rate"`
		Daily DailyBody `json:"daily"`
	}
}

// GetQuota reports how much of the platform call budget is left.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.limiter == nil {
		resp.Body.Daily.Remaining = -1
		return resp, nil
	}

	q := h.limiter.Snapshot()
	resp.Body.Rate = RateBody{
		PerSecond: q.PerSecond,
		Burst:     q.Burst,
		Available: q.Available,
	}
	resp.Body.Daily = DailyBody{
		Limit:     q.DailyLimit,
		Used:      q.DailyUsed,
		Remaining: q.Remaining,
		Rejected:  q.Rejected,
		Exhausted: !q.Unlimited() && q.Remaining == 0,
	}
	if !q.Unlimited() {
		resp.Body.Daily.ResetAt = &q.ResetAt
	}
	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get the platform call budget",
		Description: "Reports the per-second bucket and the daily window that pace every upstream call.",
		Tags:        []string{"platform"},
	}, h.GetQuota)
}
