// Package items turns item ids into display-ready summaries, isolating
// per-item lookup failures.
package items

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/marketplace-gateway/internal/metrics"
	"github.com/donaldgifford/marketplace-gateway/internal/platform"
	domain "github.com/donaldgifford/marketplace-gateway/pkg/types"
)

// DefaultConcurrency is the number of item lookups in flight when no
// concurrency is configured.
const DefaultConcurrency = 4

// Aggregator resolves item ids through the platform gateway. It imposes no
// cap on the number of ids; callers bound the input.
type Aggregator struct {
	caller      platform.Caller
	concurrency int
	logger      *slog.Logger
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithConcurrency sets the maximum number of concurrent item lookups.
// Values below 1 are treated as 1 (sequential).
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n < 1 {
			n = 1
		}
		a.concurrency = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// NewAggregator creates a new Aggregator.
func NewAggregator(caller platform.Caller, opts ...Option) *Aggregator {
	a := &Aggregator{
		caller:      caller,
		concurrency: DefaultConcurrency,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Resolve returns one summary per id, in input order. A failed lookup
// yields an unresolved placeholder and never aborts the batch.
func (a *Aggregator) Resolve(ctx context.Context, ids []string) []domain.ItemSummary {
	out := make([]domain.ItemSummary, len(ids))
	if len(ids) == 0 {
		return out
	}
	metrics.ItemBatchSize.Observe(float64(len(ids)))

	var g errgroup.Group
	g.SetLimit(a.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			out[i] = a.resolveOne(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (a *Aggregator) resolveOne(ctx context.Context, id string) domain.ItemSummary {
	res := a.caller.Call(ctx, http.MethodGet, platform.ItemPath(id), nil, nil)
	if !res.OK() || res.Payload == nil {
		metrics.ItemResolutionsTotal.WithLabelValues("unresolved").Inc()
		a.logger.Warn("item lookup failed",
			"item_id", id,
			"result", res.Status.String(),
			"status", res.StatusCode,
		)
		return domain.UnresolvedItem(id)
	}

	metrics.ItemResolutionsTotal.WithLabelValues("resolved").Inc()
	return summarize(id, res.Payload)
}

func summarize(id string, payload []byte) domain.ItemSummary {
	fields := gjson.GetManyBytes(payload,
		"title", "price", "currency_id", "thumbnail", "secure_thumbnail", "permalink", "status")
	title, price, currency, thumb, secureThumb, permalink, status :=
		fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]

	s := domain.ItemSummary{
		ID:           id,
		Title:        title.String(),
		ListingState: domain.ListingState(status.String()),
		Resolved:     true,
	}
	if price.Type == gjson.Number {
		n := json.Number(price.Raw)
		s.Price = &n
	}
	s.Currency = optString(currency)
	s.ThumbnailURL = optString(thumb)
	if s.ThumbnailURL == nil {
		s.ThumbnailURL = optString(secureThumb)
	}
	s.Permalink = optString(permalink)
	return s
}

func optString(r gjson.Result) *string {
	if r.Type != gjson.String || r.Str == "" {
		return nil
	}
	v := r.Str
	return &v
}
