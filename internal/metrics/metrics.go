// Package metrics defines Prometheus metrics for marketplace-gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mgw"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last liveness probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last readiness probe succeeded, 0 otherwise.",
	})
)

// Token lifecycle metrics.
var (
	TokenRenewalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_renewals_total",
		Help:      "Total refresh-token renewals by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	TokenFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_fallbacks_total",
		Help:      "Total times the static access token was served after a failed renewal.",
	})

	AuthorizationExchangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_exchanges_total",
		Help:      "Total authorization-code exchanges by outcome.",
	}, []string{"outcome"})
)

// Platform API metrics.
var (
	PlatformCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "platform_calls_total",
		Help:      "Total platform API calls by method and classified result.",
	}, []string{"method", "result"})

	PlatformCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "platform_call_duration_seconds",
		Help:      "Duration of platform API calls in seconds, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	PlatformAuthRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "platform_auth_retries_total",
		Help:      "Total platform calls retried after a 401 with a renewed token.",
	})

	PlatformDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "platform_daily_usage",
		Help:      "Current platform API call count within the rolling 24-hour window.",
	})

	PlatformDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "platform_daily_limit_hits_total",
		Help:      "Total number of times the daily platform API limit was reached.",
	})
)

// Item resolution metrics.
var (
	ItemResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_resolutions_total",
		Help:      "Total item detail lookups by outcome (resolved, unresolved).",
	}, []string{"outcome"})

	ItemBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "item_batch_size",
		Help:      "Number of item ids per resolution batch.",
		Buckets:   prometheus.LinearBuckets(0, 5, 11), // 0, 5, 10, ..., 50
	})
)
