package main

import "errors"

// generatedHeader prefixes every YAML artifact.
const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// KnownMetrics is the set of metric names exported by marketplace-gateway
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"mgw_http_request_duration_seconds": true,
	"mgw_http_requests_total":           true,

	// Health metrics.
	"mgw_healthz_up": true,
	"mgw_readyz_up":  true,

	// Token metrics.
	"mgw_token_renewals_total":          true,
	"mgw_token_fallbacks_total":         true,
	"mgw_authorization_exchanges_total": true,

	// Platform API metrics.
	"mgw_platform_calls_total":            true,
	"mgw_platform_call_duration_seconds":  true,
	"mgw_platform_auth_retries_total":     true,
	"mgw_platform_daily_usage":            true,
	"mgw_platform_daily_limit_hits_total": true,

	// Item metrics.
	"mgw_item_resolutions_total": true,
	"mgw_item_batch_size":        true,

	// Recording rules.
	"mgw:http_requests:rate5m":    true,
	"mgw:http_errors:rate5m":      true,
	"mgw:platform_calls:rate5m":   true,
	"mgw:token_renewals:rate5m":   true,
	"mgw:item_resolutions:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
