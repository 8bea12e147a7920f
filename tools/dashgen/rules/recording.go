package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata:   metadata("mgw-recording-rules"),
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mgw-recording",
					Rules: []Rule{
						{
							Record: "mgw:http_requests:rate5m",
							Expr:   `sum(rate(mgw_http_requests_total[5m]))`,
						},
						{
							Record: "mgw:http_errors:rate5m",
							Expr:   `sum(rate(mgw_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "mgw:platform_calls:rate5m",
							Expr:   `sum by (result) (rate(mgw_platform_calls_total[5m]))`,
						},
						{
							Record: "mgw:token_renewals:rate5m",
							Expr:   `sum by (strategy, outcome) (rate(mgw_token_renewals_total[5m]))`,
						},
						{
							Record: "mgw:item_resolutions:rate5m",
							Expr:   `sum by (outcome) (rate(mgw_item_resolutions_total[5m]))`,
						},
					},
				},
			},
		},
	}
}
