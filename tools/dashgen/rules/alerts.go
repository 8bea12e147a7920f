package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// marketplace-gateway operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata:   metadata("mgw-alerts"),
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mgw-alerts",
					Rules: []Rule{
						alert("MgwDown", `absent(up{job="marketplace-gateway"})`, "2m", "critical",
							"Marketplace gateway is down",
							"The marketplace-gateway job has been absent for more than 2 minutes."),
						alert("MgwReadinessDown", `mgw_readyz_up == 0`, "2m", "critical",
							"Marketplace gateway has no usable credentials",
							"The readiness probe has reported missing credentials for more than 2 minutes. "+
								"Complete the authorization flow at /auth/login."),
						alert("MgwHighErrorRate", `mgw:http_errors:rate5m / mgw:http_requests:rate5m > 0.05`, "5m", "warning",
							"High HTTP error rate on the marketplace gateway",
							"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
						alert("MgwRenewalsFailing",
							`sum(mgw:token_renewals:rate5m{outcome!="ok"}) > 0 and sum(mgw:token_renewals:rate5m{outcome="ok"}) == 0`,
							"10m", "critical",
							"Token renewal is failing",
							"No refresh-token grant has succeeded for 10 minutes. The refresh token may be revoked."),
						alert("MgwStaticTokenFallback", `increase(mgw_token_fallbacks_total[15m]) > 0`, "0m", "warning",
							"Serving the static access token",
							"Renewal failed and the gateway fell back to the configured access token."),
						alert("MgwPlatformAuthFailures", `mgw:platform_calls:rate5m{result="auth_failed"} > 0`, "5m", "warning",
							"Platform calls failing authentication",
							"Platform calls keep failing with 401 after one renewed retry."),
						alert("MgwDailyLimitReached", `increase(mgw_platform_daily_limit_hits_total[5m]) > 0`, "0m", "critical",
							"Platform daily quota has been reached",
							"Outbound calls are refused until the rolling 24h window resets."),
						alert("MgwUnresolvedItems",
							`sum(mgw:item_resolutions:rate5m{outcome="unresolved"}) / sum(mgw:item_resolutions:rate5m) > 0.25`,
							"10m", "warning",
							"Many items returned as placeholders",
							"More than 25% of item detail lookups failed over the last 10 minutes."),
					},
				},
			},
		},
	}
}

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert: name,
		Expr:  expr,
		For:   forDur,
		Labels: map[string]string{
			"severity": severity,
		},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
