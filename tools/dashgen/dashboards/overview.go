// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/marketplace-gateway/tools/dashgen/panels"
)

// OverviewUID is the stable Grafana uid of the overview dashboard.
const OverviewUID = "mgw-overview"

// BuildOverview constructs the gateway overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Marketplace Gateway").
		Uid(OverviewUID).
		Tags([]string{"mgw", "marketplace-gateway"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Platform API").
		WithPanel(panels.CallsByResult()).
		WithPanel(panels.CallLatency()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.AuthRetries()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Tokens").
		WithPanel(panels.RenewalsByOutcome()).
		WithPanel(panels.FallbacksStat()).
		WithPanel(panels.AuthorizationExchanges()))

	b.WithRow(dashboard.NewRowBuilder("Items").
		WithPanel(panels.ResolutionOutcomes()).
		WithPanel(panels.UnresolvedRatio()).
		WithPanel(panels.BatchSize()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
