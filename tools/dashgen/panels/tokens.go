package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RenewalsByOutcome returns a timeseries panel showing token renewals split
// by strategy and outcome.
func RenewalsByOutcome() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Token Renewals").
		Description("Refresh-token grants per second by strategy and outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`mgw:token_renewals:rate5m`, "{{strategy}} {{outcome}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FallbacksStat returns a stat panel counting requests served with the
// static access token after renewal failed.
func FallbacksStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Static Token Fallbacks (24h)").
		Description("Renewals that failed and fell back to the configured access token").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`increase(mgw_token_fallbacks_total{job=%q}[24h])`, Job),
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// AuthorizationExchanges returns a stat panel counting authorization code
// exchanges by outcome.
func AuthorizationExchanges() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Authorization Exchanges (7d)").
		Description("Consent callbacks exchanged for tokens, by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`sum by (outcome) (increase(mgw_authorization_exchanges_total{job=%q}[7d]))`, Job),
			"{{outcome}}", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeNone)
}
