package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ResolutionOutcomes returns a timeseries panel showing item detail lookups
// split into resolved and unresolved.
func ResolutionOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Item Resolutions").
		Description("Item detail lookups per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(`mgw:item_resolutions:rate5m`, "{{outcome}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UnresolvedRatio returns a timeseries panel showing the share of items
// rendered as placeholders.
func UnresolvedRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Unresolved %").
		Description("Share of item lookups that returned a placeholder").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(mgw:item_resolutions:rate5m{outcome="unresolved"}) / sum(mgw:item_resolutions:rate5m) * 100`,
			"unresolved %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(5, 25)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// BatchSize returns a timeseries panel showing the median and p95 number of
// ids resolved per search.
func BatchSize() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Batch Size").
		Description("Item ids resolved per search request").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			fmt.Sprintf(`histogram_quantile(0.50, sum(rate(mgw_item_batch_size_bucket{job=%q}[5m])) by (le))`, Job),
			"p50", "A",
		)).
		WithTarget(PromQuery(
			fmt.Sprintf(`histogram_quantile(0.95, sum(rate(mgw_item_batch_size_bucket{job=%q}[5m])) by (le))`, Job),
			"p95", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
