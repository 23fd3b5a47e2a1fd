// Package charts renders negotiation outcomes as self-contained HTML charts.
// The chart is regenerated on every request from a fresh allocation; nothing
// is cached.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog"

	"github.com/ledgersmith/parity/internal/domain"
)

// Service builds charts from allocation results.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new charts service.
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "charts").Logger()}
}

// RenderRevenueBar writes an HTML bar chart comparing each team's base
// revenue against its final revenue after sharing and tax.
func (s *Service) RenderRevenueBar(w io.Writer, scenario domain.ScenarioConfig, results []domain.AllocationResult) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Level %d: %s", scenario.ID, scenario.Name),
			Subtitle: "Revenue before and after sharing ($M)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(results))
	base := make([]opts.BarData, 0, len(results))
	final := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
		base = append(base, opts.BarData{Value: r.BaseRevenue})
		final = append(final, opts.BarData{Value: r.FinalRevenue})
	}

	bar.SetXAxis(names).
		AddSeries("Base revenue", base).
		AddSeries("Final revenue", final)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render revenue chart: %w", err)
	}
	return nil
}
