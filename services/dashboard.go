package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"marc/chart"
	"marc/palette"
)

// ChartSpec describes one chart on the dashboard. Segments are either read
// from Segments directly or produced by running Query.
type ChartSpec struct {
	ID       string             `mapstructure:"id"       json:"id"`
	Title    string             `mapstructure:"title"    json:"title"`
	Palette  string             `mapstructure:"palette"  json:"palette"`
	Query    string             `mapstructure:"query"    json:"query,omitempty"`
	Segments map[string]float64 `mapstructure:"segments" json:"segments,omitempty"`
}

// RenderedChart is a chart configuration ready to be mounted on its canvas.
type RenderedChart struct {
	ElementID string            `json:"elementId"`
	Title     string            `json:"title"`
	Total     float64           `json:"total"`
	Config    chart.ChartConfig `json:"config"`
}

type Dashboard struct {
	Title       string
	Specs       []ChartSpec
	Source      SegmentSource
	Concurrency int
}

func NewDashboard(title string, specs []ChartSpec, source SegmentSource, concurrency int) *Dashboard {
	if source == nil {
		source = StaticSource{}
	}
	return &Dashboard{
		Title:       title,
		Specs:       specs,
		Source:      source,
		Concurrency: concurrency,
	}
}

// Render builds every chart of the dashboard. Charts are rendered
// concurrently; the result keeps the order of Specs.
func (d *Dashboard) Render(ctx context.Context) ([]RenderedChart, error) {
	out := make([]RenderedChart, len(d.Specs))

	g, ctx := errgroup.WithContext(ctx)
	if d.Concurrency > 0 {
		g.SetLimit(d.Concurrency)
	}
	for i, spec := range d.Specs {
		i, spec := i, spec
		g.Go(func() error {
			rc, err := d.renderOne(ctx, spec)
			if err != nil {
				return fmt.Errorf("chart %q: %w", spec.ID, err)
			}
			out[i] = rc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Dashboard) renderOne(ctx context.Context, spec ChartSpec) (RenderedChart, error) {
	pal, ok := palette.Lookup(spec.Palette)
	if !ok {
		return RenderedChart{}, fmt.Errorf("unknown palette %q", spec.Palette)
	}

	segments, err := d.Source.Segments(ctx, spec)
	if err != nil {
		return RenderedChart{}, fmt.Errorf("failed to load segments: %w", err)
	}

	elementID := spec.ID
	if elementID == "" {
		elementID = chart.NewElementID("chart")
	}

	cfg, err := chart.Render(pal.Input(elementID, segments))
	if err != nil {
		return RenderedChart{}, err
	}
	slog.Debug("chart rendered", "id", elementID, "segments", len(cfg.Data.Labels))

	return RenderedChart{
		ElementID: elementID,
		Title:     spec.Title,
		Total:     cfg.Total(),
		Config:    cfg,
	}, nil
}
