package services

import (
	"context"
	"errors"
)

// SegmentSource supplies the pre-computed count of each label of a chart.
type SegmentSource interface {
	Segments(ctx context.Context, spec ChartSpec) (map[string]float64, error)
}

// StaticSource serves the segments written in the chart spec itself.
type StaticSource struct{}

func (StaticSource) Segments(_ context.Context, spec ChartSpec) (map[string]float64, error) {
	out := make(map[string]float64, len(spec.Segments))
	for k, v := range spec.Segments {
		out[k] = v
	}
	return out, nil
}

var ErrNoDatabase = errors.New("chart has a query but no database is configured")

// RoutedSource sends specs with a query to Query and all others to Static.
type RoutedSource struct {
	Query  SegmentSource
	Static SegmentSource
}

func (r RoutedSource) Segments(ctx context.Context, spec ChartSpec) (map[string]float64, error) {
	if spec.Query != "" {
		if r.Query == nil {
			return nil, ErrNoDatabase
		}
		return r.Query.Segments(ctx, spec)
	}
	if r.Static == nil {
		return StaticSource{}.Segments(ctx, spec)
	}
	return r.Static.Segments(ctx, spec)
}
