// Package chart builds the Chart.js configuration object for the doughnut
// charts on the dashboard. Rendering is a pure transformation of
// already-computed labels, values and colours; drawing the chart is left to
// Chart.js in the browser.
package chart

import (
	"fmt"
	"math"
	"strings"
)

const (
	// Doughnut is the Chart.js chart type emitted by Render.
	Doughnut = "doughnut"

	// HoverOffset is the pixel offset applied to a hovered segment.
	HoverOffset = 4
)

// ChartInput holds one chart's data. Position i across Labels, Values and
// Colors describes a single segment.
type ChartInput struct {
	ElementID string    `json:"elementId"`
	Labels    []string  `json:"labels"`
	Values    []float64 `json:"values"`
	Colors    []string  `json:"colors"`
}

// ChartConfig is the object handed to the Chart.js constructor.
type ChartConfig struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Data            []float64 `json:"data"`
	HoverOffset     int       `json:"hoverOffset"`
	BackgroundColor []string  `json:"backgroundColor"`
}

type Options struct {
	Plugins Plugins `json:"plugins"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Display bool `json:"display"`
}

// Len returns the number of segments in the input.
func (in ChartInput) Len() int {
	return len(in.Labels)
}

// Validate reports whether the input can be rendered.
func (in ChartInput) Validate() error {
	if strings.TrimSpace(in.ElementID) == "" {
		return &InvalidInputError{Field: "elementId", Reason: "element id is required"}
	}
	if len(in.Labels) != len(in.Values) || len(in.Labels) != len(in.Colors) {
		return &InvalidInputError{
			Field: "labels",
			Reason: fmt.Sprintf("labels, values and colors differ in length (%d, %d, %d)",
				len(in.Labels), len(in.Values), len(in.Colors)),
		}
	}
	for i, v := range in.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidInputError{
				Field:  "values",
				Reason: fmt.Sprintf("value %d (%q) is not a finite number", i, in.Labels[i]),
			}
		}
	}
	return nil
}

// Render builds the doughnut configuration for input. The returned config
// never shares slices with input, so callers may reuse their buffers.
func Render(input ChartInput) (ChartConfig, error) {
	if err := input.Validate(); err != nil {
		return ChartConfig{}, err
	}

	return ChartConfig{
		Type: Doughnut,
		Data: Data{
			Labels: append([]string{}, input.Labels...),
			Datasets: []Dataset{
				{
					Data:            append([]float64{}, input.Values...),
					HoverOffset:     HoverOffset,
					BackgroundColor: append([]string{}, input.Colors...),
				},
			},
		},
		Options: Options{
			Plugins: Plugins{Legend: Legend{Display: false}},
		},
	}, nil
}

// Total sums the values of the first dataset.
func (c ChartConfig) Total() float64 {
	if len(c.Data.Datasets) == 0 {
		return 0
	}
	var total float64
	for _, v := range c.Data.Datasets[0].Data {
		total += v
	}
	return total
}
