package chart

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passFail() ChartInput {
	return ChartInput{
		ElementID: "c1",
		Labels:    []string{"pass", "fail"},
		Values:    []float64{80, 20},
		Colors:    []string{"#0f0", "#f00"},
	}
}

func TestRenderPassFail(t *testing.T) {
	cfg, err := Render(passFail())
	require.NoError(t, err)

	got, err := json.Marshal(cfg)
	require.NoError(t, err)

	want := `{"type":"doughnut","data":{"labels":["pass","fail"],"datasets":[{"data":[80,20],"hoverOffset":4,"backgroundColor":["#0f0","#f00"]}]},"options":{"plugins":{"legend":{"display":false}}}}`
	assert.Equal(t, want, string(got))
}

func TestRenderPreservesOrderAndLength(t *testing.T) {
	tests := []struct {
		name  string
		input ChartInput
	}{
		{
			name: "single segment",
			input: ChartInput{
				ElementID: "one",
				Labels:    []string{"none"},
				Values:    []float64{3},
				Colors:    []string{"#10b981"},
			},
		},
		{
			name: "dispositions",
			input: ChartInput{
				ElementID: "disposition",
				Labels:    []string{"none", "quarantine", "reject"},
				Values:    []float64{120, 7.5, 0},
				Colors:    []string{"#10b981", "#f97316", "#ef4444"},
			},
		},
		{
			name: "auth results",
			input: ChartInput{
				ElementID: "spf",
				Labels:    []string{"softfail", "pass", "fail", "none"},
				Values:    []float64{1, 2, 3, 4},
				Colors:    []string{"#ec4899", "#10b981", "#ef4444", "#f1f5f9"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Render(tt.input)
			require.NoError(t, err)

			assert.Equal(t, Doughnut, cfg.Type)
			require.Len(t, cfg.Data.Datasets, 1)
			ds := cfg.Data.Datasets[0]

			assert.Equal(t, tt.input.Labels, cfg.Data.Labels)
			assert.Equal(t, tt.input.Values, ds.Data)
			assert.Equal(t, tt.input.Colors, ds.BackgroundColor)
			assert.Equal(t, 4, ds.HoverOffset)
			assert.False(t, cfg.Options.Plugins.Legend.Display)
		})
	}
}

func TestRenderEmptyInput(t *testing.T) {
	cfg, err := Render(ChartInput{ElementID: "empty"})
	require.NoError(t, err)

	got, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"doughnut","data":{"labels":[],"datasets":[{"data":[],"hoverOffset":4,"backgroundColor":[]}]},"options":{"plugins":{"legend":{"display":false}}}}`,
		string(got))
}

func TestRenderInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input ChartInput
		field string
	}{
		{
			name: "values shorter",
			input: ChartInput{
				ElementID: "c1",
				Labels:    []string{"a", "b", "c"},
				Values:    []float64{1, 2},
				Colors:    []string{"#000", "#111", "#222"},
			},
			field: "labels",
		},
		{
			name: "colors longer",
			input: ChartInput{
				ElementID: "c1",
				Labels:    []string{"a"},
				Values:    []float64{1},
				Colors:    []string{"#000", "#111"},
			},
			field: "labels",
		},
		{
			name:  "missing element id",
			input: ChartInput{Labels: []string{"a"}, Values: []float64{1}, Colors: []string{"#000"}},
			field: "elementId",
		},
		{
			name:  "blank element id",
			input: ChartInput{ElementID: "  "},
			field: "elementId",
		},
		{
			name: "not a number",
			input: ChartInput{
				ElementID: "c1",
				Labels:    []string{"a"},
				Values:    []float64{math.NaN()},
				Colors:    []string{"#000"},
			},
			field: "values",
		},
		{
			name: "infinite",
			input: ChartInput{
				ElementID: "c1",
				Labels:    []string{"a", "b"},
				Values:    []float64{1, math.Inf(1)},
				Colors:    []string{"#000", "#fff"},
			},
			field: "values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.input)
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))

			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	first, err := Render(passFail())
	require.NoError(t, err)
	second, err := Render(passFail())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderDoesNotAliasInput(t *testing.T) {
	in := passFail()
	cfg, err := Render(in)
	require.NoError(t, err)

	in.Labels[0] = "changed"
	in.Values[0] = -1
	in.Colors[0] = "#000"

	assert.Equal(t, []string{"pass", "fail"}, cfg.Data.Labels)
	assert.Equal(t, []float64{80, 20}, cfg.Data.Datasets[0].Data)
	assert.Equal(t, []string{"#0f0", "#f00"}, cfg.Data.Datasets[0].BackgroundColor)
}

func TestRenderConcurrent(t *testing.T) {
	want, err := Render(passFail())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]ChartConfig, 16)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			cfg, err := Render(passFail())
			if err == nil {
				results[i] = cfg
			}
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestTotal(t *testing.T) {
	cfg, err := Render(passFail())
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Total())
	assert.Equal(t, 0.0, ChartConfig{}.Total())
}
