// Package palette holds the colour schemes used for DMARC charts and turns
// pre-computed counts into chart input in a stable segment order.
package palette

import (
	"sort"

	"marc/chart"
)

// DefaultFallback colours labels a palette does not know about.
const DefaultFallback = "#cbd5e1"

// Palette maps category labels to colours. Keys fixes the segment order.
type Palette struct {
	Name     string
	Keys     []string
	Swatches map[string]string
	Fallback string
}

// AuthResults colours DKIM and SPF authentication results.
var AuthResults = Palette{
	Name: "auth_results",
	Keys: []string{"none", "neutral", "pass", "fail", "policy", "softfail", "temperror", "permerror"},
	Swatches: map[string]string{
		"none":      "#f1f5f9",
		"neutral":   "#94a3b8",
		"pass":      "#10b981",
		"fail":      "#ef4444",
		"policy":    "#06b6d4",
		"softfail":  "#ec4899",
		"temperror": "#f97316",
		"permerror": "#f43f5e",
	},
	Fallback: DefaultFallback,
}

// Disposition colours the policy applied by receivers.
var Disposition = Palette{
	Name: "disposition",
	Keys: []string{"none", "quarantine", "reject"},
	Swatches: map[string]string{
		"none":       "#10b981",
		"quarantine": "#f97316",
		"reject":     "#ef4444",
	},
	Fallback: DefaultFallback,
}

var registry = map[string]Palette{
	AuthResults.Name: AuthResults,
	Disposition.Name: Disposition,
}

// Lookup returns the built-in palette called name.
func Lookup(name string) (Palette, bool) {
	p, ok := registry[name]
	return p, ok
}

// Names lists the built-in palettes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Palette) Color(label string) string {
	if c, ok := p.Swatches[label]; ok {
		return c
	}
	if p.Fallback != "" {
		return p.Fallback
	}
	return DefaultFallback
}

// Colors returns one colour per label, in label order.
func (p Palette) Colors(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = p.Color(l)
	}
	return out
}

// Input lays counts out as chart input. Every palette key appears in palette
// order, with zero for a missing count; labels outside the palette follow in
// alphabetical order.
func (p Palette) Input(elementID string, counts map[string]float64) chart.ChartInput {
	known := make(map[string]bool, len(p.Keys))
	labels := make([]string, 0, len(p.Keys)+len(counts))
	for _, k := range p.Keys {
		known[k] = true
		labels = append(labels, k)
	}

	var extra []string
	for k := range counts {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	labels = append(labels, extra...)

	values := make([]float64, len(labels))
	for i, l := range labels {
		values[i] = counts[l]
	}

	return chart.ChartInput{
		ElementID: elementID,
		Labels:    labels,
		Values:    values,
		Colors:    p.Colors(labels),
	}
}
