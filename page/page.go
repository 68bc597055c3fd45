// Package page renders the dashboard HTML page and plays the host document's
// part in resolving chart element ids to canvases.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"marc/chart"
	"marc/services"
)

// DefaultChartJSURL is where the page loads Chart.js from unless configured.
const DefaultChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js"

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"script": chartScript, "count": formatCount}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

type Dashboard struct {
	Title      string
	ChartJSURL string
	Charts     []services.RenderedChart
}

func chartScript(c services.RenderedChart) (template.JS, error) {
	s, err := chart.Script(c.Config, c.ElementID)
	if err != nil {
		return "", err
	}
	return template.JS(s), nil
}

// formatCount prints totals without exponents, 1000000 rather than 1e+06.
func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Render writes the dashboard page to w.
func Render(w io.Writer, d Dashboard) error {
	if d.ChartJSURL == "" {
		d.ChartJSURL = DefaultChartJSURL
	}
	if d.Title == "" {
		d.Title = "DMARC reports"
	}
	if err := dashboardTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return nil
}

// Build renders the page and checks that every chart can be mounted on it.
func Build(d Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard page: %w", err)
	}
	for _, c := range d.Charts {
		if err := Resolve(doc, c.ElementID); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
