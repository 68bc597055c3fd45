package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
)

// Script returns the JavaScript statement that instantiates cfg on the
// canvas identified by elementID. Both values are JSON encoded, and
// encoding/json escapes <, > and & so the statement is safe inside a
// <script> element.
func Script(cfg ChartConfig, elementID string) (string, error) {
	id, err := json.Marshal(elementID)
	if err != nil {
		return "", fmt.Errorf("failed to encode element id: %w", err)
	}
	body, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode chart config: %w", err)
	}
	return fmt.Sprintf(`new Chart(document.getElementById(%s).getContext("2d"), %s);`, id, body), nil
}

// RenderScript renders input and wraps the result with Script.
func RenderScript(input ChartInput) (string, error) {
	cfg, err := Render(input)
	if err != nil {
		return "", err
	}
	return Script(cfg, input.ElementID)
}

// JS encodes v for direct use in an html/template script context.
func JS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// NewElementID returns a random element id such as "chart-1a2b3c4d".
func NewElementID(prefix string) string {
	if prefix == "" {
		prefix = "chart"
	}
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
