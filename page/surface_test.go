package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marc/chart"
)

const hostDocument = `<html><body>
<canvas id="disposition"></canvas>
<div id="summary"></div>
<canvas id="dup"></canvas><canvas id="dup"></canvas>
<canvas id="a:b.c"></canvas>
</body></html>`

func TestResolveSurface(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr string
	}{
		{name: "canvas", id: "disposition"},
		{name: "id needing css escape", id: "a:b.c"},
		{name: "missing", id: "spf", wantErr: `drawing surface "spf" not found`},
		{name: "not a canvas", id: "summary", wantErr: "not a <canvas>"},
		{name: "duplicated", id: "dup", wantErr: "2 elements share this id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ResolveSurface(strings.NewReader(hostDocument), tt.id)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, chart.IsSurfaceNotFound(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
