package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"marc/logging"
)

func withLogger(s *Server, level slog.Level) *bytes.Buffer {
	var buf bytes.Buffer
	s.logger = slog.New(logging.NewHandler(&buf, level, false))
	return &buf
}

func TestRequestLog(t *testing.T) {
	s := testServer(t)
	buf := withLogger(s, slog.LevelDebug)

	do(t, s, http.MethodGet, "/health", "")
	do(t, s, http.MethodGet, "/nope", "")
	do(t, s, http.MethodPost, "/api/v1/charts/render", `{}`)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.Contains(t, lines[0], "INFO request")
		assert.Contains(t, lines[0], "method=GET")
		assert.Contains(t, lines[0], "url=http://example.com/health")
		assert.Contains(t, lines[0], "status=200")
		assert.Regexp(t, `request_id=\S+`, lines[0])

		assert.Contains(t, lines[1], "WARN request")
		assert.Contains(t, lines[1], "status=404")

		assert.Contains(t, lines[2], "WARN request")
		assert.Contains(t, lines[2], "method=POST")
		assert.Contains(t, lines[2], "status=400")
	}
}

func TestRequestLogFollowsLevel(t *testing.T) {
	s := testServer(t)
	buf := withLogger(s, slog.LevelWarn)

	do(t, s, http.MethodGet, "/health", "")
	assert.Empty(t, buf.String())

	do(t, s, http.MethodGet, "/nope", "")
	assert.Contains(t, buf.String(), "status=404")
}

type failingWriter struct {
	header http.Header
	status int
}

func (w *failingWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *failingWriter) WriteHeader(status int) { w.status = status }

func (w *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestWriteErrorsAreLogged(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"script", http.MethodPost, "/api/v1/charts/script", `{"elementId":"c1","labels":["pass"],"values":[1],"colors":["#0f0"]}`},
		{"index", http.MethodGet, "/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(t)
			buf := withLogger(s, slog.LevelDebug)

			w := &failingWriter{}
			s.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusOK, w.status)
			assert.Contains(t, buf.String(), "ERROR failed to write response")
			assert.Contains(t, buf.String(), "connection reset by peer")
			assert.Contains(t, buf.String(), "path="+tt.path)
		})
	}
}
