package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// requestFormatter is a chi LogFormatter that writes access lines through
// slog, so they follow the configured level and handler.
type requestFormatter struct {
	logger func() *slog.Logger
}

func (f requestFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return &requestEntry{logger: f.logger().With(
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"url", fmt.Sprintf("%s://%s%s", scheme, r.Host, r.RequestURI),
		"remote", r.RemoteAddr,
	)}
}

type requestEntry struct {
	logger *slog.Logger
}

// Write logs 5xx responses as errors and 4xx as warnings.
func (e *requestEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}
	e.logger.Log(context.Background(), level, "request",
		"status", status,
		"bytes", bytes,
		"elapsed", elapsed,
	)
}

func (e *requestEntry) Panic(v interface{}, stack []byte) {
	e.logger.Error("panic", "panic", fmt.Sprint(v), "stack", string(stack))
}
