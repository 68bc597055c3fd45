package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"marc/chart"
	"marc/page"
)

const maxBodyBytes = 1 << 20

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// writeFailure maps err onto a status code.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if chart.IsInvalidInput(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("request failed", "path", r.URL.Path, "err", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func decodeInput(w http.ResponseWriter, r *http.Request) (chart.ChartInput, error) {
	var in chart.ChartInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, &chart.InvalidInputError{Field: "body", Reason: "request body is empty"}
		}
		return in, &chart.InvalidInputError{Field: "body", Reason: fmt.Sprintf("invalid request body: %v", err)}
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return in, &chart.InvalidInputError{Field: "body", Reason: "request body must contain a single JSON object"}
	}
	return in, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: map[string]string{"status": "ok"}})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	cfg, err := chart.Render(in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: cfg})
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	script, err := chart.RenderScript(in)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, script+"\n"); err != nil {
		s.log().Error("failed to write response", "path", r.URL.Path, "err", err)
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	charts, err := s.dashboard.Render(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: charts})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	charts, err := s.dashboard.Render(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	body, err := page.Build(page.Dashboard{
		Title:      s.dashboard.Title,
		ChartJSURL: s.cfg.ChartJSURL,
		Charts:     charts,
	})
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		s.log().Error("failed to write response", "path", r.URL.Path, "err", err)
	}
}
