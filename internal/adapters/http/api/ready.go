package api

import (
	"context"
	"net/http"
)

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyHandler answers readiness probes.
type ReadyHandler struct {
	pinger Pinger
}

// NewReadyHandler creates a readiness handler backed by p.
func NewReadyHandler(p Pinger) *ReadyHandler {
	return &ReadyHandler{pinger: p}
}

type readyResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HandleReady handles GET /readyz requests.
func (h *ReadyHandler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, readyResponse{Status: "unavailable", Error: "database unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Status: "ok"})
}
