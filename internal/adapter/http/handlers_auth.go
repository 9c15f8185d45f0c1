package http

import (
	"log/slog"
	"net/http"
)

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	env := h.Auth.Login(r.Context(), p)
	if !env.Success {
		slog.DebugContext(r.Context(), "login failed", "status", env.Status)
	}
	writeEnvelope(w, env)
}
