package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Strob0t/clientdesk/internal/operation"
)

// writeEnvelope renders a short-circuit envelope before any handler runs.
func writeEnvelope(w http.ResponseWriter, status int, msg string) {
	env := operation.Envelope{Success: false, Status: status, Errors: []string{msg}}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to write middleware envelope", "error", err)
	}
}
