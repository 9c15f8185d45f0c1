package http

import (
	"net/http"

	"github.com/Strob0t/clientdesk/internal/middleware"
)

// ListJournals handles GET /api/v1/journals
func (h *Handlers) ListJournals(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Journals.List(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// GetJournal handles GET /api/v1/journals/{id}
func (h *Handlers) GetJournal(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Journals.Get(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// CreateJournal handles POST /api/v1/journals
func (h *Handlers) CreateJournal(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Journals.Create(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// UpdateJournal handles PUT /api/v1/journals/{id} and the legacy
// PUT /api/v1/journals with journal_id in the body.
func (h *Handlers) UpdateJournal(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Journals.Update(r.Context(), middleware.ActorFromContext(r.Context()), p))
}
