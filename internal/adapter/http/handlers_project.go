package http

import (
	"net/http"

	"github.com/Strob0t/clientdesk/internal/middleware"
)

// ListProjects handles GET /api/v1/projects
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Projects.List(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// GetProject handles GET /api/v1/projects/{id}
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Projects.Get(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// CreateProject handles POST /api/v1/projects
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Projects.Create(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// UpdateProject handles PUT /api/v1/projects/{id}
func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Projects.Update(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// CompleteProject handles POST /api/v1/projects/{id}/complete
func (h *Handlers) CompleteProject(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Projects.Complete(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// DeleteProject handles DELETE /api/v1/projects/{id}
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Projects.Delete(r.Context(), middleware.ActorFromContext(r.Context()), p))
}
