package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/clientdesk/internal/middleware"
)

// legacyJournalSunset is when PUT /api/v1/journals with the id in the body
// stops being served.
var legacyJournalSunset = time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

// MountRoutes registers all API routes on the given chi router. The click
// route is wrapped in clickLimit, which may be nil.
func MountRoutes(r chi.Router, h *Handlers, clickLimit func(http.Handler) http.Handler) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if clickLimit != nil {
			r.Use(clickLimit)
		}
		r.Get("/a/{link}", h.TrackClick)
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"version": "1.0.0"})
		})

		// Auth
		r.Post("/auth/login", h.Login)

		// Projects
		r.Get("/projects", h.ListProjects)
		r.Post("/projects", h.CreateProject)
		r.Get("/projects/{id}", h.GetProject)
		r.Put("/projects/{id}", h.UpdateProject)
		r.Delete("/projects/{id}", h.DeleteProject)
		r.Post("/projects/{id}/complete", h.CompleteProject)

		// Journals
		r.Get("/journals", h.ListJournals)
		r.Post("/journals", h.CreateJournal)
		r.With(middleware.Deprecation(legacyJournalSunset, "/api/v1/journals/{id}")).
			Put("/journals", h.UpdateJournal)
		r.Get("/journals/{id}", h.GetJournal)
		r.Put("/journals/{id}", h.UpdateJournal)

		// Affiliates
		r.Get("/affiliates", h.ListAffiliates)
		r.Get("/affiliates/conversions.csv", h.ExportConversions)
		r.Get("/affiliates/url-check/{link}", h.CheckAffiliateLink)
		r.Post("/affiliates/register", h.RegisterAffiliate)
		r.Post("/affiliates/register/show", h.RegisterAffiliateAtShow)
		r.Post("/affiliates/search-info", h.SearchAffiliates)
		r.Get("/affiliates/{id}", h.GetAffiliate)
	})
}
