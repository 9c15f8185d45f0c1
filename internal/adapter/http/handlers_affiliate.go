package http

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	cdotel "github.com/Strob0t/clientdesk/internal/adapter/otel"
	"github.com/Strob0t/clientdesk/internal/domain/affiliate"
	"github.com/Strob0t/clientdesk/internal/middleware"
	"github.com/Strob0t/clientdesk/internal/operation"
	"github.com/Strob0t/clientdesk/internal/port/export"
	"github.com/Strob0t/clientdesk/internal/service"
)

// affiliateCookieMaxAge keeps a click attributed for 30 days.
const affiliateCookieMaxAge = 30 * 24 * time.Hour

// ListAffiliates handles GET /api/v1/affiliates
func (h *Handlers) ListAffiliates(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.Affiliates.Directory(r.Context(), middleware.ActorFromContext(r.Context())))
}

// GetAffiliate handles GET /api/v1/affiliates/{id}
func (h *Handlers) GetAffiliate(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Affiliates.Profile(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// CheckAffiliateLink handles GET /api/v1/affiliates/url-check/{link}
func (h *Handlers) CheckAffiliateLink(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Affiliates.URLCheck(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// RegisterAffiliate handles POST /api/v1/affiliates/register
func (h *Handlers) RegisterAffiliate(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false)
}

// RegisterAffiliateAtShow handles POST /api/v1/affiliates/register/show
func (h *Handlers) RegisterAffiliateAtShow(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true)
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request, atShow bool) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	var sponsor int64
	if c, err := r.Cookie(affiliate.CookieName); err == nil {
		sponsor = affiliate.SponsorFromCookie(c.Value)
	}
	writeEnvelope(w, h.Affiliates.Register(r.Context(), middleware.ActorFromContext(r.Context()), p, sponsor, atShow))
}

// SearchAffiliates handles POST /api/v1/affiliates/search-info
func (h *Handlers) SearchAffiliates(w http.ResponseWriter, r *http.Request) {
	p, ok := readParams(w, r, h.bodyLimit())
	if !ok {
		return
	}
	writeEnvelope(w, h.Affiliates.SearchInfo(r.Context(), middleware.ActorFromContext(r.Context()), p))
}

// TrackClick handles GET /a/{link}. A known link records the click and
// remembers the sponsor in the affiliate cookie before redirecting.
func (h *Handlers) TrackClick(w http.ResponseWriter, r *http.Request) {
	link := chi.URLParam(r, "link")
	env := h.Affiliates.Click(r.Context(), middleware.ActorFromContext(r.Context()), link, clientIP(r))

	if click, ok := env.Payload.(service.ClickPayload); ok && env.Success {
		http.SetCookie(w, &http.Cookie{
			Name:     affiliate.CookieName,
			Value:    strconv.FormatInt(click.AffiliateID, 10),
			Path:     "/",
			HttpOnly: true,
			Secure:   h.SecureCookies,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(affiliateCookieMaxAge / time.Second),
		})
	}
	writeEnvelope(w, env)
}

// ExportConversions handles GET /api/v1/affiliates/conversions.csv
func (h *Handlers) ExportConversions(w http.ResponseWriter, r *http.Request) {
	env := h.Affiliates.Conversions(r.Context(), middleware.ActorFromContext(r.Context()))
	table, ok := env.Payload.(export.Table)
	if !env.Success || !ok {
		writeEnvelope(w, env)
		return
	}

	// Render fully before committing headers so a sink failure still
	// produces an envelope.
	ctx, span := cdotel.StartExportSpan(r.Context(), table.Filename, len(table.Rows))
	defer span.End()

	var buf bytes.Buffer
	if err := h.Export.WriteTable(&buf, table); err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "export conversions failed", "error", err)
		writeEnvelope(w, operation.Failure(operation.ClassDataAccess, "Undetermined error exporting conversions."))
		return
	}

	w.Header().Set("Content-Type", h.Export.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": table.Filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.ErrorContext(ctx, "write export response failed", "error", err)
	}
}
