package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/clientdesk/internal/operation"
)

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

var (
	errBodyTooLarge = errors.New("request body too large")
	errBadBody      = errors.New("invalid request body")
)

// readParams merges query values, the request body and chi URL parameters
// into one operation.Params, in that order of precedence (URL wins).
// JSON bodies must be objects; numbers are kept as json.Number.
func readParams(w http.ResponseWriter, r *http.Request, bodyLimit int64) (operation.Params, bool) {
	p := operation.Params{}
	mergeValues(p, r.URL.Query())

	if err := readBody(w, r, bodyLimit, p); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeEnvelope(w, operation.Envelope{
				Status: http.StatusRequestEntityTooLarge,
				Errors: []string{"Request body too large."},
			})
		} else {
			slog.DebugContext(r.Context(), "rejected request body", "error", err)
			writeEnvelope(w, operation.Failure(operation.ClassValidation, "Invalid request body."))
		}
		return nil, false
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" || i >= len(rctx.URLParams.Values) {
				continue
			}
			if v, err := url.PathUnescape(rctx.URLParams.Values[i]); err == nil {
				p[key] = v
			}
		}
	}
	return p, true
}

func readBody(w http.ResponseWriter, r *http.Request, bodyLimit int64, p operation.Params) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return bodyErr(err)
		}
		mergeValues(p, r.PostForm)
		return nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return bodyErr(err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	for k, v := range body {
		p[k] = v
	}
	return nil
}

func bodyErr(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return fmt.Errorf("%w: %w", errBadBody, err)
}

// mergeValues copies url.Values into p. Repeated keys and PHP-style
// "key[]" names become lists.
func mergeValues(p operation.Params, values url.Values) {
	for key, vals := range values {
		name, isList := strings.CutSuffix(key, "[]")
		switch {
		case isList || len(vals) > 1:
			list := make([]any, 0, len(vals))
			for _, v := range vals {
				list = append(list, v)
			}
			p[name] = list
		case len(vals) == 1:
			p[name] = vals[0]
		}
	}
}

// clientIP extracts the client IP from RemoteAddr, which the RealIP
// middleware has already resolved behind a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeEnvelope renders an envelope with its own status. Redirect envelopes
// also set the Location header so browsers follow them.
func writeEnvelope(w http.ResponseWriter, env operation.Envelope) {
	if env.Errors == nil {
		env.Errors = []string{}
	}
	if env.Status == 0 {
		env.Status = http.StatusOK
	}
	if env.Redirect != nil {
		w.Header().Set("Location", env.Redirect.Location)
	}
	writeJSON(w, env.Status, env)
}
