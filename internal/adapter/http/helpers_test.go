package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/Strob0t/clientdesk/internal/operation"
)

func TestReadParamsMergesSources(t *testing.T) {
	var got operation.Params
	r := chi.NewRouter()
	r.Put("/things/{id}", func(w http.ResponseWriter, req *http.Request) {
		p, ok := readParams(w, req, 1024)
		if !ok {
			t.Fatal("readParams rejected a valid request")
		}
		got = p
	})

	req := httptest.NewRequest(http.MethodPut, "/things/42?limit=5&tag=a&tag=b&ids[]=1",
		strings.NewReader(`{"id":"body-loses","title":"T","n":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)

	want := operation.Params{
		"id":    "42",
		"limit": "5",
		"tag":   []any{"a", "b"},
		"ids":   []any{"1"},
		"title": "T",
		"n":     json.Number("7"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestReadParamsForm(t *testing.T) {
	form := url.Values{"email": {"a@example.com"}, "affiliates[]": {"1", "2"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	p, ok := readParams(httptest.NewRecorder(), req, 1024)
	if !ok {
		t.Fatal("form body rejected")
	}
	if p.String("email") != "a@example.com" {
		t.Errorf("email = %q", p.String("email"))
	}
	if diff := cmp.Diff([]int64{1, 2}, p.Int64s("affiliates")); diff != "" {
		t.Errorf("affiliates mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteEnvelopeRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	writeEnvelope(rec, operation.Redirected("/login", "exists"))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "/login" {
		t.Errorf("expected Location /login, got %q", rec.Header().Get("Location"))
	}
}

func TestWriteEnvelopeNilErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeEnvelope(rec, operation.Envelope{Success: true})
	if !strings.Contains(rec.Body.String(), `"errors":[]`) {
		t.Errorf("errors must encode as an array: %s", rec.Body.String())
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected default 200, got %d", rec.Code)
	}
}
