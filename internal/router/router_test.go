package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestRouter(t *testing.T) (*Router, *map[string]string) {
	t.Helper()

	var params map[string]string
	rt := New()
	rt.HandleFunc(http.MethodGet, "/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rt.HandleFunc(http.MethodGet, "/users/:id", func(w http.ResponseWriter, r *http.Request) {
		params = map[string]string{"id": Param(r, "id")}
		w.WriteHeader(http.StatusOK)
	})
	rt.HandleFunc(http.MethodDelete, "/users/:id", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return rt, &params
}

func do(rt *Router, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouter_ParamBinding(t *testing.T) {
	t.Parallel()

	rt, params := newTestRouter(t)
	rec := do(rt, http.MethodGet, "/users/42")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if (*params)["id"] != "42" {
		t.Fatalf("id param = %q, want %q", (*params)["id"], "42")
	}
}

func TestRouter_SegmentCountMismatch(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)

	if rec := do(rt, http.MethodGet, "/users/42/extra"); rec.Code != http.StatusNotFound {
		t.Fatalf("/users/42/extra: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := do(rt, http.MethodGet, "/unknown"); rec.Code != http.StatusNotFound {
		t.Fatalf("/unknown: status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	rec := do(rt, http.MethodPost, "/users/42")

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}

func TestRouter_OptionsShortCircuit(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	// The path does not need to match any pattern.
	rec := do(rt, http.MethodOptions, "/anything/at/all")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestRouter_CORSHeadersOnEveryResponse(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	for _, rec := range []*httptest.ResponseRecorder{
		do(rt, http.MethodGet, "/users/42"),
		do(rt, http.MethodGet, "/missing"),
		do(rt, http.MethodPost, "/users/42"),
		do(rt, http.MethodOptions, "/users"),
	} {
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("Access-Control-Allow-Origin = %q, want *", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
			t.Fatalf("Access-Control-Allow-Methods = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type" {
			t.Fatalf("Access-Control-Allow-Headers = %q", got)
		}
	}
}

func TestRouter_FirstMatchWins(t *testing.T) {
	t.Parallel()

	rt := New()
	rt.HandleFunc(http.MethodGet, "/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rt.HandleFunc(http.MethodGet, "/users/:id", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if rec := do(rt, http.MethodGet, "/users/me"); rec.Code != http.StatusTeapot {
		t.Fatalf("literal route did not win: status = %d", rec.Code)
	}
	if rec := do(rt, http.MethodGet, "/users/42"); rec.Code != http.StatusOK {
		t.Fatalf("param route not reached: status = %d", rec.Code)
	}
}

func TestParam_NoParams(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if got := Param(req, "id"); got != "" {
		t.Fatalf("Param on bare request = %q, want empty", got)
	}
}
