package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinicops/pt-followup/internal/http/handlers"
	"github.com/clinicops/pt-followup/internal/visits"
	"github.com/clinicops/pt-followup/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := visits.NewService(visits.NewStore(), nil, nil, logging.Default(), nil)
	h := handlers.NewVisitsHandler(svc, logging.Default(), 2026, 10)
	return New(&Config{
		Logger: logging.Default(),
		Visits: h,
	})
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestClearAllRequiresConfirmToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/visits", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirm token, got %d", rec.Code)
	}
}

func TestCORSHeaderApplied(t *testing.T) {
	svc := visits.NewService(visits.NewStore(), nil, nil, logging.Default(), nil)
	h := handlers.NewVisitsHandler(svc, logging.Default(), 2026, 10)
	r := New(&Config{
		Visits:             h,
		CORSAllowedOrigins: []string{"https://clinic.example"},
	})

	req := httptest.NewRequest(http.MethodGet, "/visits", nil)
	req.Header.Set("Origin", "https://clinic.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://clinic.example" {
		t.Fatalf("expected CORS header for allowed origin, got %q", got)
	}
}
