package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kumarvvr/salesnisha-server/internal/config"
	"github.com/kumarvvr/salesnisha-server/internal/handler"
	"github.com/kumarvvr/salesnisha-server/internal/middleware"
	"github.com/kumarvvr/salesnisha-server/internal/server"

	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	if os.Getenv("TEST_DATABASE") == "" {
		t.Skip("set TEST_DATABASE=1 (and DB_* vars) to run database tests")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	srv, err := server.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("init server: %v", err)
	}
	t.Cleanup(srv.DB.Close)

	return New(srv, handler.NewHandlers(srv), middleware.NewMiddlewares(srv))
}

func TestStatusEndpointReportsHealthy(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Status   string `json:"status"`
		Database bool   `json:"database"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("expected status ok, got %q", body.Status)
	}
	if !body.Database {
		t.Fatalf("expected database sub-check to pass")
	}
}

func TestStatusEndpointEchoesRequestID(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set(middleware.RequestIDHeader, "test-correlation-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "test-correlation-id" {
		t.Fatalf("expected request id echoed back, got %q", got)
	}
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	e := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error responses must be JSON: %v", err)
	}
	if body.Status != http.StatusNotFound {
		t.Fatalf("expected status field 404, got %d", body.Status)
	}
}
