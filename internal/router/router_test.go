package router

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GregMSThompson/cost-tracker/internal/crypto"
	"github.com/GregMSThompson/cost-tracker/internal/handlers"
	"github.com/GregMSThompson/cost-tracker/internal/middleware"
	"github.com/GregMSThompson/cost-tracker/internal/response"
	"github.com/GregMSThompson/cost-tracker/pkg/logger"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter() http.Handler {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	rh := response.New(log)
	deps := &handlers.Deps{Log: log, ResponseHandler: rh, DB: okPinger{}}
	mw := middleware.NewMiddleware(crypto.NewJWT("router-test-secret-value", time.Hour), rh)
	return NewRouter(deps, mw)
}

func TestRouterHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rr.Code)
	}
}

func TestRouterRequiresToken(t *testing.T) {
	for _, path := range []string{
		"/api/transactions",
		"/api/transactions/summary",
		"/api/transactions/chart",
		"/api/categories?type=income",
		"/api/auth/me",
	} {
		rr := httptest.NewRecorder()
		newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
	}
}

func TestRouterRejectsForgedToken(t *testing.T) {
	tok, err := crypto.NewJWT("some-other-secret-value", time.Hour).Issue("u1", "a@b.c")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/summary", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
