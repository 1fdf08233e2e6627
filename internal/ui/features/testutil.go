// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/officehoursq/officehoursq/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
}

// SetupTestFixture creates a fixture with a fresh notifier and session store.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	return &TestFixture{
		Notifier:     NewTestNotifier(),
		SessionStore: NewTestSessionStore(),
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(t *testing.T, r *http.Request, timeout time.Duration) *http.Request {
	t.Helper()
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	t.Cleanup(cancel)
	return r.WithContext(ctx)
}

// NewTestNotifier creates a notifier for testing.
func NewTestNotifier() *notifier.Notifier {
	return notifier.New()
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}
