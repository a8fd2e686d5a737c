package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"cattery/internal/catalog"
	"cattery/internal/handlers"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memKV) GetRaw(_ context.Context, collection string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[collection]
	return raw, ok
}

func (m *memKV) SetRaw(_ context.Context, collection string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[collection] = val
	return nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	coordinator := catalog.New(&memKV{data: map[string][]byte{}}, catalog.Options{})
	if err := coordinator.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	secret := []byte("router-test-secret")
	return New(secret,
		handlers.NewAuth(nil, secret),
		handlers.NewCatalog(coordinator, nil),
		handlers.NewMedia(nil, nil),
	)
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestPublicRoutesReachable(t *testing.T) {
	r := testRouter(t)

	for _, path := range []string{"/api/animals", "/api/breed-pages", "/api/faq", "/api/reviews", "/api/videos", "/api/settings", "/api/stats"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, rec.Code)
		}
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := testRouter(t)

	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/animals"},
		{http.MethodDelete, "/api/animals/x"},
		{http.MethodPost, "/api/breed-pages/chinchilla"},
		{http.MethodPost, "/api/faq"},
		{http.MethodPost, "/api/settings"},
		{http.MethodGet, "/api/activity"},
		{http.MethodPost, "/api/upload"},
		{http.MethodGet, "/api/auth/verify"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}
