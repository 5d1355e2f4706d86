package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simple-notes-server/internal/config"
	"simple-notes-server/internal/session"
)

func corsConfig(origins string) config.CORSConfig {
	return config.CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowedHeaders: "Content-Type,Authorization",
	}
}

func runCORS(t *testing.T, cfg config.CORSConfig, method, origin string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	r := httptest.NewRequest(method, "/api/notes", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}

	w := httptest.NewRecorder()
	CORSMiddleware(cfg)(next).ServeHTTP(w, r)
	return w
}

func TestCORSPreflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	w := runCORS(t, corsConfig("https://app.example.com"), http.MethodOptions, "https://app.example.com", next)

	if called {
		t.Error("preflight should not reach the next handler")
	}
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q, want the caller's origin", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("credentialed session cookies require allow-credentials")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Expose-Headers"), session.UserIDHeader) {
		t.Errorf("expose-headers = %q, want it to include %s", w.Header().Get("Access-Control-Expose-Headers"), session.UserIDHeader)
	}
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	w := runCORS(t, corsConfig("*"), http.MethodGet, "https://anywhere.example.com", nil)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Errorf("allow-origin = %q, want the caller's origin, never *", got)
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	w := runCORS(t, corsConfig("https://app.example.com"), http.MethodGet, "https://evil.example.com", nil)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d (CORS does not reject, the browser does)", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want unset", got)
	}
}

func TestCORSSameOriginRequestUnstamped(t *testing.T) {
	w := runCORS(t, corsConfig("*"), http.MethodGet, "", nil)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin = %q, want unset without an Origin header", got)
	}
}

func TestCORSHeadersOnGuardRejection(t *testing.T) {
	// CORS wraps the guard, so a browser client can read the 401 the guard
	// sends for an anonymous API request.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("guard should have rejected the request")
	})
	handler := CORSMiddleware(corsConfig("https://app.example.com"))(
		RouteGuard(&stubResolver{})(next),
	)

	r := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	r.Header.Set("Origin", "https://app.example.com")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin on rejection = %q, want the caller's origin", got)
	}
}
