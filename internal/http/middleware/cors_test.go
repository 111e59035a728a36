package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(origins []string) http.Handler {
	return CORS(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowlistedOrigin(t *testing.T) {
	h := corsHandler([]string{"https://app.example.ro"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.ro")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.ro" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	h := corsHandler([]string{"https://app.example.ro"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin leaked: %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("request itself should still pass: %d", rec.Code)
	}
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	h := corsHandler([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anything.example.net")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://anything.example.net" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	h := corsHandler([]string{"https://app.example.ro"})

	req := httptest.NewRequest(http.MethodOptions, "/v1/conversations/message", nil)
	req.Header.Set("Origin", "https://app.example.ro")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("Allow-Methods missing on preflight")
	}
}
