package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func adminProtected(secret string) http.Handler {
	return AdminJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AdminClaimsFromContext(r.Context()); !ok {
			http.Error(w, "claims missing", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminJWTAcceptsValidToken(t *testing.T) {
	h := adminProtected("test-secret")

	req := httptest.NewRequest(http.MethodDelete, "/v1/profiles/u", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminJWTRejects(t *testing.T) {
	h := adminProtected("test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret")},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodDelete, "/v1/profiles/u", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tt.name, rec.Code)
		}
	}
}

func TestAdminJWTEmptySecretDeniesAll(t *testing.T) {
	h := adminProtected("")

	req := httptest.NewRequest(http.MethodDelete, "/v1/profiles/u", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, ""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 when auth is unconfigured", rec.Code)
	}
}
