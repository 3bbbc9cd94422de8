package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/infrastructure/auth"
)

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Email: "ana@example.com"}, "acc-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("claims missing from context")
		}
		gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})

	wrapped := AuthMiddleware(jwtManager)(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}

	if gotClaims == nil || gotClaims.UserID != "user-1" || gotClaims.AccountID != "acc-1" {
		t.Fatalf("unexpected claims: %+v", gotClaims)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTManager("test-secret", -time.Hour)
	token, err := expired.Generate(&domain.User{ID: "user-1"}, "acc-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	wrapped := AuthMiddleware(auth.NewJWTManager("test-secret", time.Hour))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("expired token must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
