package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shnoor_lms/internal/common/security"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
)

func initTestJWT() {
	if config.AppConfig == nil {
		config.AppConfig = &config.Config{
			JWTKey: []byte("test-secret"),
			JWTExp: time.Hour,
		}
	}
	security.InitJWT()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestAuthenticatorAcceptsValidToken(t *testing.T) {
	initTestJWT()

	token, err := security.GenerateToken("user-1", model.RoleStudent)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var gotID, gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotRole, _ = GetUserRoleFromContext(r.Context())
		w.Write([]byte("ok"))
	})
	h := jwtauth.Verifier(security.TokenAuth)(Authenticator(inner))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	if gotID != "user-1" || gotRole != model.RoleStudent {
		t.Errorf("context carried %q/%q, want user-1/student", gotID, gotRole)
	}
}

func TestAuthenticatorRejectsMissingAndGarbageTokens(t *testing.T) {
	initTestJWT()
	h := jwtauth.Verifier(security.TokenAuth)(Authenticator(okHandler()))

	tests := []struct {
		name   string
		header string
	}{
		{"no token", ""},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func withRole(req *http.Request, role string) *http.Request {
	ctx := context.WithValue(req.Context(), UserIDCtxKey, "user-1")
	ctx = context.WithValue(ctx, UserRoleCtxKey, role)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(model.RoleInstructor)(okHandler())

	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"matching role", model.RoleInstructor, http.StatusOK},
		{"admin passes any gate", model.RoleAdmin, http.StatusOK},
		{"wrong role is 404 not 403", model.RoleStudent, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withRole(httptest.NewRequest(http.MethodGet, "/", nil), tt.role)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireRoleWithoutContextIs404(t *testing.T) {
	h := RequireRole(model.RoleInstructor)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
