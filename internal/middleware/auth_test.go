package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"luct-reporting/internal/auth"
	"luct-reporting/internal/config"
	"luct-reporting/internal/models"
)

func newTestAuthService() *auth.Service {
	return auth.NewService(&config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(newTestAuthService())

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthenticateBadFormat(t *testing.T) {
	mw := NewAuthMiddleware(newTestAuthService())

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called with a malformed header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(newTestAuthService())

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	authSvc := newTestAuthService()
	mw := NewAuthMiddleware(authSvc)

	token, err := authSvc.GenerateToken(&models.User{
		ID:       7,
		Username: "student1",
		Role:     models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	called := false
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := GetClaims(r)
		if !ok {
			t.Fatal("Claims should be present in the request context")
		}
		if claims.UserID != 7 {
			t.Errorf("Expected user ID 7, got %d", claims.UserID)
		}
		if claims.Role != models.RoleStudent {
			t.Errorf("Expected role %s, got %s", models.RoleStudent, claims.Role)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("Handler should be called with a valid token")
	}
}

func TestRequireRole(t *testing.T) {
	authSvc := newTestAuthService()
	authMw := NewAuthMiddleware(authSvc)
	rbacMw := NewRBACMiddleware()

	token, err := authSvc.GenerateToken(&models.User{
		ID:       9,
		Username: "lecturer1",
		Role:     models.RoleLecturer,
	})
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// The lecturer role passes a lecturer-only gate
	allowed := authMw.Authenticate(rbacMw.RequireRole(models.RoleLecturer)(okHandler))
	req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	allowed.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, rec.Code)
	}

	// The same token is refused by a leader-only gate
	denied := authMw.Authenticate(rbacMw.RequireRole(models.RoleProgramLeader)(okHandler))
	req = httptest.NewRequest(http.MethodPost, "/api/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	denied.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	rbacMw := NewRBACMiddleware()

	handler := rbacMw.RequireRole(models.RoleStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called without claims")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/grades", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRespondWithErrorEncoding(t *testing.T) {
	rec := httptest.NewRecorder()
	respondWithError(rec, http.StatusUnauthorized, `token "abc" rejected`)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Response body is not valid JSON: %v", err)
	}
	if body.Success {
		t.Error("Expected success to be false")
	}
	if body.Error != `token "abc" rejected` {
		t.Errorf("Unexpected error message: %q", body.Error)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json content type, got %q", ct)
	}
}
