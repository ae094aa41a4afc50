package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veloraid/velora/internal/domain"
	"github.com/veloraid/velora/internal/handler"
)

func TestEvaluateAccess(t *testing.T) {
	adminClaims := &domain.SessionClaims{UserID: 1, Role: domain.RoleAdmin}
	userClaims := &domain.SessionClaims{UserID: 2, Role: domain.RoleUser}

	tests := []struct {
		name      string
		path      string
		claims    *domain.SessionClaims
		wantAllow bool
	}{
		{"public path no session", "/api/products", nil, true},
		{"public path user session", "/api/products", userClaims, true},
		{"root no session", "/", nil, true},
		{"admin prefix lookalike", "/administrator", userClaims, true},
		{"admin path no session", "/admin/profile", nil, false},
		{"admin path user role", "/admin/profile", userClaims, false},
		{"admin path admin role", "/admin/profile", adminClaims, true},
		{"admin root no session", "/admin", nil, false},
		{"admin root admin role", "/admin", adminClaims, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := handler.EvaluateAccess(tc.path, tc.claims)
			if decision.Allow != tc.wantAllow {
				t.Fatalf("EvaluateAccess(%q) allow = %v, want %v", tc.path, decision.Allow, tc.wantAllow)
			}
			if !tc.wantAllow && decision.RedirectTo != "/" {
				t.Fatalf("expected redirect to site root, got %q", decision.RedirectTo)
			}
		})
	}
}

func TestAdminGuard_RedirectsWithoutSession(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("inner handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/profile", nil)
	w := httptest.NewRecorder()

	handler.AdminGuard(inner).ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestAdminGuard_PassesNonAdminPaths(t *testing.T) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	handler.AdminGuard(inner).ServeHTTP(w, req)

	if !called {
		t.Fatal("expected inner handler to be called for non-admin path")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
