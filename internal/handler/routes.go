package handler

import (
	"net/http"

	"github.com/veloraid/velora/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	sessions *service.SessionService,
	catalog *service.CatalogService,
	reseller ProfileFetcher,
	throttle *service.LoginThrottle,
	cookies CookieWriter,
) {
	authHandler := NewAuthHandler(auth, sessions, throttle, cookies)
	catalogHandler := NewCatalogHandler(catalog)
	adminHandler := NewAdminHandler(reseller)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth/me", authHandler.HandleMe)

	mux.HandleFunc("GET /api/products", catalogHandler.HandleList)
	mux.HandleFunc("GET /api/products/{slug}", catalogHandler.HandleDetail)

	mux.HandleFunc("GET /admin/profile", adminHandler.HandleProfile)
}
