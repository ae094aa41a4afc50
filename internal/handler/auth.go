package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/veloraid/velora/internal/domain"
	"github.com/veloraid/velora/internal/service"
)

// Fixed sign-in error codes surfaced to the client.
const (
	codeCredentialsSignin = "CredentialsSignin"
	codeAccessDenied      = "AccessDenied"
	codeConfiguration     = "Configuration"
	codeDefault           = "Default"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
	throttle *service.LoginThrottle
	cookies  CookieWriter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, throttle *service.LoginThrottle, cookies CookieWriter) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, throttle: throttle, cookies: cookies}
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"name":"...","email":"...","password":"..."}
// Response: {"success":true} or {"error":"..."}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "An account with that email already exists.")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Name, email, and a password of at least 6 characters are required.")
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleLogin verifies credentials and issues the session cookie.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}} with a session cookie, or an error code.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.throttle.Allow(clientIP(r)) {
		writeErrorCode(w, http.StatusTooManyRequests, codeAccessDenied, "Too many sign-in attempts. Try again later.")
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeErrorCode(w, http.StatusUnauthorized, codeCredentialsSignin, "Invalid email or password.")
		return
	}

	identity, err := h.auth.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeErrorCode(w, http.StatusUnauthorized, codeCredentialsSignin, "Invalid email or password.")
			return
		}
		slog.Error("login user", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, codeDefault, "An unexpected error occurred. Please try again.")
		return
	}

	token, err := h.sessions.Issue(*identity)
	if err != nil {
		slog.Error("issue session token", "error", err)
		writeErrorCode(w, http.StatusInternalServerError, codeConfiguration, "An unexpected error occurred. Please try again.")
		return
	}

	h.cookies.write(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toSessionUserDTO(domain.SessionClaims{
			UserID: identity.ID,
			Email:  identity.Email,
			Name:   identity.Name,
			Role:   identity.Role,
		}),
	})
}

// HandleLogout clears the session cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the current session view.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toSessionUserDTO(session.User),
	})
}

// clientIP extracts the remote host for rate limiting.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
