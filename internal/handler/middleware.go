package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/veloraid/velora/internal/domain"
	"github.com/veloraid/velora/internal/service"
)

type contextKey string

const (
	sessionContextKey   contextKey = "session"
	requestIDContextKey contextKey = "requestID"
)

// sessionCookieName carries the signed session token.
const sessionCookieName = "session_token"

// SessionFromContext extracts the session view from the request context.
// Returns nil if the request carries no valid session.
func SessionFromContext(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return session
}

// RequestIDFromContext returns the request ID assigned by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// CookieWriter writes and clears the session cookie with consistent
// attributes.
type CookieWriter struct {
	Secure bool
	MaxAge int // seconds
}

func (c CookieWriter) write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   c.MaxAge,
	})
}

func (c CookieWriter) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionMiddleware reads the session cookie on every request. A valid
// token is projected into the request context as the session view and
// exchanged for a freshly issued token, sliding the 30-day window forward
// for active users. Any decode failure degrades to "no session" and the
// request proceeds unauthenticated.
func SessionMiddleware(sessions *service.SessionService, cookies CookieWriter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := sessions.Validate(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		if refreshed, err := sessions.Refresh(claims); err == nil {
			cookies.write(w, refreshed)
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, &domain.Session{User: *claims})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID assigns a unique ID to each request, exposes it in the
// X-Request-ID response header, and logs the request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		slog.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)

		ctx := context.WithValue(r.Context(), requestIDContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SecurityHeaders sets baseline security headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
