package handler

import (
	"net/http"
	"strings"

	"github.com/veloraid/velora/internal/domain"
)

// adminPathPrefix is the protected administrative section of the site.
const adminPathPrefix = "/admin"

// Decision is the outcome of an access check: either the request passes
// through, or it is redirected. Returning a value instead of writing the
// response keeps the decision testable without a live request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// EvaluateAccess classifies a request path against the session claims.
// Paths under the admin prefix require an ADMIN role claim; any other
// outcome redirects to the site root rather than erroring, so the
// existence of protected resources is not leaked. All other paths pass
// through regardless of session state.
func EvaluateAccess(path string, claims *domain.SessionClaims) Decision {
	if path != adminPathPrefix && !strings.HasPrefix(path, adminPathPrefix+"/") {
		return Decision{Allow: true}
	}
	if claims == nil || claims.Role != domain.RoleAdmin {
		return Decision{RedirectTo: "/"}
	}
	return Decision{Allow: true}
}

// AdminGuard enforces EvaluateAccess on every inbound request. It reads
// the decoded claims from the request context (placed there by
// SessionMiddleware) and never looks up identity data itself.
func AdminGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var claims *domain.SessionClaims
		if session := SessionFromContext(r.Context()); session != nil {
			claims = &session.User
		}

		decision := EvaluateAccess(r.URL.Path, claims)
		if !decision.Allow {
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
