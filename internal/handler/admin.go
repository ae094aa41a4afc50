package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/veloraid/velora/internal/provider"
)

// ProfileFetcher retrieves the reseller account profile. Satisfied by
// *provider.Client.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*provider.Profile, error)
}

// AdminHandler serves the administrative section. Requests only reach it
// through AdminGuard, so every caller holds an ADMIN session.
type AdminHandler struct {
	provider ProfileFetcher
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(p ProfileFetcher) *AdminHandler {
	return &AdminHandler{provider: p}
}

// HandleProfile returns the reseller account profile and balance.
// GET /admin/profile
// Response: {"profile": {...}}
func (h *AdminHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.provider.Profile(r.Context())
	if err != nil {
		var perr *provider.Error
		if errors.As(err, &perr) && perr.Config {
			writeErrorCode(w, http.StatusInternalServerError, codeConfiguration, perr.Message)
			return
		}
		slog.Error("fetch provider profile", "error", err)
		if errors.As(err, &perr) {
			writeError(w, http.StatusBadGateway, perr.Message)
			return
		}
		writeError(w, http.StatusBadGateway, "Provider request failed.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profile": toProfileDTO(profile),
	})
}
