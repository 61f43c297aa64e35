package api

import (
	"encoding/json"
	"net/http"

	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/user"
)

// ProfileHandler handles the authenticated user's profile endpoints.
type ProfileHandler struct {
	users  *user.Store
	auth   *authenticator
	logger log.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(users *user.Store, auth *authenticator, logger log.Logger) *ProfileHandler {
	return &ProfileHandler{users: users, auth: auth, logger: logger}
}

// RegisterRoutes registers profile routes on the given mux. All of them
// require a bearer credential.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/profile/me", h.me)
	mux.HandleFunc("PUT /api/profile/me", h.update)
	mux.HandleFunc("DELETE /api/profile/me", h.delete)
	mux.HandleFunc("GET /api/profile/stats", h.stats)
	mux.HandleFunc("GET /api/profile/settings", h.settings)
	mux.HandleFunc("PUT /api/profile/settings", h.updateSettings)
}

// me returns the caller's profile.
func (h *ProfileHandler) me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.auth.require(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// update applies a partial profile update and returns the updated profile.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) {
	u, ok := h.auth.require(w, r)
	if !ok {
		return
	}

	var upd user.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), u.Email, upd)
	if err != nil {
		h.logger.Error("failed to update profile", "error", err, "email", u.Email)
		writeError(w, http.StatusInternalServerError, "failed to update profile", "")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// delete removes the caller's account and all its sessions.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request) {
	u, ok := h.auth.require(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), u.Email); err != nil {
		h.logger.Error("failed to delete account", "error", err, "email", u.Email)
		writeError(w, http.StatusInternalServerError, "failed to delete account", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// stats returns the caller's usage statistics.
func (h *ProfileHandler) stats(w http.ResponseWriter, r *http.Request) {
	u, ok := h.auth.require(w, r)
	if !ok {
		return
	}

	stats, err := h.users.Stats(r.Context(), u.Email)
	if err != nil {
		h.logger.Error("failed to compute stats", "error", err, "email", u.Email)
		writeError(w, http.StatusInternalServerError, "failed to compute stats", "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// settings returns the caller's settings, with defaults when unset.
func (h *ProfileHandler) settings(w http.ResponseWriter, r *http.Request) {
	u, ok := h.auth.require(w, r)
	if !ok {
		return
	}

	settings, err := h.users.Settings(r.Context(), u.Email)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err, "email", u.Email)
		writeError(w, http.StatusInternalServerError, "failed to load settings", "")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// updateSettings merges the submitted settings and returns the result.
func (h *ProfileHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	u, ok := h.auth.require(w, r)
	if !ok {
		return
	}

	var settings map[string]any
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	merged, err := h.users.UpdateSettings(r.Context(), u.Email, settings)
	if err != nil {
		h.logger.Error("failed to update settings", "error", err, "email", u.Email)
		writeError(w, http.StatusInternalServerError, "failed to update settings", "")
		return
	}
	writeJSON(w, http.StatusOK, merged)
}
