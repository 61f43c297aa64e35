package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/session"
	"github.com/minbarhq/minbar/internal/user"
)

// MaxSessionNameLength bounds the session name field.
const MaxSessionNameLength = 100

// SessionHandler handles session management endpoints.
type SessionHandler struct {
	store  *session.Store
	auth   *authenticator
	logger log.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(store *session.Store, auth *authenticator, logger log.Logger) *SessionHandler {
	return &SessionHandler{store: store, auth: auth, logger: logger}
}

// RegisterRoutes registers session routes on the given mux.
func (h *SessionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/sessions", h.list)
	mux.HandleFunc("POST /api/sessions", h.create)
	mux.HandleFunc("GET /api/sessions/{id}", h.get)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.delete)
	mux.HandleFunc("GET /api/sessions/{id}/messages", h.messages)
}

// list returns the caller's sessions, most recently updated first.
func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.optional(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credential", "")
		return
	}

	sessions, err := h.store.List(r.Context(), email(u))
	if err != nil {
		h.logger.Error("failed to list sessions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list sessions", "")
		return
	}
	if sessions == nil {
		sessions = []*session.Session{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// CreateSessionRequest is the request body for creating a session.
type CreateSessionRequest struct {
	Name string `json:"name"`
}

// create starts a new session for the caller.
func (h *SessionHandler) create(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.optional(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credential", "")
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if len(req.Name) > MaxSessionNameLength {
		writeError(w, http.StatusBadRequest, "name too long", "")
		return
	}

	sess, err := h.store.Create(r.Context(), email(u), req.Name)
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session", "")
		return
	}

	writeJSON(w, http.StatusCreated, sess)
}

// get returns one of the caller's sessions.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// delete removes one of the caller's sessions.
func (h *SessionHandler) delete(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), sess.ID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found", "")
			return
		}
		h.logger.Error("failed to delete session", "error", err, "session_id", sess.ID)
		writeError(w, http.StatusInternalServerError, "failed to delete session", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// messages returns a session's messages in chronological order.
func (h *SessionHandler) messages(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owned(w, r)
	if !ok {
		return
	}

	messages, err := h.store.Messages(r.Context(), sess.ID, 0)
	if err != nil {
		h.logger.Error("failed to load messages", "error", err, "session_id", sess.ID)
		writeError(w, http.StatusInternalServerError, "failed to load messages", "")
		return
	}
	if messages == nil {
		messages = []*session.Message{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"total":    len(messages),
	})
}

// owned loads the path's session and checks it belongs to the caller.
// Unknown and foreign sessions are both reported as not found.
func (h *SessionHandler) owned(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	u, err := h.auth.optional(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credential", "")
		return nil, false
	}

	sess, err := h.store.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found", "")
		return nil, false
	}
	if err != nil {
		h.logger.Error("failed to load session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load session", "")
		return nil, false
	}
	if !ownedBy(sess, u) {
		writeError(w, http.StatusNotFound, "session not found", "")
		return nil, false
	}
	return sess, true
}

func email(u *user.User) string {
	if u == nil {
		return ""
	}
	return u.Email
}
