package api

import (
	"encoding/json"
	"net/http"

	"github.com/minbarhq/minbar/internal/agent"
	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/prompt"
	"github.com/minbarhq/minbar/internal/session"
	"github.com/minbarhq/minbar/internal/user"
)

// MaxQuestionLength bounds the request body's question field.
const MaxQuestionLength = 2000

// AskHandler handles the question endpoint.
type AskHandler struct {
	pipeline     *agent.Pipeline
	sessions     *session.Store
	auth         *authenticator
	historyLimit int
	logger       log.Logger
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(pipeline *agent.Pipeline, sessions *session.Store, auth *authenticator, historyLimit int, logger log.Logger) *AskHandler {
	return &AskHandler{
		pipeline:     pipeline,
		sessions:     sessions,
		auth:         auth,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// RegisterRoutes registers the ask route on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.ask)
}

// AskRequest is the request body for a question.
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is the answer payload.
type AskResponse struct {
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	Type      string `json:"question_type"`
	SessionID string `json:"session_id,omitempty"`
}

// ask answers one question. With a session_id, the session's recent
// messages are passed to the pipeline as conversation context and both the
// question and the answer are appended to the session.
func (h *AskHandler) ask(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.optional(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credential", "")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required", "")
		return
	}
	if len(req.Question) > MaxQuestionLength {
		writeError(w, http.StatusBadRequest, "question too long", "")
		return
	}

	var history []prompt.Turn
	if req.SessionID != "" {
		sess, err := h.sessions.Get(r.Context(), req.SessionID)
		if err != nil || !ownedBy(sess, u) {
			writeError(w, http.StatusNotFound, "session not found", "")
			return
		}

		messages, err := h.sessions.Messages(r.Context(), req.SessionID, h.historyLimit)
		if err != nil {
			h.logger.Error("failed to load history", "error", err, "session_id", req.SessionID)
			writeError(w, http.StatusInternalServerError, "failed to load history", "")
			return
		}
		for _, msg := range messages {
			history = append(history, prompt.Turn{Role: msg.Role, Content: msg.Content})
		}

		if _, err := h.sessions.AddMessage(r.Context(), req.SessionID, session.RoleUser, req.Question); err != nil {
			h.logger.Error("failed to record question", "error", err, "session_id", req.SessionID)
			writeError(w, http.StatusInternalServerError, "failed to record question", "")
			return
		}
	}

	res := h.pipeline.Answer(r.Context(), req.Question, history)

	if req.SessionID != "" {
		if _, err := h.sessions.AddMessage(r.Context(), req.SessionID, session.RoleAssistant, res.Text); err != nil {
			// The answer is already computed; log and return it anyway.
			h.logger.Error("failed to record answer", "error", err, "session_id", req.SessionID)
		}
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:    res.Text,
		Category:  string(res.Category),
		Type:      string(res.Type),
		SessionID: req.SessionID,
	})
}

// ownedBy reports whether the session belongs to the caller: the user's own
// sessions when authenticated, anonymous sessions otherwise.
func ownedBy(sess *session.Session, u *user.User) bool {
	if u == nil {
		return sess.UserEmail == ""
	}
	return sess.UserEmail == u.Email
}
