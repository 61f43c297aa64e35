package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/user"
)

// authenticator resolves bearer credentials to user accounts.
type authenticator struct {
	users  *user.Store
	logger log.Logger
}

// optional returns the authenticated user, or nil when no credential was
// presented. A presented but invalid credential is an error.
func (a *authenticator) optional(r *http.Request) (*user.User, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, nil
	}

	u, err := a.users.ByToken(r.Context(), token)
	if errors.Is(err, user.ErrNotFound) {
		return nil, errors.New("invalid credential")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// require returns the authenticated user or writes a 401 and reports false.
func (a *authenticator) require(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	if bearerToken(r) == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "not authenticated", "")
		return nil, false
	}

	u, err := a.optional(r)
	if err != nil || u == nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "invalid credential", "")
		return nil, false
	}
	return u, true
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
