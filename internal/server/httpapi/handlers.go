package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/twinsight/dashboard-auth/internal/logging"
	"github.com/twinsight/dashboard-auth/internal/server/sessions"
	"github.com/twinsight/dashboard-auth/internal/server/users"
	"github.com/twinsight/dashboard-auth/internal/shared"
)

// AuthService is the facade the HTTP layer delegates to.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*sessions.Session, error)
	Login(ctx context.Context, email, password string) (*sessions.Session, error)
	Logout(ctx context.Context, sessionID string) (bool, error)
	WhoAmI(ctx context.Context, sessionID string) (*users.User, error)
}

// authResponse is the body for register and login. Operation outcomes are
// carried in the status field of an HTTP 200 body; only transport-level
// failures use HTTP error codes.
type authResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Expiry    int64  `json:"expiry,omitempty"`
}

// statusResponse is the body for logout.
type statusResponse struct {
	Status int `json:"status"`
}

// sessionResponse is the body for whoami.
type sessionResponse struct {
	Status  int    `json:"status"`
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
}

type handler struct {
	auth   AuthService
	logger logging.Logger
}

// decodeCredentials pulls the base64-encoded email and password out of the
// form. A decode failure is a client error reported before the facade is
// involved.
func decodeCredentials(r *http.Request) (email, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", err
	}

	emailRaw, err := base64.StdEncoding.DecodeString(r.PostFormValue("email_base64"))
	if err != nil {
		return "", "", err
	}

	passwordRaw, err := base64.StdEncoding.DecodeString(r.PostFormValue("password_base64"))
	if err != nil {
		return "", "", err
	}

	return string(emailRaw), string(passwordRaw), nil
}

func (h *handler) writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(ctx, "error writing response", "error", err.Error())
	}
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, password, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.auth.Register(ctx, email, password)
	switch {
	case errors.Is(err, shared.ErrorInvalidEmail):
		h.writeJSON(ctx, w, authResponse{Status: 400, Message: "Invalid E-mail address."})
	case errors.Is(err, shared.ErrorAlreadyExists):
		h.writeJSON(ctx, w, authResponse{Status: 409, Message: "Account already exists."})
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
	default:
		h.writeJSON(ctx, w, authResponse{Status: 200, SessionID: session.ID, Expiry: session.Expiry})
	}
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, password, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.auth.Login(ctx, email, password)
	switch {
	case errors.Is(err, shared.ErrorUnauthorized):
		h.writeJSON(ctx, w, authResponse{Status: 401, Message: "Invalid E-mail address and password combination."})
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
	default:
		h.writeJSON(ctx, w, authResponse{Status: 200, SessionID: session.ID, Expiry: session.Expiry})
	}
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	found, err := h.auth.Logout(ctx, r.PostFormValue("session_id"))
	switch {
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
	case !found:
		h.writeJSON(ctx, w, statusResponse{Status: 401})
	default:
		h.writeJSON(ctx, w, statusResponse{Status: 200})
	}
}

func (h *handler) session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.auth.WhoAmI(ctx, r.PostFormValue("session_id"))
	switch {
	case errors.Is(err, shared.ErrorUnauthorized):
		h.writeJSON(ctx, w, sessionResponse{Status: 401, Message: "Session ID not found."})
	case errors.Is(err, shared.ErrorSessionExpired):
		h.writeJSON(ctx, w, sessionResponse{Status: 401, Message: "Session expired"})
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
	default:
		h.writeJSON(ctx, w, sessionResponse{Status: 200, UserID: user.ID, Email: user.Email})
	}
}
