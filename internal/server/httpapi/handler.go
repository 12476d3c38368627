// Package httpapi exposes the authentication workflows over HTTP. It is a
// thin boundary: request parsing, field validation, and mapping of the error
// taxonomy to status codes happen here and nowhere else.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

const maxBodyBytes = 1 << 16

// Handler wires the HTTP auth endpoints to the user service.
type Handler struct {
	log   logging.Logger
	users *services.UserService
}

// NewHandler constructs a Handler.
func NewHandler(log logging.Logger, users *services.UserService) *Handler {
	return &Handler{log: log, users: users}
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/auth/users/new", h.handleSignup)
	mux.HandleFunc("/auth/login", h.handleLogin)
	mux.HandleFunc("/auth/users/me", h.handleWhoAmI)
	mux.HandleFunc("/auth/renew", h.handleRenew)
}

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}
	if msg := validateSignup(req); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, "validation", msg)
		return
	}

	username, err := h.users.Register(r.Context(), req.FirstName, req.LastName, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUsernameExists):
			h.log.Info(r.Context(), "signup rejected", "reason", "username exists", "username", req.Username)
			writeError(w, http.StatusConflict, "username_exists", "username already exists")
		default:
			h.log.Error(r.Context(), "signup failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	h.log.Info(r.Context(), "user registered", "username", username)
	writeJSON(w, http.StatusCreated, map[string]string{"username": username})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	username, password, ok := loginCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.users.Login(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidCredentials):
			h.log.Info(r.Context(), "login rejected", "reason", "invalid credentials")
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username/password")
		case errors.Is(err, common.ErrInactiveUser):
			h.log.Warn(r.Context(), "login rejected", "reason", "inactive user", "username", username)
			writeError(w, http.StatusForbidden, "inactive_user", "user is inactive")
		default:
			h.log.Error(r.Context(), "login failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, token)
}

func (h *Handler) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid bearer token")
		return
	}

	info, err := h.users.WhoAmI(r.Context(), token)
	if err != nil {
		h.writeTokenError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

func (h *Handler) handleRenew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid bearer token")
		return
	}

	fresh, err := h.users.Renew(r.Context(), token)
	if err != nil {
		h.writeTokenError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, fresh)
}

// writeTokenError maps token validation outcomes: garbage or forged tokens
// are unauthenticated (401), stale but well-signed tokens are forbidden yet
// identified (403).
func (h *Handler) writeTokenError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		h.log.Info(r.Context(), "token rejected", "reason", "expired")
		writeError(w, http.StatusForbidden, "token_expired", "bearer token has expired")
	case errors.Is(err, common.ErrInvalidToken):
		h.log.Info(r.Context(), "token rejected", "reason", "invalid")
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid bearer token")
	default:
		h.log.Error(r.Context(), "token validation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// loginCredentials extracts the username and password from either a JSON
// body or a form-encoded body (the latter matches OAuth2 password-flow
// clients). Writes the error response itself when extraction fails.
func loginCredentials(w http.ResponseWriter, r *http.Request) (username, password string, ok bool) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_form", "invalid request body")
			return "", "", false
		}
		username = r.PostFormValue("username")
		password = r.PostFormValue("password")
	} else {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return "", "", false
		}
		username, password = req.Username, req.Password
	}

	if username == "" || password == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation", "username and password are required")
		return "", "", false
	}
	return username, password, true
}

func validateSignup(req signupRequest) string {
	switch {
	case req.FirstName == "":
		return "first_name is required"
	case len(req.Username) < 8 || len(req.Username) > 24:
		return "username must be 8-24 characters"
	case len(req.Password) < 16 || len(req.Password) > 32:
		return "password must be 16-32 characters"
	}
	return ""
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	// a second document in the body is malformed input
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected trailing data")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}
