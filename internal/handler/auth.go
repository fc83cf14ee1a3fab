package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/auth"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/service"
)

// AuthHandler covers account registration and the identity probe used by
// clients to confirm their stored credentials still work.
type AuthHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// HandleRegister creates a staff account.
//
// HTTP: POST /api/auth/register
// REQUEST BODY: {"username": "...", "password": "..."}
//
// This endpoint is deliberately unauthenticated — it is how the first
// account comes to exist.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.logger.Warn("invalid registration JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("", "invalid JSON body"))
		return
	}

	user, err := h.service.Register(r.Context(), creds)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleMe returns the account behind the current Basic credentials. Sits
// behind the auth middleware, so reaching it at all means the login worked.
//
// HTTP: GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}
	writeJSON(w, http.StatusOK, user)
}
