package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/service"
)

// ClassHandler exposes the tuition class CRUD endpoints. It owns nothing but
// JSON plumbing — validation and persistence live in the service.
type ClassHandler struct {
	service *service.ClassService
	logger  *slog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(service *service.ClassService, logger *slog.Logger) *ClassHandler {
	return &ClassHandler{service: service, logger: logger}
}

// HandleList returns every class, newest first.
//
// HTTP: GET /api/classes
func (h *ClassHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	classes, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("listing classes", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// HandleGet returns a single class by id.
//
// HTTP: GET /api/classes/{id}
func (h *ClassHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	class, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, class)
}

// HandleCreate stores a new class and returns it with the assigned id.
//
// HTTP: POST /api/classes
// REQUEST BODY: full class record; any client-supplied id is ignored.
func (h *ClassHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var class model.Class
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		h.logger.Warn("invalid class JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("", "invalid JSON body"))
		return
	}

	created, err := h.service.Create(r.Context(), &class)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate replaces the class with the given id. The id in the URL wins
// over any id in the body.
//
// HTTP: PUT /api/classes/{id}
func (h *ClassHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var class model.Class
	if err := json.NewDecoder(r.Body).Decode(&class); err != nil {
		h.logger.Warn("invalid class JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("", "invalid JSON body"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, &class)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a class.
//
// HTTP: DELETE /api/classes/{id}
func (h *ClassHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	// 204 No Content — successful deletion, no body.
	w.WriteHeader(http.StatusNoContent)
}
