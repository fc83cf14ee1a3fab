package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharindu/classtrack/internal/handler"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/repository/sqlite"
	"github.com/tharindu/classtrack/internal/service"
)

// newClassHandler wires a real service over an in-memory database. Handler
// tests go through the whole stack — there is no HTTP-specific logic worth
// isolating from it.
func newClassHandler(t *testing.T) *handler.ClassHandler {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return handler.NewClassHandler(service.NewClassService(db, logger), logger)
}

func classJSON() string {
	return `{
		"title": "Math 101",
		"subject": "Mathematics",
		"grade": "10",
		"teacher": "W. Perera",
		"schedule": "Mon 3-5 PM",
		"room": "B2",
		"capacity": 30,
		"fee": 1500.50,
		"currency": "LKR",
		"status": "Active",
		"startDate": "2025-05-01",
		"endDate": "2025-08-30"
	}`
}

func createClass(t *testing.T, h *handler.ClassHandler) model.Class {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/classes", bytes.NewBufferString(classJSON()))
	rr := httptest.NewRecorder()
	h.HandleCreate(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created model.Class
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	return created
}

func TestClassHandler_Create(t *testing.T) {
	t.Run("valid class", func(t *testing.T) {
		h := newClassHandler(t)

		created := createClass(t, h)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Math 101", created.Title)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h := newClassHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/classes", bytes.NewBufferString(`{"title":`))
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("validation failure carries the envelope", func(t *testing.T) {
		h := newClassHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/classes", bytes.NewBufferString(`{"title":"ab"}`))
		rr := httptest.NewRecorder()
		h.HandleCreate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "validation_error", res.Error)
		assert.NotEmpty(t, res.Message)
	})
}

func TestClassHandler_Get(t *testing.T) {
	h := newClassHandler(t)
	created := createClass(t, h)

	t.Run("existing class", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/classes/"+created.ID, nil)
		req.SetPathValue("id", created.ID)
		rr := httptest.NewRecorder()
		h.HandleGet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got model.Class
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("missing class", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/classes/nope", nil)
		req.SetPathValue("id", "nope")
		rr := httptest.NewRecorder()
		h.HandleGet(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var res handler.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "not_found", res.Error)
	})
}

func TestClassHandler_List(t *testing.T) {
	h := newClassHandler(t)

	t.Run("empty store returns empty array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
		rr := httptest.NewRecorder()
		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		// []  not  null — the console iterates the response directly.
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("returns stored classes", func(t *testing.T) {
		createClass(t, h)
		createClass(t, h)

		req := httptest.NewRequest(http.MethodGet, "/api/classes", nil)
		rr := httptest.NewRecorder()
		h.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var classes []model.Class
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&classes))
		assert.Len(t, classes, 2)
	})
}

func TestClassHandler_Update(t *testing.T) {
	h := newClassHandler(t)
	created := createClass(t, h)

	t.Run("replaces the record", func(t *testing.T) {
		body := bytes.NewBufferString(`{
			"title": "Math 102",
			"subject": "Mathematics",
			"grade": "11",
			"teacher": "W. Perera",
			"schedule": "Tue 3-5 PM",
			"room": "B3",
			"capacity": 25,
			"fee": 1800,
			"currency": "LKR",
			"status": "Inactive",
			"startDate": "2025-06-01",
			"endDate": "2025-09-30"
		}`)
		req := httptest.NewRequest(http.MethodPut, "/api/classes/"+created.ID, body)
		req.SetPathValue("id", created.ID)
		rr := httptest.NewRecorder()
		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var updated model.Class
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Math 102", updated.Title)
		assert.Equal(t, "Inactive", updated.Status)
	})

	t.Run("missing target is 404, not upsert", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/classes/nope", bytes.NewBufferString(classJSON()))
		req.SetPathValue("id", "nope")
		rr := httptest.NewRecorder()
		h.HandleUpdate(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestClassHandler_Delete(t *testing.T) {
	h := newClassHandler(t)
	created := createClass(t, h)

	req := httptest.NewRequest(http.MethodDelete, "/api/classes/"+created.ID, nil)
	req.SetPathValue("id", created.ID)
	rr := httptest.NewRecorder()
	h.HandleDelete(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Gone for good.
	get := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/classes/%s", created.ID), nil)
	get.SetPathValue("id", created.ID)
	rr = httptest.NewRecorder()
	h.HandleGet(rr, get)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
