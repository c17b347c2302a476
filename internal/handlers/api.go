// Package handlers exposes the registry as a JSON API.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/geula-list/registry/internal/directory"
	"github.com/geula-list/registry/internal/notify"
	"github.com/geula-list/registry/internal/relations"
)

// API bundles the services the handlers run against. Handlers get their
// collaborators here, at construction, rather than through package globals.
type API struct {
	DB        *gorm.DB
	Directory *directory.Service
	Relations *relations.Service
}

func New(gdb *gorm.DB, dir *directory.Service, rel *relations.Service) *API {
	return &API{DB: gdb, Directory: dir, Relations: rel}
}

var validate = validator.New()

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handlers: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

func urlID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Duplicate conflicts carry their candidate list in the body so the client
// can offer linking instead of duplicating.
func writeServiceError(w http.ResponseWriter, err error) {
	var dup *relations.DuplicateError
	switch {
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":      dup.Error(),
			"candidates": dup.Candidates,
		})
	case errors.Is(err, relations.ErrAlreadyLinked):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, relations.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, relations.ErrNotFound),
		errors.Is(err, directory.ErrNotFound),
		errors.Is(err, notify.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("handlers: internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
