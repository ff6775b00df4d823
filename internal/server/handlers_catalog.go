package server

import (
	"errors"
	"net/http"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUserID(w, r); !ok {
		return
	}
	var (
		exercises []models.Exercise
		err       error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		exercises, err = s.catalog.SearchExercises(r.Context(), q)
	} else {
		exercises, err = s.catalog.Exercises(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var draft models.ExerciseDraft
	if !readJSON(w, r, &draft) {
		return
	}
	ex, err := s.catalog.CreateExercise(r.Context(), uid, draft)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var draft models.ExerciseDraft
	if !readJSON(w, r, &draft) {
		return
	}
	ex, err := s.catalog.UpdateExercise(r.Context(), uid, chi.URLParam(r, "id"), draft)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.DeleteExercise(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGadgets(w http.ResponseWriter, r *http.Request) {
	if _, ok := mustUserID(w, r); !ok {
		return
	}
	var (
		gadgets []models.Gadget
		err     error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		gadgets, err = s.catalog.SearchGadgets(r.Context(), q)
	} else {
		gadgets, err = s.catalog.Gadgets(r.Context())
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, gadgets)
}

func (s *Server) handleCreateGadget(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var draft models.GadgetDraft
	if !readJSON(w, r, &draft) {
		return
	}
	g, err := s.catalog.CreateGadget(r.Context(), uid, draft)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleUpdateGadget(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var draft models.GadgetDraft
	if !readJSON(w, r, &draft) {
		return
	}
	g, err := s.catalog.UpdateGadget(r.Context(), uid, chi.URLParam(r, "id"), draft)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGadget(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	if err := s.catalog.DeleteGadget(r.Context(), uid, chi.URLParam(r, "id")); err != nil {
		writeCatalogError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCatalogError maps catalog errors onto HTTP statuses. Ownership
// violations are 403, distinct from 404 for unknown ids.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNameRequired), errors.Is(err, catalog.ErrMusclesRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotOwner), errors.Is(err, catalog.ErrBuiltin):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
