package server

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/session"
	"github.com/claude/ironlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// sessionRegistry hands out one Tracker per user. Trackers live for the
// lifetime of the process; an abandoned session is simply overwritten by
// the next start after a cancel.
type sessionRegistry struct {
	mu       sync.Mutex
	gw       session.Gateway
	log      *slog.Logger
	trackers map[uuid.UUID]*session.Tracker
}

func newSessionRegistry(gw session.Gateway, log *slog.Logger) *sessionRegistry {
	return &sessionRegistry{
		gw:       gw,
		log:      log,
		trackers: make(map[uuid.UUID]*session.Tracker),
	}
}

func (sr *sessionRegistry) tracker(userID uuid.UUID) *session.Tracker {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	t, ok := sr.trackers[userID]
	if !ok {
		t = session.NewTracker(userID, sr.gw, sr.log)
		sr.trackers[userID] = t
	}
	return t
}

type startSessionRequest struct {
	PlanID   *uuid.UUID `json:"planId,omitempty"`
	DayIndex int        `json:"dayIndex"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req startSessionRequest
	if r.ContentLength != 0 && !readJSON(w, r, &req) {
		return
	}

	tracker := s.sessions.tracker(uid)

	if req.PlanID == nil {
		active, err := tracker.StartFree()
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, active)
		return
	}

	plan, err := s.db.GetPlan(r.Context(), *req.PlanID, uid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	active, err := tracker.StartPlan(*plan, req.DayIndex)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, active)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	active := s.sessions.tracker(uid).Active()
	if active == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, active)
}

type addExerciseRequest struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName,omitempty"`
	Gadget       string `json:"gadget,omitempty"`
}

func (s *Server) handleSessionAddExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req addExerciseRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.ExerciseID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exerciseId is required"})
		return
	}

	// Snapshot name and gadget from the catalog unless the caller supplied them.
	name, gadget := req.ExerciseName, req.Gadget
	if name == "" {
		ex, err := s.catalog.FindExercise(r.Context(), req.ExerciseID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		name = ex.Name
		if gadget == "" && len(ex.Gadgets) > 0 {
			gadget = ex.Gadgets[0]
		}
	}

	s.sessions.tracker(uid).AddExercise(req.ExerciseID, name, gadget)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionUpdateExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	var upd session.ExerciseUpdate
	if !readJSON(w, r, &upd) {
		return
	}
	s.sessions.tracker(uid).UpdateExercise(id, upd)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionRemoveExercise(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	s.sessions.tracker(uid).RemoveExercise(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionAddSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	s.sessions.tracker(uid).AddSet(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionUpdateSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	exID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	setID, err := uuid.Parse(chi.URLParam(r, "setId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set ID"})
		return
	}
	var upd session.SetUpdate
	if !readJSON(w, r, &upd) {
		return
	}
	if upd.Reps != nil && *upd.Reps < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must not be negative"})
		return
	}
	s.sessions.tracker(uid).UpdateSet(exID, setID, upd)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionRemoveSet(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	exID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	setID, err := uuid.Parse(chi.URLParam(r, "setId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set ID"})
		return
	}
	s.sessions.tracker(uid).RemoveSet(exID, setID)
	w.WriteHeader(http.StatusNoContent)
}

type finishSessionRequest struct {
	TotalWeight *float64 `json:"totalWeight,omitempty"`
}

func (s *Server) handleFinishSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var req finishSessionRequest
	if r.ContentLength != 0 && !readJSON(w, r, &req) {
		return
	}

	record, err := s.sessions.tracker(uid).End(r.Context(), req.TotalWeight)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveSession) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
			return
		}
		// The session stays intact so the client can retry.
		s.log.Error("finishing session", "user", uid, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	s.sessions.tracker(uid).Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrWorkoutInProgress):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, session.ErrDayOutOfRange):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
