package server

import (
	"net/http"
	"time"

	"github.com/claude/ironlog/internal/analytics"
)

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	history, err := s.db.ListWorkouts(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	user, err := s.db.GetUser(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	streak := analytics.Streak(history, time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"streak":     streak,
		"weeklyGoal": user.WeeklyGoal,
	})
}

func (s *Server) handleEnergy(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	user, err := s.db.GetUser(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	measurements, err := s.db.ListMeasurements(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	weight := analytics.CurrentWeight(measurements, *user)
	height := analytics.CurrentHeight(measurements, *user)
	bmr := analytics.BMR(weight, height, user.Age, user.Gender)
	tdee := analytics.TDEE(bmr, user.PALValue)

	pal := analytics.DefaultPAL
	if user.PALValue != nil {
		pal = *user.PALValue
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bmr":  bmr,
		"tdee": tdee,
		"pal":  pal,
	})
}

// handleDay returns everything logged on one calendar day, for the
// calendar view.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date parameter required (YYYY-MM-DD)"})
		return
	}

	history, err := s.db.ListWorkouts(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	measurements, err := s.db.ListMeasurements(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"workouts":     analytics.WorkoutsOn(history, day),
		"measurements": analytics.MeasurementsOn(measurements, day),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	uid, ok := mustUserID(w, r)
	if !ok {
		return
	}
	measurements, err := s.db.ListMeasurements(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(measurements) < 2 {
		writeJSON(w, http.StatusOK, analytics.Progress{})
		return
	}

	// Measurements come back newest first.
	initial := measurements[len(measurements)-1]
	current := measurements[0]
	writeJSON(w, http.StatusOK, analytics.CompareProgress(initial, current))
}
