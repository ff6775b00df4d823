// Package session holds the active-workout state machine: one in-memory
// training session per user, mutated set by set, and persisted exactly
// once when the session ends.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// Gateway is the persistence boundary the tracker depends on. The
// tracker calls it exactly once per session, from End.
type Gateway interface {
	SaveWorkout(ctx context.Context, userID uuid.UUID, draft models.WorkoutDraft) (*models.WorkoutRecord, error)
}

// Tracker owns the single active workout of one user. A mutex serializes
// all operations, so concurrent requests for the same user (two clients,
// a double-tap) never interleave; End holds the lock across the Gateway
// call, which keeps mutations out of a session that is being saved.
//
// Mutations addressed at a missing session, exercise, or set are silent
// no-ops, matching the tolerance of the UI layer that drives them. End
// and the two Start operations surface checked errors instead, because
// their callers need the outcome.
type Tracker struct {
	userID uuid.UUID
	gw     Gateway
	log    *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	active *models.ActiveWorkout
}

// NewTracker creates a tracker for the given user with no active session.
func NewTracker(userID uuid.UUID, gw Gateway, log *slog.Logger) *Tracker {
	return &Tracker{
		userID: userID,
		gw:     gw,
		log:    log,
		now:    time.Now,
	}
}

// Active returns a deep copy of the current session, or nil when there
// is none. Mutating the copy never reaches the tracked session.
func (t *Tracker) Active() *models.ActiveWorkout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

// snapshot deep-copies the active session. Callers hold t.mu.
func (t *Tracker) snapshot() *models.ActiveWorkout {
	if t.active == nil {
		return nil
	}
	cp := *t.active
	cp.Exercises = copyExercises(t.active.Exercises)
	return &cp
}

// StartFree begins an empty session.
func (t *Tracker) StartFree() (*models.ActiveWorkout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return nil, ErrWorkoutInProgress
	}
	t.active = &models.ActiveWorkout{
		ID:        uuid.New(),
		UserID:    t.userID,
		StartTime: t.now(),
		Exercises: []models.WorkoutExercise{},
	}
	t.log.Info("workout started", "user", t.userID, "workout", t.active.ID)
	return t.snapshot(), nil
}

// StartPlan begins a session seeded from one day of a plan. Each planned
// exercise materializes its target set count pre-filled with target reps
// and weight. The plan data is copied, never referenced: editing the plan
// afterwards does not touch the running session.
func (t *Tracker) StartPlan(plan models.WorkoutPlan, dayIndex int) (*models.ActiveWorkout, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		return nil, ErrWorkoutInProgress
	}
	if dayIndex < 0 || dayIndex >= len(plan.Days) {
		return nil, fmt.Errorf("%w: day %d of plan %q with %d days", ErrDayOutOfRange, dayIndex, plan.Name, len(plan.Days))
	}

	day := plan.Days[dayIndex]
	exercises := make([]models.WorkoutExercise, 0, len(day.Exercises))
	for _, pe := range day.Exercises {
		// The create handler rejects negative counts, but plans written
		// before that check may still carry them.
		sets := make([]models.WorkoutSet, max(pe.Sets, 0))
		for i := range sets {
			sets[i] = models.WorkoutSet{
				ID:        uuid.New(),
				SetNumber: i + 1,
				Reps:      pe.TargetReps,
				Weight:    copyFloat(pe.TargetWeight),
			}
		}
		exercises = append(exercises, models.WorkoutExercise{
			ID:           uuid.New(),
			ExerciseID:   pe.ExerciseID,
			ExerciseName: pe.ExerciseName,
			Gadget:       pe.Gadget,
			Sets:         sets,
		})
	}

	planID := plan.ID
	dayID := day.ID
	t.active = &models.ActiveWorkout{
		ID:        uuid.New(),
		UserID:    t.userID,
		PlanID:    &planID,
		PlanName:  plan.Name,
		DayID:     &dayID,
		DayName:   day.Name,
		StartTime: t.now(),
		Exercises: exercises,
	}
	t.log.Info("plan workout started", "user", t.userID, "plan", plan.Name, "day", day.Name)
	return t.snapshot(), nil
}

// AddExercise appends an exercise with a single default, uncompleted set.
func (t *Tracker) AddExercise(exerciseID, exerciseName, gadget string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return
	}
	t.active.Exercises = append(t.active.Exercises, models.WorkoutExercise{
		ID:           uuid.New(),
		ExerciseID:   exerciseID,
		ExerciseName: exerciseName,
		Gadget:       gadget,
		Sets: []models.WorkoutSet{{
			ID:        uuid.New(),
			SetNumber: 1,
		}},
	})
}

// ExerciseUpdate is a partial exercise edit; nil fields stay unchanged.
type ExerciseUpdate struct {
	ExerciseName *string `json:"exerciseName,omitempty"`
	Gadget       *string `json:"gadget,omitempty"`
}

// UpdateExercise merges the update into the addressed exercise.
func (t *Tracker) UpdateExercise(exerciseID uuid.UUID, upd ExerciseUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ex := t.findExercise(exerciseID)
	if ex == nil {
		return
	}
	if upd.ExerciseName != nil {
		ex.ExerciseName = *upd.ExerciseName
	}
	if upd.Gadget != nil {
		ex.Gadget = *upd.Gadget
	}
}

// SetUpdate is a partial set edit; nil fields stay unchanged.
type SetUpdate struct {
	Reps      *int     `json:"reps,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Completed *bool    `json:"completed,omitempty"`
}

// UpdateSet merges the update into the addressed set.
func (t *Tracker) UpdateSet(exerciseID, setID uuid.UUID, upd SetUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ex := t.findExercise(exerciseID)
	if ex == nil {
		return
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID != setID {
			continue
		}
		if upd.Reps != nil {
			ex.Sets[i].Reps = *upd.Reps
		}
		if upd.Weight != nil {
			w := *upd.Weight
			ex.Sets[i].Weight = &w
		}
		if upd.Completed != nil {
			ex.Sets[i].Completed = *upd.Completed
		}
		return
	}
}

// AddSet appends an empty set numbered after the existing ones.
func (t *Tracker) AddSet(exerciseID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ex := t.findExercise(exerciseID)
	if ex == nil {
		return
	}
	ex.Sets = append(ex.Sets, models.WorkoutSet{
		ID:        uuid.New(),
		SetNumber: len(ex.Sets) + 1,
	})
}

// RemoveSet deletes the addressed set and renumbers the remainder so set
// numbers are contiguous 1..N again.
func (t *Tracker) RemoveSet(exerciseID, setID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ex := t.findExercise(exerciseID)
	if ex == nil {
		return
	}
	kept := ex.Sets[:0]
	for _, s := range ex.Sets {
		if s.ID != setID {
			kept = append(kept, s)
		}
	}
	for i := range kept {
		kept[i].SetNumber = i + 1
	}
	ex.Sets = kept
}

// RemoveExercise deletes the addressed exercise entirely.
func (t *Tracker) RemoveExercise(exerciseID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return
	}
	kept := t.active.Exercises[:0]
	for _, ex := range t.active.Exercises {
		if ex.ID != exerciseID {
			kept = append(kept, ex)
		}
	}
	t.active.Exercises = kept
}

// End completes the session: computes duration and total weight, saves
// through the gateway, and clears the active session only on success. On
// a gateway failure the session stays in progress and fully editable, so
// a failed save never loses the workout.
//
// totalWeightOverride, when non-nil, replaces the computed total. The
// tracker stays locked for the duration of the save, so no mutation can
// slip into a session that is being persisted.
func (t *Tracker) End(ctx context.Context, totalWeightOverride *float64) (*models.WorkoutRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return nil, ErrNoActiveSession
	}

	endTime := t.now()
	duration := int(math.Round(float64(endTime.Sub(t.active.StartTime).Milliseconds()) / 60000))

	total := TotalWeight(t.active.Exercises)
	if totalWeightOverride != nil {
		total = *totalWeightOverride
	}

	draft := models.WorkoutDraft{
		Date:        endTime,
		PlanName:    t.active.PlanName,
		DayName:     t.active.DayName,
		Exercises:   copyExercises(t.active.Exercises),
		Duration:    duration,
		TotalWeight: total,
	}

	rec, err := t.gw.SaveWorkout(ctx, t.userID, draft)
	if err != nil {
		t.log.Error("saving workout failed, session kept", "user", t.userID, "error", err)
		return nil, fmt.Errorf("saving workout: %w", err)
	}

	t.log.Info("workout saved", "user", t.userID, "record", rec.ID, "duration_min", duration)
	t.active = nil
	return rec, nil
}

// Cancel discards the active session, if any. Safe to call repeatedly.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active != nil {
		t.log.Info("workout cancelled", "user", t.userID, "workout", t.active.ID)
	}
	t.active = nil
}

// TotalWeight sums the weight of completed sets that have one. Reps do
// not factor in.
func TotalWeight(exercises []models.WorkoutExercise) float64 {
	var total float64
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			if s.Completed && s.Weight != nil {
				total += *s.Weight
			}
		}
	}
	return total
}

// findExercise returns the addressed exercise in place. Callers hold t.mu.
func (t *Tracker) findExercise(id uuid.UUID) *models.WorkoutExercise {
	if t.active == nil {
		return nil
	}
	for i := range t.active.Exercises {
		if t.active.Exercises[i].ID == id {
			return &t.active.Exercises[i]
		}
	}
	return nil
}

func copyExercises(src []models.WorkoutExercise) []models.WorkoutExercise {
	out := make([]models.WorkoutExercise, len(src))
	for i, ex := range src {
		out[i] = ex
		out[i].Sets = make([]models.WorkoutSet, len(ex.Sets))
		for j, s := range ex.Sets {
			out[i].Sets[j] = s
			out[i].Sets[j].Weight = copyFloat(s.Weight)
		}
	}
	return out
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
