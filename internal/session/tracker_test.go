package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

type fakeGateway struct {
	saved    []models.WorkoutDraft
	failWith error
}

func (g *fakeGateway) SaveWorkout(_ context.Context, userID uuid.UUID, draft models.WorkoutDraft) (*models.WorkoutRecord, error) {
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.saved = append(g.saved, draft)
	return &models.WorkoutRecord{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        draft.Date,
		PlanName:    draft.PlanName,
		DayName:     draft.DayName,
		Exercises:   draft.Exercises,
		Duration:    draft.Duration,
		TotalWeight: draft.TotalWeight,
	}, nil
}

func newTestTracker(gw Gateway) *Tracker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTracker(uuid.New(), gw, log)
}

func floatPtr(f float64) *float64 { return &f }

// TestStartFree verifies a free session begins empty with the start time
// taken from the clock.
func TestStartFree(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return start }

	w, err := tr.StartFree()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Exercises) != 0 {
		t.Errorf("exercises = %d, want 0", len(w.Exercises))
	}
	if !w.StartTime.Equal(start) {
		t.Errorf("startTime = %v, want %v", w.StartTime, start)
	}
	if w.IsCompleted {
		t.Error("new session marked completed")
	}
}

// TestStartWhileActive verifies that starting a second session fails and
// leaves the running one untouched.
func TestStartWhileActive(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	first, err := tr.StartFree()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tr.StartFree(); !errors.Is(err, ErrWorkoutInProgress) {
		t.Errorf("StartFree error = %v, want ErrWorkoutInProgress", err)
	}
	if _, err := tr.StartPlan(models.WorkoutPlan{Days: []models.WorkoutDay{{}}}, 0); !errors.Is(err, ErrWorkoutInProgress) {
		t.Errorf("StartPlan error = %v, want ErrWorkoutInProgress", err)
	}
	if got := tr.Active(); got == nil || got.ID != first.ID {
		t.Error("running session was replaced")
	}
}

// TestStartPlanMaterialization verifies that a plan day expands into the
// prescribed exercises and pre-filled sets.
func TestStartPlanMaterialization(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	plan := models.WorkoutPlan{
		ID:   uuid.New(),
		Name: "Push Pull Legs",
		Days: []models.WorkoutDay{
			{ID: uuid.New(), Name: "Push", Exercises: []models.PlannedExercise{
				{ID: uuid.New(), ExerciseID: "bench-press", ExerciseName: "Bench Press", Sets: 3, TargetReps: 8, TargetWeight: floatPtr(60), Gadget: "Barbell"},
			}},
		},
	}

	w, err := tr.StartPlan(plan, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.PlanName != "Push Pull Legs" || w.DayName != "Push" {
		t.Errorf("plan/day = %q/%q", w.PlanName, w.DayName)
	}
	if len(w.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(w.Exercises))
	}
	ex := w.Exercises[0]
	if ex.Gadget != "Barbell" {
		t.Errorf("gadget = %q, want Barbell", ex.Gadget)
	}
	if len(ex.Sets) != 3 {
		t.Fatalf("sets = %d, want 3", len(ex.Sets))
	}
	for i, s := range ex.Sets {
		if s.SetNumber != i+1 {
			t.Errorf("set %d number = %d", i, s.SetNumber)
		}
		if s.Reps != 8 || s.Weight == nil || *s.Weight != 60 {
			t.Errorf("set %d = %d reps / %v weight, want 8 / 60", i, s.Reps, s.Weight)
		}
		if s.Completed {
			t.Errorf("set %d starts completed", i)
		}
	}
}

// TestStartPlanNegativeSetCount verifies a stored plan carrying a
// negative set count materializes as an exercise with no sets instead of
// failing.
func TestStartPlanNegativeSetCount(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	plan := models.WorkoutPlan{
		Days: []models.WorkoutDay{
			{Name: "Day 1", Exercises: []models.PlannedExercise{
				{ExerciseName: "Squat", Sets: -1, TargetReps: 5},
				{ExerciseName: "Bench Press", Sets: 2, TargetReps: 8},
			}},
		},
	}

	w, err := tr.StartPlan(plan, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(w.Exercises))
	}
	if got := len(w.Exercises[0].Sets); got != 0 {
		t.Errorf("sets for negative count = %d, want 0", got)
	}
	if got := len(w.Exercises[1].Sets); got != 2 {
		t.Errorf("sets = %d, want 2", got)
	}
}

// TestStartPlanDayOutOfRange verifies an invalid day index is rejected.
func TestStartPlanDayOutOfRange(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	plan := models.WorkoutPlan{Days: []models.WorkoutDay{{Name: "A"}}}
	if _, err := tr.StartPlan(plan, 1); !errors.Is(err, ErrDayOutOfRange) {
		t.Errorf("error = %v, want ErrDayOutOfRange", err)
	}
	if _, err := tr.StartPlan(plan, -1); !errors.Is(err, ErrDayOutOfRange) {
		t.Errorf("error = %v, want ErrDayOutOfRange", err)
	}
}

// TestPlanIsolation verifies that mutating the plan after starting does
// not change the running session (deep copy, not aliasing).
func TestPlanIsolation(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	plan := models.WorkoutPlan{
		Days: []models.WorkoutDay{
			{Name: "Day 1", Exercises: []models.PlannedExercise{
				{ExerciseName: "Squat", Sets: 2, TargetReps: 5, TargetWeight: floatPtr(100)},
			}},
		},
	}

	if _, err := tr.StartPlan(plan, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plan.Days[0].Exercises[0].ExerciseName = "Edited"
	*plan.Days[0].Exercises[0].TargetWeight = 999

	w := tr.Active()
	if w.Exercises[0].ExerciseName != "Squat" {
		t.Errorf("exercise name = %q, want Squat", w.Exercises[0].ExerciseName)
	}
	if *w.Exercises[0].Sets[0].Weight != 100 {
		t.Errorf("set weight = %v, want 100", *w.Exercises[0].Sets[0].Weight)
	}
}

// TestAddExerciseDefaultSet verifies a freshly added exercise carries one
// default, uncompleted set.
func TestAddExerciseDefaultSet(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	tr.StartFree()
	tr.AddExercise("push-ups", "Push-Ups", "")

	w := tr.Active()
	if len(w.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1", len(w.Exercises))
	}
	sets := w.Exercises[0].Sets
	if len(sets) != 1 {
		t.Fatalf("sets = %d, want 1", len(sets))
	}
	if sets[0].SetNumber != 1 || sets[0].Reps != 0 || sets[0].Completed {
		t.Errorf("default set = %+v", sets[0])
	}
}

// TestSetRenumbering verifies that removing a middle set closes the gap:
// sets 1..N become 1..N-1 in their original order.
func TestSetRenumbering(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	tr.StartFree()
	tr.AddExercise("deadlift", "Deadlift", "")
	exID := tr.Active().Exercises[0].ID
	tr.AddSet(exID)
	tr.AddSet(exID)

	// Mark the sets so their identity survives renumbering.
	sets := tr.Active().Exercises[0].Sets
	for i, s := range sets {
		tr.UpdateSet(exID, s.ID, SetUpdate{Reps: intPtr((i + 1) * 10)})
	}

	tr.RemoveSet(exID, sets[1].ID)

	got := tr.Active().Exercises[0].Sets
	if len(got) != 2 {
		t.Fatalf("sets = %d, want 2", len(got))
	}
	if got[0].SetNumber != 1 || got[1].SetNumber != 2 {
		t.Errorf("set numbers = %d, %d, want 1, 2", got[0].SetNumber, got[1].SetNumber)
	}
	if got[0].Reps != 10 || got[1].Reps != 30 {
		t.Errorf("relative order lost: reps = %d, %d, want 10, 30", got[0].Reps, got[1].Reps)
	}
}

// TestUpdateSetMerge verifies nil update fields leave values unchanged.
func TestUpdateSetMerge(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	tr.StartFree()
	tr.AddExercise("squat", "Squat", "")
	exID := tr.Active().Exercises[0].ID
	setID := tr.Active().Exercises[0].Sets[0].ID

	tr.UpdateSet(exID, setID, SetUpdate{Reps: intPtr(5), Weight: floatPtr(80)})
	tr.UpdateSet(exID, setID, SetUpdate{Completed: boolPtr(true)})

	s := tr.Active().Exercises[0].Sets[0]
	if s.Reps != 5 || s.Weight == nil || *s.Weight != 80 || !s.Completed {
		t.Errorf("merged set = %+v", s)
	}
}

// TestMutationsWithoutSession verifies mutations with no active session
// or a missing target id are silent no-ops.
func TestMutationsWithoutSession(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})

	tr.AddExercise("x", "X", "")
	tr.AddSet(uuid.New())
	tr.RemoveSet(uuid.New(), uuid.New())
	tr.RemoveExercise(uuid.New())
	tr.UpdateExercise(uuid.New(), ExerciseUpdate{ExerciseName: strPtr("Y")})
	tr.UpdateSet(uuid.New(), uuid.New(), SetUpdate{Reps: intPtr(1)})

	if tr.Active() != nil {
		t.Error("mutations created a session out of nothing")
	}

	tr.StartFree()
	tr.AddSet(uuid.New()) // unknown exercise
	if got := len(tr.Active().Exercises); got != 0 {
		t.Errorf("exercises = %d, want 0", got)
	}
}

// TestEndDuration verifies duration is the elapsed time rounded to whole
// minutes: 125 s rounds to 2.
func TestEndDuration(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(gw)
	start := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return start }
	tr.StartFree()

	tr.now = func() time.Time { return start.Add(125 * time.Second) }
	rec, err := tr.End(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Duration != 2 {
		t.Errorf("duration = %d, want 2", rec.Duration)
	}
}

// TestTotalWeight verifies only completed sets with a weight contribute.
func TestTotalWeight(t *testing.T) {
	exercises := []models.WorkoutExercise{{
		Sets: []models.WorkoutSet{
			{Completed: true, Weight: floatPtr(50)},
			{Completed: false, Weight: floatPtr(100)},
			{Completed: true, Weight: floatPtr(20)},
			{Completed: true},
		},
	}}
	if got := TotalWeight(exercises); got != 70 {
		t.Errorf("TotalWeight = %v, want 70", got)
	}
}

// TestEndTotalWeightOverride verifies an explicit total replaces the
// computed one.
func TestEndTotalWeightOverride(t *testing.T) {
	gw := &fakeGateway{}
	tr := newTestTracker(gw)
	tr.StartFree()
	tr.AddExercise("bench-press", "Bench Press", "")
	exID := tr.Active().Exercises[0].ID
	setID := tr.Active().Exercises[0].Sets[0].ID
	tr.UpdateSet(exID, setID, SetUpdate{Weight: floatPtr(40), Completed: boolPtr(true)})

	rec, err := tr.End(context.Background(), floatPtr(123.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.TotalWeight != 123.5 {
		t.Errorf("totalWeight = %v, want 123.5", rec.TotalWeight)
	}
}

// TestEndFailurePreservesSession verifies a gateway failure returns no
// record and leaves the session in progress and editable.
func TestEndFailurePreservesSession(t *testing.T) {
	gw := &fakeGateway{failWith: errors.New("connection refused")}
	tr := newTestTracker(gw)
	tr.StartFree()
	tr.AddExercise("squat", "Squat", "")

	rec, err := tr.End(context.Background(), nil)
	if err == nil || rec != nil {
		t.Fatalf("End = (%v, %v), want failure", rec, err)
	}

	w := tr.Active()
	if w == nil {
		t.Fatal("session lost after failed save")
	}
	if w.IsCompleted {
		t.Error("session marked completed after failed save")
	}

	// Still editable, and a retry succeeds.
	tr.AddSet(w.Exercises[0].ID)
	gw.failWith = nil
	if _, err := tr.End(context.Background(), nil); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if tr.Active() != nil {
		t.Error("session not cleared after successful save")
	}
	if len(gw.saved) != 1 {
		t.Errorf("saves = %d, want 1", len(gw.saved))
	}
	if got := len(gw.saved[0].Exercises[0].Sets); got != 2 {
		t.Errorf("saved sets = %d, want 2 (edit after failure lost)", got)
	}
}

// TestEndWithoutSession verifies End reports the missing session.
func TestEndWithoutSession(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	if _, err := tr.End(context.Background(), nil); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("error = %v, want ErrNoActiveSession", err)
	}
}

// TestCancelIdempotent verifies Cancel discards the session and is safe
// to call with nothing active.
func TestCancelIdempotent(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	tr.Cancel() // nothing active

	tr.StartFree()
	tr.Cancel()
	if tr.Active() != nil {
		t.Error("session still active after cancel")
	}
	tr.Cancel() // again, still a no-op

	if _, err := tr.StartFree(); err != nil {
		t.Errorf("cannot start after cancel: %v", err)
	}
}

// TestConcurrentMutations verifies the tracker serializes concurrent
// callers: parallel adds and reads (two clients on the same account)
// lose nothing and leave a consistent session.
func TestConcurrentMutations(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	tr.StartFree()

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.AddExercise("squat", "Squat", "")
			if w := tr.Active(); w == nil {
				t.Error("session vanished mid-workout")
			}
		}()
	}
	wg.Wait()

	w := tr.Active()
	if len(w.Exercises) != workers {
		t.Errorf("exercises = %d, want %d", len(w.Exercises), workers)
	}
	for _, ex := range w.Exercises {
		if len(ex.Sets) != 1 || ex.Sets[0].SetNumber != 1 {
			t.Errorf("exercise %s sets = %+v", ex.ID, ex.Sets)
		}
	}
}

// TestActiveReturnsCopy verifies callers cannot mutate the tracked
// session through the snapshot Active returns.
func TestActiveReturnsCopy(t *testing.T) {
	tr := newTestTracker(&fakeGateway{})
	tr.StartFree()
	tr.AddExercise("row", "Barbell Row", "")

	snap := tr.Active()
	snap.Exercises[0].ExerciseName = "Tampered"
	snap.Exercises[0].Sets[0].Reps = 99

	w := tr.Active()
	if w.Exercises[0].ExerciseName != "Barbell Row" {
		t.Error("snapshot mutation reached the session")
	}
	if w.Exercises[0].Sets[0].Reps != 0 {
		t.Error("snapshot set mutation reached the session")
	}
}

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
