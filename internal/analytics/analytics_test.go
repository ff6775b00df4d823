package analytics

import (
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
)

func fp(f float64) *float64 { return &f }

func ip(i int) *int { return &i }

func record(date time.Time) models.WorkoutRecord {
	return models.WorkoutRecord{Date: date}
}

// TestStreakWeekBoundary verifies the Sunday week boundary: a Saturday
// workout from the prior week does not count, a workout at Sunday
// midnight does.
func TestStreakWeekBoundary(t *testing.T) {
	// 2024-01-07 is a Sunday.
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC) // Wednesday
	history := []models.WorkoutRecord{
		record(time.Date(2024, 1, 6, 23, 59, 0, 0, time.UTC)), // Saturday, prior week
		record(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)),   // Sunday midnight
		record(time.Date(2024, 1, 9, 7, 0, 0, 0, time.UTC)),   // Tuesday
	}

	if got := Streak(history, now); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

// TestStreakIgnoresFuture verifies records dated after today do not
// count toward this week.
func TestStreakIgnoresFuture(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)
	history := []models.WorkoutRecord{
		record(time.Date(2024, 1, 12, 8, 0, 0, 0, time.UTC)),
	}
	if got := Streak(history, now); got != 0 {
		t.Errorf("Streak = %d, want 0", got)
	}
}

// TestStreakEmpty verifies an empty history yields zero.
func TestStreakEmpty(t *testing.T) {
	if got := Streak(nil, time.Now()); got != 0 {
		t.Errorf("Streak = %d, want 0", got)
	}
}

// TestWorkoutsOn verifies calendar-day matching ignores time of day.
func TestWorkoutsOn(t *testing.T) {
	day := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)
	history := []models.WorkoutRecord{
		record(time.Date(2024, 2, 14, 6, 0, 0, 0, time.UTC)),
		record(time.Date(2024, 2, 14, 21, 45, 0, 0, time.UTC)),
		record(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)),
	}
	if got := len(WorkoutsOn(history, day)); got != 2 {
		t.Errorf("WorkoutsOn = %d records, want 2", got)
	}
}

// TestMeasurementsOn verifies the same day matching for measurements.
func TestMeasurementsOn(t *testing.T) {
	day := time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)
	ms := []models.BodyMeasurement{
		{Date: time.Date(2024, 2, 14, 7, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 2, 13, 7, 0, 0, 0, time.UTC)},
	}
	if got := len(MeasurementsOn(ms, day)); got != 1 {
		t.Errorf("MeasurementsOn = %d, want 1", got)
	}
}

// TestBMR verifies the Mifflin-St Jeor values for both genders and that
// any missing input yields nil.
func TestBMR(t *testing.T) {
	if got := BMR(fp(80), fp(180), ip(30), models.GenderMale); got == nil || *got != 1780 {
		t.Errorf("male BMR = %v, want 1780", got)
	}
	// 600 + 1031.25 - 125 - 161 = 1345.25
	if got := BMR(fp(60), fp(165), ip(25), models.GenderFemale); got == nil || *got != 1345 {
		t.Errorf("female BMR = %v, want 1345", got)
	}

	if BMR(nil, fp(180), ip(30), models.GenderMale) != nil {
		t.Error("missing weight should yield nil")
	}
	if BMR(fp(80), nil, ip(30), models.GenderMale) != nil {
		t.Error("missing height should yield nil")
	}
	if BMR(fp(80), fp(180), nil, models.GenderMale) != nil {
		t.Error("missing age should yield nil")
	}
	if BMR(fp(80), fp(180), ip(30), "") != nil {
		t.Error("missing gender should yield nil")
	}
}

// TestTDEE verifies the PAL multiplier, its 1.4 default, and nil
// propagation.
func TestTDEE(t *testing.T) {
	bmr := ip(1780)
	if got := TDEE(bmr, fp(1.2)); got == nil || *got != 2136 {
		t.Errorf("TDEE = %v, want 2136", got)
	}
	if got := TDEE(bmr, nil); got == nil || *got != 2492 {
		t.Errorf("default-PAL TDEE = %v, want 2492", got)
	}
	if TDEE(nil, fp(1.4)) != nil {
		t.Error("nil BMR should propagate")
	}
}

// TestCompareProgress verifies per-field deltas and skipping of fields
// absent in either endpoint.
func TestCompareProgress(t *testing.T) {
	initial := models.BodyMeasurement{Weight: fp(90), Chest: fp(100), Waist: fp(95)}
	current := models.BodyMeasurement{Weight: fp(84.5), Chest: fp(104), Arms: fp(40)}

	p := CompareProgress(initial, current)
	if p.Weight == nil || *p.Weight != -5.5 {
		t.Errorf("weight delta = %v, want -5.5", p.Weight)
	}
	if p.Chest == nil || *p.Chest != 4 {
		t.Errorf("chest delta = %v, want 4", p.Chest)
	}
	if p.Arms != nil {
		t.Error("arms delta should be nil (missing initial)")
	}
	if p.Waist != nil {
		t.Error("waist delta should be nil (missing current)")
	}
}

// TestCurrentWeightPrecedence verifies the newest measurement with a
// weight beats the static profile value, and the profile serves as the
// fallback.
func TestCurrentWeightPrecedence(t *testing.T) {
	user := models.User{BodyWeight: fp(85), BodyHeight: fp(180)}
	measurements := []models.BodyMeasurement{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Height: fp(181)},
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Weight: fp(82)},
	}

	if got := CurrentWeight(measurements, user); got == nil || *got != 82 {
		t.Errorf("CurrentWeight = %v, want 82", got)
	}
	if got := CurrentHeight(measurements, user); got == nil || *got != 181 {
		t.Errorf("CurrentHeight = %v, want 181", got)
	}
	if got := CurrentWeight(nil, user); got == nil || *got != 85 {
		t.Errorf("fallback CurrentWeight = %v, want 85", got)
	}
}
