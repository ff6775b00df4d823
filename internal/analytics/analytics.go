// Package analytics computes derived statistics over already-loaded
// history collections. Everything here is a pure function: no I/O, no
// hidden clock — callers pass "now" in.
package analytics

import (
	"time"

	"github.com/claude/ironlog/internal/models"
)

// Streak counts workout records dated within the current calendar week,
// week starting Sunday, dates compared at midnight local to now's
// location. This is the number of training days logged this week; it
// resets at every week boundary rather than spanning weeks.
func Streak(history []models.WorkoutRecord, now time.Time) int {
	today := truncateToDay(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))

	count := 0
	for _, w := range history {
		d := truncateToDay(w.Date.In(now.Location()))
		if !d.Before(weekStart) && !d.After(today) {
			count++
		}
	}
	return count
}

// WorkoutsOn returns the records whose date falls on the same calendar
// day as day, ignoring time of day.
func WorkoutsOn(history []models.WorkoutRecord, day time.Time) []models.WorkoutRecord {
	var out []models.WorkoutRecord
	for _, w := range history {
		if sameDay(w.Date, day) {
			out = append(out, w)
		}
	}
	return out
}

// MeasurementsOn returns the measurements taken on the given calendar day.
func MeasurementsOn(measurements []models.BodyMeasurement, day time.Time) []models.BodyMeasurement {
	var out []models.BodyMeasurement
	for _, m := range measurements {
		if sameDay(m.Date, day) {
			out = append(out, m)
		}
	}
	return out
}

// CurrentWeight resolves the user's current body weight: the most recent
// measurement wins over the static profile field. The measurements slice
// is expected ordered date descending, as the gateway returns it.
func CurrentWeight(measurements []models.BodyMeasurement, user models.User) *float64 {
	for _, m := range measurements {
		if m.Weight != nil {
			return m.Weight
		}
	}
	return user.BodyWeight
}

// CurrentHeight resolves the user's current height with the same
// precedence as CurrentWeight.
func CurrentHeight(measurements []models.BodyMeasurement, user models.User) *float64 {
	for _, m := range measurements {
		if m.Height != nil {
			return m.Height
		}
	}
	return user.BodyHeight
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
