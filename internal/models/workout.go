package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSet is one set attempt within an exercise. SetNumber is 1-based
// and kept contiguous: removing a set renumbers the remainder.
type WorkoutSet struct {
	ID        uuid.UUID `json:"id"`
	SetNumber int       `json:"setNumber"`
	Reps      int       `json:"reps"`
	Weight    *float64  `json:"weight,omitempty"`
	Completed bool      `json:"completed"`
}

// WorkoutExercise is one exercise instance within a session. ExerciseName
// and Gadget are denormalized copies taken at the time of use so history
// stays readable even if the catalog entry is later edited or deleted.
type WorkoutExercise struct {
	ID           uuid.UUID    `json:"id"`
	ExerciseID   string       `json:"exerciseId"`
	ExerciseName string       `json:"exerciseName"`
	Gadget       string       `json:"gadget,omitempty"`
	Sets         []WorkoutSet `json:"sets"`
}

// ActiveWorkout is an in-progress, not-yet-persisted training session.
// Plan fields are set only when the session was started from a plan.
type ActiveWorkout struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	PlanID      *uuid.UUID        `json:"planId,omitempty"`
	PlanName    string            `json:"planName,omitempty"`
	DayID       *uuid.UUID        `json:"dayId,omitempty"`
	DayName     string            `json:"dayName,omitempty"`
	StartTime   time.Time         `json:"startTime"`
	Exercises   []WorkoutExercise `json:"exercises"`
	IsCompleted bool              `json:"isCompleted"`
}

// WorkoutRecord is the durable result of a completed session.
// Duration is whole minutes; TotalWeight sums the weight of completed
// sets that have one (kilograms).
type WorkoutRecord struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"userId"`
	Date        time.Time         `json:"date"`
	PlanName    string            `json:"planName,omitempty"`
	DayName     string            `json:"dayName,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises"`
	Duration    int               `json:"duration"`
	TotalWeight float64           `json:"totalWeight"`
}

// WorkoutDraft is a completed session ready to be persisted. The storage
// layer assigns the record id and owner.
type WorkoutDraft struct {
	Date        time.Time         `json:"date"`
	PlanName    string            `json:"planName,omitempty"`
	DayName     string            `json:"dayName,omitempty"`
	Exercises   []WorkoutExercise `json:"exercises"`
	Duration    int               `json:"duration"`
	TotalWeight float64           `json:"totalWeight"`
}
