package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutPlan is a reusable training template. A session started from a
// plan copies the day's exercises at start time; later plan edits never
// reach back into running or completed sessions.
type WorkoutPlan struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Days        []WorkoutDay `json:"days"`
	IsTemplate  bool         `json:"isTemplate"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// WorkoutDay is one training day within a plan.
type WorkoutDay struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Exercises []PlannedExercise `json:"exercises"`
}

// PlannedExercise is a target prescription within a plan day: Sets many
// sets of TargetReps, optionally at TargetWeight.
type PlannedExercise struct {
	ID           uuid.UUID `json:"id"`
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	Sets         int       `json:"sets"`
	TargetReps   int       `json:"targetReps"`
	TargetWeight *float64  `json:"targetWeight,omitempty"`
	Gadget       string    `json:"gadget,omitempty"`
}

// PlanDraft is the caller-supplied part of a new plan.
type PlanDraft struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Days        []WorkoutDay `json:"days"`
	IsTemplate  bool         `json:"isTemplate"`
}
