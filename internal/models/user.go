package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for the energy calculations.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User is an account profile. BodyWeight and BodyHeight are static
// fallbacks; the most recent BodyMeasurement takes precedence wherever
// current body stats are needed.
type User struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	BodyWeight *float64  `json:"bodyWeight,omitempty"`
	BodyHeight *float64  `json:"bodyHeight,omitempty"`
	Age        *int      `json:"age,omitempty"`
	Gender     string    `json:"gender,omitempty"`
	WeeklyGoal int       `json:"weeklyGoal"`
	PALValue   *float64  `json:"palValue,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserUpdate is a partial profile update. Nil fields are left unchanged.
type UserUpdate struct {
	BodyWeight *float64 `json:"bodyWeight,omitempty"`
	BodyHeight *float64 `json:"bodyHeight,omitempty"`
	Age        *int     `json:"age,omitempty"`
	Gender     *string  `json:"gender,omitempty"`
	WeeklyGoal *int     `json:"weeklyGoal,omitempty"`
	PALValue   *float64 `json:"palValue,omitempty"`
}
