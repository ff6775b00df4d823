package models

import (
	"time"

	"github.com/google/uuid"
)

// BodyMeasurement is a point-in-time body snapshot. All numeric fields
// are optional; history is append-only and displayed newest first.
// Weight in kilograms, height in centimeters, circumferences in
// centimeters, body fat in percent.
type BodyMeasurement struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"userId"`
	Date    time.Time `json:"date"`
	Weight  *float64  `json:"weight,omitempty"`
	Height  *float64  `json:"height,omitempty"`
	BodyFat *float64  `json:"bodyFat,omitempty"`
	Chest   *float64  `json:"chest,omitempty"`
	Arms    *float64  `json:"arms,omitempty"`
	Waist   *float64  `json:"waist,omitempty"`
	Legs    *float64  `json:"legs,omitempty"`
}

// MeasurementDraft is the caller-supplied part of a new measurement.
// At least one field must be set.
type MeasurementDraft struct {
	Weight  *float64 `json:"weight,omitempty"`
	Height  *float64 `json:"height,omitempty"`
	BodyFat *float64 `json:"bodyFat,omitempty"`
	Chest   *float64 `json:"chest,omitempty"`
	Arms    *float64 `json:"arms,omitempty"`
	Waist   *float64 `json:"waist,omitempty"`
	Legs    *float64 `json:"legs,omitempty"`
}

// HasValue reports whether any measurement field is set.
func (d MeasurementDraft) HasValue() bool {
	for _, f := range []*float64{d.Weight, d.Height, d.BodyFat, d.Chest, d.Arms, d.Waist, d.Legs} {
		if f != nil {
			return true
		}
	}
	return false
}
