package analytics

import "github.com/claude/ironlog/internal/models"

// Progress holds per-field before/after deltas (current minus initial).
// A nil field means at least one endpoint did not record it.
type Progress struct {
	Weight  *float64 `json:"weight,omitempty"`
	BodyFat *float64 `json:"bodyFat,omitempty"`
	Chest   *float64 `json:"chest,omitempty"`
	Arms    *float64 `json:"arms,omitempty"`
	Waist   *float64 `json:"waist,omitempty"`
	Legs    *float64 `json:"legs,omitempty"`
}

// CompareProgress computes the change between the chronologically first
// and last measurement of a history. Fields present in only one endpoint
// are skipped.
func CompareProgress(initial, current models.BodyMeasurement) Progress {
	return Progress{
		Weight:  delta(initial.Weight, current.Weight),
		BodyFat: delta(initial.BodyFat, current.BodyFat),
		Chest:   delta(initial.Chest, current.Chest),
		Arms:    delta(initial.Arms, current.Arms),
		Waist:   delta(initial.Waist, current.Waist),
		Legs:    delta(initial.Legs, current.Legs),
	}
}

func delta(initial, current *float64) *float64 {
	if initial == nil || current == nil {
		return nil
	}
	d := *current - *initial
	return &d
}
