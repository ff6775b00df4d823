package analytics

import (
	"math"

	"github.com/claude/ironlog/internal/models"
)

// DefaultPAL is the physical activity level assumed when the profile has
// none ("lightly active").
const DefaultPAL = 1.4

// BMR computes the basal metabolic rate in kcal/day using the
// Mifflin-St Jeor equation, rounded to the nearest integer. Weight in
// kilograms, height in centimeters. Returns nil when any input is
// missing or the gender is unknown.
func BMR(weight, height *float64, age *int, gender string) *int {
	if weight == nil || height == nil || age == nil {
		return nil
	}

	base := 10*(*weight) + 6.25*(*height) - 5*float64(*age)
	switch gender {
	case models.GenderMale:
		base += 5
	case models.GenderFemale:
		base -= 161
	default:
		return nil
	}

	v := int(math.Round(base))
	return &v
}

// TDEE computes the total daily energy expenditure: BMR scaled by the
// physical activity level. A nil pal falls back to DefaultPAL; a nil bmr
// propagates.
func TDEE(bmr *int, pal *float64) *int {
	if bmr == nil {
		return nil
	}
	p := DefaultPAL
	if pal != nil {
		p = *pal
	}
	v := int(math.Round(float64(*bmr) * p))
	return &v
}
