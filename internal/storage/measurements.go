package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// ListMeasurements returns the user's body measurements, newest first.
func (db *DB) ListMeasurements(ctx context.Context, userID uuid.UUID) ([]models.BodyMeasurement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, weight, height, body_fat, chest, arms, waist, legs
		 FROM body_measurements
		 WHERE user_id = $1
		 ORDER BY date DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying measurements: %w", err)
	}
	defer rows.Close()

	var result []models.BodyMeasurement
	for rows.Next() {
		var m models.BodyMeasurement
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.Weight, &m.Height,
			&m.BodyFat, &m.Chest, &m.Arms, &m.Waist, &m.Legs); err != nil {
			return nil, fmt.Errorf("scanning measurement: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// AddMeasurement appends a new snapshot dated now. Measurement history
// is append-only; there is no update or delete.
func (db *DB) AddMeasurement(ctx context.Context, userID uuid.UUID, draft models.MeasurementDraft) (*models.BodyMeasurement, error) {
	m := models.BodyMeasurement{
		ID:      uuid.New(),
		UserID:  userID,
		Date:    time.Now(),
		Weight:  draft.Weight,
		Height:  draft.Height,
		BodyFat: draft.BodyFat,
		Chest:   draft.Chest,
		Arms:    draft.Arms,
		Waist:   draft.Waist,
		Legs:    draft.Legs,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO body_measurements (id, user_id, date, weight, height, body_fat, chest, arms, waist, legs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.UserID, m.Date, m.Weight, m.Height, m.BodyFat, m.Chest, m.Arms, m.Waist, m.Legs)
	if err != nil {
		return nil, fmt.Errorf("inserting measurement: %w", err)
	}
	return &m, nil
}
