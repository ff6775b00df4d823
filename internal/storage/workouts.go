package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveWorkout persists a completed session as an immutable record.
// Exercises are stored as a frozen JSONB snapshot: the denormalized
// exercise and gadget names inside stay readable even if catalog
// entries are later edited or removed.
func (db *DB) SaveWorkout(ctx context.Context, userID uuid.UUID, draft models.WorkoutDraft) (*models.WorkoutRecord, error) {
	exercises, err := json.Marshal(draft.Exercises)
	if err != nil {
		return nil, fmt.Errorf("encoding exercises: %w", err)
	}

	id := uuid.New()
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workout_history (id, user_id, date, plan_name, day_name, exercises, duration, total_weight)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, userID, draft.Date, nullable(draft.PlanName), nullable(draft.DayName),
		exercises, draft.Duration, draft.TotalWeight)
	if err != nil {
		return nil, fmt.Errorf("inserting workout: %w", err)
	}

	return &models.WorkoutRecord{
		ID:          id,
		UserID:      userID,
		Date:        draft.Date,
		PlanName:    draft.PlanName,
		DayName:     draft.DayName,
		Exercises:   draft.Exercises,
		Duration:    draft.Duration,
		TotalWeight: draft.TotalWeight,
	}, nil
}

// ListWorkouts returns the user's workout history, newest first.
func (db *DB) ListWorkouts(ctx context.Context, userID uuid.UUID) ([]models.WorkoutRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, date, plan_name, day_name, exercises, duration, total_weight
		 FROM workout_history
		 WHERE user_id = $1
		 ORDER BY date DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRecord
	for rows.Next() {
		rec, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single record by id, scoped to its owner.
func (db *DB) GetWorkout(ctx context.Context, id, userID uuid.UUID) (*models.WorkoutRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, date, plan_name, day_name, exercises, duration, total_weight
		 FROM workout_history
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	rec, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteWorkout removes a record. Deleting someone else's record (or a
// missing one) reports ErrNotFound.
func (db *DB) DeleteWorkout(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanWorkout(row pgx.Row) (*models.WorkoutRecord, error) {
	var rec models.WorkoutRecord
	var planName, dayName *string
	var exercises []byte
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &planName, &dayName,
		&exercises, &rec.Duration, &rec.TotalWeight)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning workout: %w", err)
	}
	if planName != nil {
		rec.PlanName = *planName
	}
	if dayName != nil {
		rec.DayName = *dayName
	}
	if err := json.Unmarshal(exercises, &rec.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}
	return &rec, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
