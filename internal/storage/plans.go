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

// ListPlans returns the user's workout plans, newest first.
func (db *DB) ListPlans(ctx context.Context, userID uuid.UUID) ([]models.WorkoutPlan, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, days, is_template, created_at
		 FROM workout_plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutPlan
	for rows.Next() {
		var p models.WorkoutPlan
		var description *string
		var days []byte
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &description, &days, &p.IsTemplate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		if description != nil {
			p.Description = *description
		}
		if err := json.Unmarshal(days, &p.Days); err != nil {
			return nil, fmt.Errorf("decoding plan days: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// GetPlan returns a single plan owned by the user.
func (db *DB) GetPlan(ctx context.Context, id, userID uuid.UUID) (*models.WorkoutPlan, error) {
	var p models.WorkoutPlan
	var description *string
	var days []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, description, days, is_template, created_at
		 FROM workout_plans
		 WHERE id = $1 AND user_id = $2`,
		id, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &description, &days, &p.IsTemplate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying plan: %w", err)
	}
	if description != nil {
		p.Description = *description
	}
	if err := json.Unmarshal(days, &p.Days); err != nil {
		return nil, fmt.Errorf("decoding plan days: %w", err)
	}
	return &p, nil
}

// CreatePlan stores a new plan for the user. Days and planned exercises
// without ids get fresh ones assigned before the write.
func (db *DB) CreatePlan(ctx context.Context, userID uuid.UUID, draft models.PlanDraft) (*models.WorkoutPlan, error) {
	days := draft.Days
	if days == nil {
		days = []models.WorkoutDay{}
	}
	for i := range days {
		if days[i].ID == uuid.Nil {
			days[i].ID = uuid.New()
		}
		for j := range days[i].Exercises {
			if days[i].Exercises[j].ID == uuid.Nil {
				days[i].Exercises[j].ID = uuid.New()
			}
		}
	}

	encoded, err := json.Marshal(days)
	if err != nil {
		return nil, fmt.Errorf("encoding plan days: %w", err)
	}

	plan := models.WorkoutPlan{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        draft.Name,
		Description: draft.Description,
		Days:        days,
		IsTemplate:  draft.IsTemplate,
	}

	err = db.Pool.QueryRow(ctx,
		`INSERT INTO workout_plans (id, user_id, name, description, days, is_template)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		plan.ID, userID, plan.Name, nullable(plan.Description), encoded, plan.IsTemplate).
		Scan(&plan.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting plan: %w", err)
	}
	return &plan, nil
}

// DeletePlan removes a plan owned by the user.
func (db *DB) DeletePlan(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_plans WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
