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

// Custom catalog entries. Ownership checks live in the catalog package;
// here every row is reachable because custom entries are visible to all
// users (only mutation is restricted).

// ListCustomExercises returns all custom exercises, newest first.
func (db *DB) ListCustomExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, muscles, gadgets, created_by
		 FROM custom_exercises
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying custom exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		ex, err := scanCustomExercise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ex)
	}
	return result, rows.Err()
}

// GetCustomExercise retrieves one custom exercise by id.
func (db *DB) GetCustomExercise(ctx context.Context, id string) (*models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, muscles, gadgets, created_by
		 FROM custom_exercises WHERE id = $1`, id)
	ex, err := scanCustomExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// CreateCustomExercise stores a new custom exercise owned by userID.
func (db *DB) CreateCustomExercise(ctx context.Context, userID uuid.UUID, draft models.ExerciseDraft) (*models.Exercise, error) {
	muscles, err := json.Marshal(draft.Muscles)
	if err != nil {
		return nil, fmt.Errorf("encoding muscles: %w", err)
	}
	gadgets, err := json.Marshal(orEmpty(draft.Gadgets))
	if err != nil {
		return nil, fmt.Errorf("encoding gadgets: %w", err)
	}

	ex := models.Exercise{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Muscles:     draft.Muscles,
		Gadgets:     orEmpty(draft.Gadgets),
		IsCustom:    true,
		CreatedBy:   &userID,
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO custom_exercises (id, name, description, muscles, gadgets, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ex.ID, ex.Name, ex.Description, muscles, gadgets, userID)
	if err != nil {
		return nil, fmt.Errorf("inserting custom exercise: %w", err)
	}
	return &ex, nil
}

// UpdateCustomExercise overwrites the editable fields of a custom
// exercise.
func (db *DB) UpdateCustomExercise(ctx context.Context, id string, draft models.ExerciseDraft) (*models.Exercise, error) {
	muscles, err := json.Marshal(draft.Muscles)
	if err != nil {
		return nil, fmt.Errorf("encoding muscles: %w", err)
	}
	gadgets, err := json.Marshal(orEmpty(draft.Gadgets))
	if err != nil {
		return nil, fmt.Errorf("encoding gadgets: %w", err)
	}

	row := db.Pool.QueryRow(ctx,
		`UPDATE custom_exercises
		 SET name = $2, description = $3, muscles = $4, gadgets = $5
		 WHERE id = $1
		 RETURNING id, name, description, muscles, gadgets, created_by`,
		id, draft.Name, draft.Description, muscles, gadgets)
	ex, err := scanCustomExercise(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ex, nil
}

// DeleteCustomExercise removes a custom exercise.
func (db *DB) DeleteCustomExercise(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM custom_exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting custom exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCustomGadgets returns all custom gadgets, newest first.
func (db *DB) ListCustomGadgets(ctx context.Context) ([]models.Gadget, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, created_by
		 FROM custom_gadgets
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying custom gadgets: %w", err)
	}
	defer rows.Close()

	var result []models.Gadget
	for rows.Next() {
		var g models.Gadget
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy); err != nil {
			return nil, fmt.Errorf("scanning custom gadget: %w", err)
		}
		g.IsCustom = true
		result = append(result, g)
	}
	return result, rows.Err()
}

// GetCustomGadget retrieves one custom gadget by id.
func (db *DB) GetCustomGadget(ctx context.Context, id string) (*models.Gadget, error) {
	var g models.Gadget
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, created_by FROM custom_gadgets WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying custom gadget: %w", err)
	}
	g.IsCustom = true
	return &g, nil
}

// CreateCustomGadget stores a new custom gadget owned by userID.
func (db *DB) CreateCustomGadget(ctx context.Context, userID uuid.UUID, draft models.GadgetDraft) (*models.Gadget, error) {
	g := models.Gadget{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		IsCustom:    true,
		CreatedBy:   &userID,
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO custom_gadgets (id, name, description, created_by)
		 VALUES ($1, $2, $3, $4)`,
		g.ID, g.Name, g.Description, userID)
	if err != nil {
		return nil, fmt.Errorf("inserting custom gadget: %w", err)
	}
	return &g, nil
}

// UpdateCustomGadget overwrites the editable fields of a custom gadget.
func (db *DB) UpdateCustomGadget(ctx context.Context, id string, draft models.GadgetDraft) (*models.Gadget, error) {
	var g models.Gadget
	err := db.Pool.QueryRow(ctx,
		`UPDATE custom_gadgets SET name = $2, description = $3
		 WHERE id = $1
		 RETURNING id, name, description, created_by`,
		id, draft.Name, draft.Description).
		Scan(&g.ID, &g.Name, &g.Description, &g.CreatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating custom gadget: %w", err)
	}
	g.IsCustom = true
	return &g, nil
}

// DeleteCustomGadget removes a custom gadget.
func (db *DB) DeleteCustomGadget(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM custom_gadgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting custom gadget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCustomExercise(row pgx.Row) (*models.Exercise, error) {
	var ex models.Exercise
	var muscles, gadgets []byte
	if err := row.Scan(&ex.ID, &ex.Name, &ex.Description, &muscles, &gadgets, &ex.CreatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning custom exercise: %w", err)
	}
	if err := json.Unmarshal(muscles, &ex.Muscles); err != nil {
		return nil, fmt.Errorf("decoding muscles: %w", err)
	}
	if err := json.Unmarshal(gadgets, &ex.Gadgets); err != nil {
		return nil, fmt.Errorf("decoding gadgets: %w", err)
	}
	ex.IsCustom = true
	return &ex, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
