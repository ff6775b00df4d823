// Package catalog serves the exercise and equipment reference data: a
// fixed built-in list shipped with the binary unioned with user-created
// custom entries from storage. Sessions copy catalog text at the time of
// use, so nothing here ever needs to stay stable for history's sake.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// Store is the persistence boundary for custom entries. Lookups for
// unknown ids return the store's not-found sentinel; catalog methods
// pass store errors through unchanged.
type Store interface {
	ListCustomExercises(ctx context.Context) ([]models.Exercise, error)
	GetCustomExercise(ctx context.Context, id string) (*models.Exercise, error)
	CreateCustomExercise(ctx context.Context, userID uuid.UUID, draft models.ExerciseDraft) (*models.Exercise, error)
	UpdateCustomExercise(ctx context.Context, id string, draft models.ExerciseDraft) (*models.Exercise, error)
	DeleteCustomExercise(ctx context.Context, id string) error

	ListCustomGadgets(ctx context.Context) ([]models.Gadget, error)
	GetCustomGadget(ctx context.Context, id string) (*models.Gadget, error)
	CreateCustomGadget(ctx context.Context, userID uuid.UUID, draft models.GadgetDraft) (*models.Gadget, error)
	UpdateCustomGadget(ctx context.Context, id string, draft models.GadgetDraft) (*models.Gadget, error)
	DeleteCustomGadget(ctx context.Context, id string) error
}

// Catalog combines the embedded built-in reference data with custom
// entries. Built-ins are immutable; custom entries are mutable only by
// their owner.
type Catalog struct {
	store Store
	log   *slog.Logger

	builtinExercises []models.Exercise
	builtinGadgets   []models.Gadget
}

// New loads the embedded built-in data and wires the custom store.
func New(store Store, log *slog.Logger) (*Catalog, error) {
	exercises, gadgets, err := loadBuiltin()
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", "builtin_exercises", len(exercises), "builtin_gadgets", len(gadgets))
	return &Catalog{
		store:            store,
		log:              log,
		builtinExercises: exercises,
		builtinGadgets:   gadgets,
	}, nil
}

// Exercises returns built-in exercises followed by all custom ones.
func (c *Catalog) Exercises(ctx context.Context) ([]models.Exercise, error) {
	custom, err := c.store.ListCustomExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing custom exercises: %w", err)
	}
	out := make([]models.Exercise, 0, len(c.builtinExercises)+len(custom))
	out = append(out, c.builtinExercises...)
	out = append(out, custom...)
	return out, nil
}

// Gadgets returns built-in gadgets followed by all custom ones.
func (c *Catalog) Gadgets(ctx context.Context) ([]models.Gadget, error) {
	custom, err := c.store.ListCustomGadgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing custom gadgets: %w", err)
	}
	out := make([]models.Gadget, 0, len(c.builtinGadgets)+len(custom))
	out = append(out, c.builtinGadgets...)
	out = append(out, custom...)
	return out, nil
}

// SearchExercises filters by case-insensitive substring over the name
// and muscle-group tags. An empty query returns everything.
func (c *Catalog) SearchExercises(ctx context.Context, query string) ([]models.Exercise, error) {
	all, err := c.Exercises(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	var out []models.Exercise
	for _, ex := range all {
		if matchesExercise(ex, q) {
			out = append(out, ex)
		}
	}
	return out, nil
}

// SearchGadgets filters by case-insensitive substring over the name.
func (c *Catalog) SearchGadgets(ctx context.Context, query string) ([]models.Gadget, error) {
	all, err := c.Gadgets(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}
	var out []models.Gadget
	for _, g := range all {
		if strings.Contains(strings.ToLower(g.Name), q) {
			out = append(out, g)
		}
	}
	return out, nil
}

// FindExercise resolves an id against built-ins first, then the custom
// store. Used to validate and enrich session entries.
func (c *Catalog) FindExercise(ctx context.Context, id string) (*models.Exercise, error) {
	for i := range c.builtinExercises {
		if c.builtinExercises[i].ID == id {
			ex := c.builtinExercises[i]
			return &ex, nil
		}
	}
	return c.store.GetCustomExercise(ctx, id)
}

// CreateExercise adds a custom exercise owned by userID.
func (c *Catalog) CreateExercise(ctx context.Context, userID uuid.UUID, draft models.ExerciseDraft) (*models.Exercise, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	if len(draft.Muscles) == 0 {
		return nil, ErrMusclesRequired
	}
	return c.store.CreateCustomExercise(ctx, userID, draft)
}

// UpdateExercise edits a custom exercise. Only the owner may edit;
// built-ins are rejected outright.
func (c *Catalog) UpdateExercise(ctx context.Context, userID uuid.UUID, id string, draft models.ExerciseDraft) (*models.Exercise, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := c.authorizeExercise(ctx, userID, id); err != nil {
		return nil, err
	}
	return c.store.UpdateCustomExercise(ctx, id, draft)
}

// DeleteExercise removes a custom exercise. Only the owner may delete.
func (c *Catalog) DeleteExercise(ctx context.Context, userID uuid.UUID, id string) error {
	if err := c.authorizeExercise(ctx, userID, id); err != nil {
		return err
	}
	return c.store.DeleteCustomExercise(ctx, id)
}

// CreateGadget adds a custom gadget owned by userID.
func (c *Catalog) CreateGadget(ctx context.Context, userID uuid.UUID, draft models.GadgetDraft) (*models.Gadget, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	return c.store.CreateCustomGadget(ctx, userID, draft)
}

// UpdateGadget edits a custom gadget with the same ownership rules as
// exercises.
func (c *Catalog) UpdateGadget(ctx context.Context, userID uuid.UUID, id string, draft models.GadgetDraft) (*models.Gadget, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := c.authorizeGadget(ctx, userID, id); err != nil {
		return nil, err
	}
	return c.store.UpdateCustomGadget(ctx, id, draft)
}

// DeleteGadget removes a custom gadget. Only the owner may delete.
func (c *Catalog) DeleteGadget(ctx context.Context, userID uuid.UUID, id string) error {
	if err := c.authorizeGadget(ctx, userID, id); err != nil {
		return err
	}
	return c.store.DeleteCustomGadget(ctx, id)
}

func (c *Catalog) authorizeExercise(ctx context.Context, userID uuid.UUID, id string) error {
	for i := range c.builtinExercises {
		if c.builtinExercises[i].ID == id {
			return ErrBuiltin
		}
	}
	ex, err := c.store.GetCustomExercise(ctx, id)
	if err != nil {
		return err
	}
	if ex.CreatedBy == nil || *ex.CreatedBy != userID {
		return ErrNotOwner
	}
	return nil
}

func (c *Catalog) authorizeGadget(ctx context.Context, userID uuid.UUID, id string) error {
	for i := range c.builtinGadgets {
		if c.builtinGadgets[i].ID == id {
			return ErrBuiltin
		}
	}
	g, err := c.store.GetCustomGadget(ctx, id)
	if err != nil {
		return err
	}
	if g.CreatedBy == nil || *g.CreatedBy != userID {
		return ErrNotOwner
	}
	return nil
}

func matchesExercise(ex models.Exercise, q string) bool {
	if strings.Contains(strings.ToLower(ex.Name), q) {
		return true
	}
	for _, m := range ex.Muscles {
		if strings.Contains(strings.ToLower(m), q) {
			return true
		}
	}
	return false
}
