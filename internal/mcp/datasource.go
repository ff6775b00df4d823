package mcp

import (
	"context"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. LocalSource (database)
// and HTTPClient (remote via REST API) both satisfy this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context, userID uuid.UUID) ([]models.WorkoutRecord, error)
	GetWorkout(ctx context.Context, id, userID uuid.UUID) (*models.WorkoutRecord, error)
	ListPlans(ctx context.Context, userID uuid.UUID) ([]models.WorkoutPlan, error)
	ListMeasurements(ctx context.Context, userID uuid.UUID) ([]models.BodyMeasurement, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	SearchExercises(ctx context.Context, query string) ([]models.Exercise, error)
}

// LocalSource serves MCP data straight from the database, with exercise
// search answered by the catalog.
type LocalSource struct {
	*storage.DB
	Catalog *catalog.Catalog
}

func (s LocalSource) SearchExercises(ctx context.Context, query string) ([]models.Exercise, error) {
	return s.Catalog.SearchExercises(ctx, query)
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = LocalSource{}
