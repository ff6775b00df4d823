package mcp

import (
	"context"
	"time"

	"github.com/claude/ironlog/internal/analytics"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Retrieve completed workouts, newest first. Each record includes exercises with sets, duration in minutes, and total weight moved in kilograms."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts to return. Defaults to 20.")),
	mcp.WithString("since", mcp.Description("Only include workouts on or after this date (ISO 8601 or YYYY-MM-DD).")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Retrieve a single completed workout by id, including all exercises and sets."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout record id (UUID)")),
)

var toolGetPlans = mcp.NewTool("get_plans",
	mcp.WithDescription("List the user's workout plans with their training days and target prescriptions (sets x reps at weight)."),
)

var toolGetMeasurements = mcp.NewTool("get_measurements",
	mcp.WithDescription("Retrieve body measurement history, newest first. Weight in kilograms, height and circumferences in centimeters, body fat in percent."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of measurements to return. Defaults to 20.")),
)

var toolGetTrainingStreak = mcp.NewTool("get_training_streak",
	mcp.WithDescription("Number of workouts completed in the current calendar week (starting Sunday), alongside the user's weekly goal."),
)

var toolGetEnergyEstimate = mcp.NewTool("get_energy_estimate",
	mcp.WithDescription("Estimated basal metabolic rate (Mifflin-St Jeor) and total daily energy expenditure in kcal, using the latest body measurements with profile fallback."),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise catalog by name or target muscle (case-insensitive substring match)."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Search term, e.g. 'bench' or 'chest'")),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	history, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if sinceStr := req.GetString("since", ""); sinceStr != "" {
		since, err := parseFlexTime(sinceStr)
		if err != nil {
			return mcp.NewToolResultError("invalid since date: " + err.Error()), nil
		}
		filtered := history[:0]
		for _, rec := range history {
			if !rec.Date.Before(since) {
				filtered = append(filtered, rec)
			}
		}
		history = filtered
	}

	limit := req.GetInt("limit", 20)
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout id"), nil
	}

	record, err := h.ds.GetWorkout(ctx, id, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(record)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.ds.ListPlans(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_plans", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMeasurements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	measurements, err := h.ds.ListMeasurements(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_measurements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	limit := req.GetInt("limit", 20)
	if limit > 0 && len(measurements) > limit {
		measurements = measurements[:limit]
	}

	result, err := mcp.NewToolResultJSON(measurements)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStreak(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	history, err := h.ds.ListWorkouts(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_streak", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	user, err := h.ds.GetUser(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_training_streak user", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"streak":     analytics.Streak(history, time.Now()),
		"weeklyGoal": user.WeeklyGoal,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getEnergyEstimate(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	user, err := h.ds.GetUser(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_energy_estimate user", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	measurements, err := h.ds.ListMeasurements(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_energy_estimate measurements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	weight := analytics.CurrentWeight(measurements, *user)
	height := analytics.CurrentHeight(measurements, *user)
	bmr := analytics.BMR(weight, height, user.Age, user.Gender)
	tdee := analytics.TDEE(bmr, user.PALValue)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"bmr":  bmr,
		"tdee": tdee,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	exercises, err := h.ds.SearchExercises(ctx, query)
	if err != nil {
		h.log.Error("mcp search_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
