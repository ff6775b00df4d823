package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// newTestServer creates an httptest server that routes requests to handler functions
// keyed by path. Verifies the HTTP client sends correct paths and query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestListWorkouts verifies the client sends the bearer token and parses the
// workout list response.
func TestListWorkouts(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("authorization = %q, want bearer token", got)
			}
			writeTestJSON(t, w, []models.WorkoutRecord{
				{ID: uuid.New(), Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Duration: 45},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "test-token")
	workouts, err := client.ListWorkouts(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(workouts) != 1 {
		t.Fatalf("got %d workouts, want 1", len(workouts))
	}
	if workouts[0].Duration != 45 {
		t.Errorf("duration=%d, want 45", workouts[0].Duration)
	}
}

// TestGetWorkoutPath verifies the single-workout request includes the id in
// the path.
func TestGetWorkoutPath(t *testing.T) {
	id := uuid.New()
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/workouts/" + id.String(): func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.WorkoutRecord{ID: id, TotalWeight: 1200})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "token")
	record, err := client.GetWorkout(context.Background(), id, uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if record.ID != id {
		t.Errorf("id=%s, want %s", record.ID, id)
	}
	if record.TotalWeight != 1200 {
		t.Errorf("totalWeight=%f, want 1200", record.TotalWeight)
	}
}

// TestSearchExercisesQuery verifies the search query parameter is forwarded.
func TestSearchExercisesQuery(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/exercises": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "bench" {
				t.Errorf("q=%q, want bench", got)
			}
			writeTestJSON(t, w, []models.Exercise{
				{ID: "bench-press", Name: "Bench Press", Muscles: []string{"Chest"}},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "token")
	exercises, err := client.SearchExercises(context.Background(), "bench")
	if err != nil {
		t.Fatal(err)
	}
	if len(exercises) != 1 || exercises[0].ID != "bench-press" {
		t.Errorf("unexpected exercises: %+v", exercises)
	}
}

// TestGetUserViaMe verifies the profile is fetched from the auth/me endpoint.
func TestGetUserViaMe(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/auth/me": func(w http.ResponseWriter, r *http.Request) {
			writeTestJSON(t, w, models.User{ID: uuid.New(), Username: "alice", WeeklyGoal: 4})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "token")
	user, err := client.GetUser(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatal(err)
	}
	if user.Username != "alice" {
		t.Errorf("username=%q, want alice", user.Username)
	}
	if user.WeeklyGoal != 4 {
		t.Errorf("weeklyGoal=%d, want 4", user.WeeklyGoal)
	}
}

// TestHTTPClientServerError verifies the client returns an error on non-200 responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/plans": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL, "token")
	_, err := client.ListPlans(context.Background(), uuid.Nil)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
