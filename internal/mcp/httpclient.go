package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the IronLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL,
// authenticating every request with the bearer token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context, _ uuid.UUID) ([]models.WorkoutRecord, error) {
	body, err := c.get(ctx, "/api/v1/workouts", nil)
	if err != nil {
		return nil, err
	}

	var workouts []models.WorkoutRecord
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id, _ uuid.UUID) (*models.WorkoutRecord, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var record models.WorkoutRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return &record, nil
}

func (c *HTTPClient) ListPlans(ctx context.Context, _ uuid.UUID) ([]models.WorkoutPlan, error) {
	body, err := c.get(ctx, "/api/v1/plans", nil)
	if err != nil {
		return nil, err
	}

	var plans []models.WorkoutPlan
	if err := json.Unmarshal(body, &plans); err != nil {
		return nil, fmt.Errorf("httpclient: decode plans: %w", err)
	}
	return plans, nil
}

func (c *HTTPClient) ListMeasurements(ctx context.Context, _ uuid.UUID) ([]models.BodyMeasurement, error) {
	body, err := c.get(ctx, "/api/v1/measurements", nil)
	if err != nil {
		return nil, err
	}

	var measurements []models.BodyMeasurement
	if err := json.Unmarshal(body, &measurements); err != nil {
		return nil, fmt.Errorf("httpclient: decode measurements: %w", err)
	}
	return measurements, nil
}

// GetUser ignores the id argument; the remote API resolves the user from
// the bearer token.
func (c *HTTPClient) GetUser(ctx context.Context, _ uuid.UUID) (*models.User, error) {
	body, err := c.get(ctx, "/api/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("httpclient: decode user: %w", err)
	}
	return &user, nil
}

func (c *HTTPClient) SearchExercises(ctx context.Context, query string) ([]models.Exercise, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}

	body, err := c.get(ctx, "/api/v1/exercises", params)
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}
