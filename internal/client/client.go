// Package client is a Go client for the job tracker REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/Khushi740/job-tracker/internal/stats"
	"github.com/Khushi740/job-tracker/internal/types"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string // per-field messages on validation failures
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s (%d field errors)", e.StatusCode, e.Message, len(e.Errors))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the job tracker API. It is safe for sequential use; the
// bearer token is set once by Register or Login.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// SetToken sets the bearer token used on job routes.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListFilter narrows a listing request.
type ListFilter struct {
	Status  types.Status
	Company string
}

type jobEnvelope struct {
	Message string                `json:"message"`
	Job     *types.JobApplication `json:"job"`
}

type jobsEnvelope struct {
	Message string                 `json:"message"`
	Count   int                    `json:"count"`
	Jobs    []types.JobApplication `json:"jobs"`
}

type statsEnvelope struct {
	Message string         `json:"message"`
	Stats   *stats.Summary `json:"stats"`
}

// Register creates an account and keeps its token for later calls.
func (c *Client) Register(ctx context.Context, name, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// CreateJob stores a new application record.
func (c *Client) CreateJob(ctx context.Context, job *types.JobApplication) (*types.JobApplication, error) {
	var env jobEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/jobs", job, &env); err != nil {
		return nil, err
	}
	return env.Job, nil
}

// ListJobs returns the caller's non-archived records, newest first.
func (c *Client) ListJobs(ctx context.Context, filter ListFilter) ([]types.JobApplication, error) {
	path := "/api/jobs"
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Company != "" {
		q.Set("company", filter.Company)
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var env jobsEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Jobs, nil
}

// GetJob fetches one record by ID.
func (c *Client) GetJob(ctx context.Context, id uuid.UUID) (*types.JobApplication, error) {
	var env jobEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/jobs/"+id.String(), nil, &env); err != nil {
		return nil, err
	}
	return env.Job, nil
}

// UpdateJob applies a partial update to a record.
func (c *Client) UpdateJob(ctx context.Context, id uuid.UUID, upd *types.JobUpdate) (*types.JobApplication, error) {
	var env jobEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/jobs/"+id.String(), upd, &env); err != nil {
		return nil, err
	}
	return env.Job, nil
}

// ArchiveJob soft-deletes a record.
func (c *Client) ArchiveJob(ctx context.Context, id uuid.UUID) (*types.JobApplication, error) {
	var env jobEnvelope
	if err := c.do(ctx, http.MethodDelete, "/api/jobs/"+id.String(), nil, &env); err != nil {
		return nil, err
	}
	return env.Job, nil
}

// Stats returns per-status counts and derived rates.
func (c *Client) Stats(ctx context.Context) (*stats.Summary, error) {
	var env statsEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/jobs/stats", nil, &env); err != nil {
		return nil, err
	}
	return env.Stats, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Message string   `json:"message"`
			Errors  []string `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
			apiErr.Message = envelope.Message
			apiErr.Errors = envelope.Errors
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
