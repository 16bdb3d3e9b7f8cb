package client

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Khushi740/job-tracker/internal/types"
)

// AppState keeps a local cache of the user's records on top of a Client,
// the way an interactive frontend would. Mutations go through the server
// and the cache is patched with the returned record.
type AppState struct {
	client *Client
	jobs   []types.JobApplication
}

// NewAppState wraps a client with an empty cache. Call Refresh to load.
func NewAppState(c *Client) *AppState {
	return &AppState{client: c}
}

// Refresh replaces the cache with the server's current listing.
func (a *AppState) Refresh(ctx context.Context) error {
	jobs, err := a.client.ListJobs(ctx, ListFilter{})
	if err != nil {
		return err
	}
	a.jobs = jobs
	return nil
}

// Jobs returns the cached records, newest first.
func (a *AppState) Jobs() []types.JobApplication {
	out := make([]types.JobApplication, len(a.jobs))
	copy(out, a.jobs)
	return out
}

// Add creates a record and inserts it into the cache in order.
func (a *AppState) Add(ctx context.Context, job *types.JobApplication) (*types.JobApplication, error) {
	created, err := a.client.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}
	a.jobs = append(a.jobs, *created)
	a.resort()
	return created, nil
}

// Update applies a partial update and patches the cached record.
func (a *AppState) Update(ctx context.Context, id uuid.UUID, upd *types.JobUpdate) (*types.JobApplication, error) {
	updated, err := a.client.UpdateJob(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	for i := range a.jobs {
		if a.jobs[i].ID == id {
			a.jobs[i] = *updated
			break
		}
	}
	a.resort()
	return updated, nil
}

// Archive soft-deletes a record and drops it from the cache.
func (a *AppState) Archive(ctx context.Context, id uuid.UUID) error {
	if _, err := a.client.ArchiveJob(ctx, id); err != nil {
		return err
	}
	for i := range a.jobs {
		if a.jobs[i].ID == id {
			a.jobs = append(a.jobs[:i], a.jobs[i+1:]...)
			break
		}
	}
	return nil
}

// Search returns cached records whose company or position contains the
// query, case-insensitively.
func (a *AppState) Search(query string) []types.JobApplication {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return a.Jobs()
	}
	var out []types.JobApplication
	for _, j := range a.jobs {
		if strings.Contains(strings.ToLower(j.Company), q) ||
			strings.Contains(strings.ToLower(j.Position), q) {
			out = append(out, j)
		}
	}
	return out
}

// FilterByStatus returns cached records in the given status.
func (a *AppState) FilterByStatus(status types.Status) []types.JobApplication {
	var out []types.JobApplication
	for _, j := range a.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out
}

func (a *AppState) resort() {
	sort.SliceStable(a.jobs, func(i, k int) bool {
		return a.jobs[i].DateApplied.After(a.jobs[k].DateApplied.Time)
	})
}
