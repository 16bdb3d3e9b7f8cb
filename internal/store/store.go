// Package store persists job-application records keyed by owning user.
//
// Both implementations enforce the same contract: candidate records are
// validated before create or update (every violated field reported at
// once), lookups are scoped to the owning user, archived records are
// excluded from listings and status counts, and lastUpdated is recomputed
// on every accepted mutation.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Khushi740/job-tracker/internal/types"
)

// ListOptions narrows a listing query. The zero value lists every
// non-archived record for the owner, ordered by dateApplied descending.
type ListOptions struct {
	Status  types.Status // filter to one status
	Company string       // exact match on company
}

// Store is the record store contract. A record owned by a different user
// behaves exactly like an absent one (nil, nil) so existence is never
// leaked across owners. Concurrent updates resolve last-write-wins.
type Store interface {
	CreateJob(ctx context.Context, job *types.JobApplication) (*types.JobApplication, error)
	GetJob(ctx context.Context, owner, id uuid.UUID) (*types.JobApplication, error)
	ListJobs(ctx context.Context, owner uuid.UUID, opts ListOptions) ([]types.JobApplication, error)
	UpdateJob(ctx context.Context, owner, id uuid.UUID, upd *types.JobUpdate) (*types.JobApplication, error)
	ArchiveJob(ctx context.Context, owner, id uuid.UUID) (*types.JobApplication, error)
	CountByStatus(ctx context.Context, owner uuid.UUID) (map[types.Status]int, error)
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*types.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

// prepareForCreate normalizes and validates a candidate record and stamps
// the generated fields. The owner must already be set by the caller.
func prepareForCreate(j *types.JobApplication, now time.Time) error {
	j.ID = uuid.New()
	j.Normalize(now)
	if err := j.Validate(); err != nil {
		return err
	}
	j.CreatedAt = now
	j.UpdatedAt = now
	j.LastUpdated = now
	return nil
}

// touch advances lastUpdated without ever moving it backwards.
func touch(j *types.JobApplication, now time.Time) {
	if now.After(j.LastUpdated) {
		j.LastUpdated = now
	}
	j.UpdatedAt = now
}

// zeroCounts returns a status-count map with every status present.
func zeroCounts() map[types.Status]int {
	counts := make(map[types.Status]int, len(types.Statuses))
	for _, s := range types.Statuses {
		counts[s] = 0
	}
	return counts
}
