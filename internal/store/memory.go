package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Khushi740/job-tracker/internal/types"
)

// ownerIndex tracks one user's record ids by the access patterns the
// listing and stats queries take: active records overall, by status, and
// by company. Archived records live only in the archived set and stay
// reachable by direct lookup.
type ownerIndex struct {
	active    map[uuid.UUID]struct{}
	archived  map[uuid.UUID]struct{}
	byStatus  map[types.Status]map[uuid.UUID]struct{}
	byCompany map[string]map[uuid.UUID]struct{}
}

func newOwnerIndex() *ownerIndex {
	return &ownerIndex{
		active:    make(map[uuid.UUID]struct{}),
		archived:  make(map[uuid.UUID]struct{}),
		byStatus:  make(map[types.Status]map[uuid.UUID]struct{}),
		byCompany: make(map[string]map[uuid.UUID]struct{}),
	}
}

func (ix *ownerIndex) add(j *types.JobApplication) {
	if j.IsArchived {
		ix.archived[j.ID] = struct{}{}
		return
	}
	ix.active[j.ID] = struct{}{}
	bs := ix.byStatus[j.Status]
	if bs == nil {
		bs = make(map[uuid.UUID]struct{})
		ix.byStatus[j.Status] = bs
	}
	bs[j.ID] = struct{}{}
	bc := ix.byCompany[j.Company]
	if bc == nil {
		bc = make(map[uuid.UUID]struct{})
		ix.byCompany[j.Company] = bc
	}
	bc[j.ID] = struct{}{}
}

func (ix *ownerIndex) remove(j *types.JobApplication) {
	delete(ix.archived, j.ID)
	delete(ix.active, j.ID)
	if bs := ix.byStatus[j.Status]; bs != nil {
		delete(bs, j.ID)
	}
	if bc := ix.byCompany[j.Company]; bc != nil {
		delete(bc, j.ID)
	}
}

// Memory is an in-process Store and UserStore. It backs tests and the
// --memory serve mode; data does not survive a restart.
type Memory struct {
	mu     sync.RWMutex
	jobs   map[uuid.UUID]*types.JobApplication
	owners map[uuid.UUID]*ownerIndex
	users  map[uuid.UUID]*types.User
	emails map[string]uuid.UUID

	now func() time.Time
}

var (
	_ Store     = (*Memory)(nil)
	_ UserStore = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		jobs:   make(map[uuid.UUID]*types.JobApplication),
		owners: make(map[uuid.UUID]*ownerIndex),
		users:  make(map[uuid.UUID]*types.User),
		emails: make(map[string]uuid.UUID),
		now:    time.Now,
	}
}

func (m *Memory) ownerIndexFor(owner uuid.UUID) *ownerIndex {
	ix := m.owners[owner]
	if ix == nil {
		ix = newOwnerIndex()
		m.owners[owner] = ix
	}
	return ix
}

func (m *Memory) CreateJob(_ context.Context, job *types.JobApplication) (*types.JobApplication, error) {
	stored := cloneJob(job)
	if err := prepareForCreate(stored, m.nowUTC()); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[stored.ID] = stored
	m.ownerIndexFor(stored.UserID).add(stored)
	return cloneJob(stored), nil
}

func (m *Memory) GetJob(_ context.Context, owner, id uuid.UUID) (*types.JobApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j := m.jobs[id]
	if j == nil || j.UserID != owner {
		return nil, nil
	}
	return cloneJob(j), nil
}

func (m *Memory) ListJobs(_ context.Context, owner uuid.UUID, opts ListOptions) ([]types.JobApplication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ix := m.owners[owner]
	if ix == nil {
		return []types.JobApplication{}, nil
	}

	ids := ix.active
	if opts.Status != "" {
		ids = ix.byStatus[opts.Status]
	}

	jobs := make([]types.JobApplication, 0, len(ids))
	for id := range ids {
		j := m.jobs[id]
		if opts.Company != "" {
			if _, ok := ix.byCompany[opts.Company][id]; !ok {
				continue
			}
		}
		jobs = append(jobs, *cloneJob(j))
	}

	sort.Slice(jobs, func(a, b int) bool {
		if !jobs[a].DateApplied.Equal(jobs[b].DateApplied.Time) {
			return jobs[a].DateApplied.After(jobs[b].DateApplied.Time)
		}
		return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
	})
	return jobs, nil
}

func (m *Memory) UpdateJob(_ context.Context, owner, id uuid.UUID, upd *types.JobUpdate) (*types.JobApplication, error) {
	now := m.nowUTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.jobs[id]
	if existing == nil || existing.UserID != owner {
		return nil, nil
	}

	merged := cloneJob(existing)
	upd.ApplyTo(merged)
	merged.ID = existing.ID
	merged.UserID = existing.UserID
	merged.CreatedAt = existing.CreatedAt
	merged.Normalize(now)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	touch(merged, now)

	ix := m.ownerIndexFor(owner)
	ix.remove(existing)
	ix.add(merged)
	m.jobs[id] = merged
	return cloneJob(merged), nil
}

func (m *Memory) ArchiveJob(ctx context.Context, owner, id uuid.UUID) (*types.JobApplication, error) {
	archived := true
	return m.UpdateJob(ctx, owner, id, &types.JobUpdate{IsArchived: &archived})
}

func (m *Memory) CountByStatus(_ context.Context, owner uuid.UUID) (map[types.Status]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := zeroCounts()
	if ix := m.owners[owner]; ix != nil {
		for status, ids := range ix.byStatus {
			counts[status] = len(ids)
		}
	}
	return counts, nil
}

func (m *Memory) CreateUser(_ context.Context, name, email, passwordHash string) (*types.User, error) {
	now := m.nowUTC()
	u := &types.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	m.emails[u.Email] = u.ID
	out := *u
	return &out, nil
}

func (m *Memory) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u := m.users[id]
	if u == nil {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[email]
	if !ok {
		return nil, nil
	}
	out := *m.users[id]
	return &out, nil
}

func (m *Memory) nowUTC() time.Time {
	return m.now().UTC()
}

// cloneJob deep-copies a record so callers never alias stored state.
func cloneJob(j *types.JobApplication) *types.JobApplication {
	out := *j
	if j.Salary != nil {
		v := *j.Salary
		out.Salary = &v
	}
	out.Contacts = append([]types.Contact(nil), j.Contacts...)
	out.Interviews = append([]types.Interview(nil), j.Interviews...)
	out.Documents = append([]types.Document(nil), j.Documents...)
	out.Reminders = append([]types.Reminder(nil), j.Reminders...)
	out.Tags = append([]string(nil), j.Tags...)
	return &out
}
