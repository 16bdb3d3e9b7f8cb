package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Khushi740/job-tracker/internal/types"
)

const jobColumns = `id, user_id, company, position, status, date_applied, salary,
	location, job_url, notes, priority, contacts, interviews, documents,
	reminders, tags, is_archived, last_updated, created_at, updated_at`

func (p *Postgres) CreateJob(ctx context.Context, job *types.JobApplication) (*types.JobApplication, error) {
	stored := cloneJob(job)
	if err := prepareForCreate(stored, time.Now().UTC()); err != nil {
		return nil, err
	}

	collections, err := marshalCollections(stored)
	if err != nil {
		return nil, err
	}

	_, err = p.pool.Exec(ctx,
		`INSERT INTO jobs (id, user_id, company, position, status, date_applied, salary,
		 location, job_url, notes, priority, contacts, interviews, documents,
		 reminders, tags, is_archived, last_updated, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		stored.ID, stored.UserID, stored.Company, stored.Position, stored.Status,
		stored.DateApplied, stored.Salary, stored.Location, stored.JobURL, stored.Notes,
		stored.Priority, collections[0], collections[1], collections[2], collections[3],
		collections[4], stored.IsArchived, stored.LastUpdated, stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return stored, nil
}

func (p *Postgres) GetJob(ctx context.Context, owner, id uuid.UUID) (*types.JobApplication, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND user_id = $2`,
		id, owner,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func (p *Postgres) ListJobs(ctx context.Context, owner uuid.UUID, opts ListOptions) ([]types.JobApplication, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 AND is_archived = FALSE`
	args := []any{owner}
	argNum := 2

	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}
	if opts.Company != "" {
		query += fmt.Sprintf(" AND company = $%d", argNum)
		args = append(args, opts.Company)
	}

	query += " ORDER BY date_applied DESC, created_at DESC"

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []types.JobApplication{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (p *Postgres) UpdateJob(ctx context.Context, owner, id uuid.UUID, upd *types.JobUpdate) (*types.JobApplication, error) {
	existing, err := p.GetJob(ctx, owner, id)
	if err != nil || existing == nil {
		return nil, err
	}

	now := time.Now().UTC()
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

	collections, err := marshalCollections(merged)
	if err != nil {
		return nil, err
	}

	// GREATEST keeps lastUpdated monotonic under concurrent writers.
	err = p.pool.QueryRow(ctx,
		`UPDATE jobs SET company = $3, position = $4, status = $5, date_applied = $6,
		 salary = $7, location = $8, job_url = $9, notes = $10, priority = $11,
		 contacts = $12, interviews = $13, documents = $14, reminders = $15, tags = $16,
		 is_archived = $17, last_updated = GREATEST(last_updated, $18), updated_at = $19
		 WHERE id = $1 AND user_id = $2
		 RETURNING last_updated`,
		merged.ID, merged.UserID, merged.Company, merged.Position, merged.Status,
		merged.DateApplied, merged.Salary, merged.Location, merged.JobURL, merged.Notes,
		merged.Priority, collections[0], collections[1], collections[2], collections[3],
		collections[4], merged.IsArchived, merged.LastUpdated, merged.UpdatedAt,
	).Scan(&merged.LastUpdated)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return merged, nil
}

func (p *Postgres) ArchiveJob(ctx context.Context, owner, id uuid.UUID) (*types.JobApplication, error) {
	archived := true
	return p.UpdateJob(ctx, owner, id, &types.JobUpdate{IsArchived: &archived})
}

func (p *Postgres) CountByStatus(ctx context.Context, owner uuid.UUID) (map[types.Status]int, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT status, COUNT(*) FROM jobs
		 WHERE user_id = $1 AND is_archived = FALSE
		 GROUP BY status`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	defer rows.Close()

	counts := zeroCounts()
	for rows.Next() {
		var status types.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// marshalCollections renders the nested collections as JSONB values, in
// column order: contacts, interviews, documents, reminders, tags.
func marshalCollections(j *types.JobApplication) ([5][]byte, error) {
	var out [5][]byte
	for i, v := range []any{
		emptySlice(j.Contacts), emptySlice(j.Interviews),
		emptySlice(j.Documents), emptySlice(j.Reminders), emptySlice(j.Tags),
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return out, fmt.Errorf("failed to marshal job collections: %w", err)
		}
		out[i] = b
	}
	return out, nil
}

// emptySlice keeps nil collections rendering as [] rather than null.
func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanJob(row pgx.Row) (*types.JobApplication, error) {
	var j types.JobApplication
	var contacts, interviews, documents, reminders, tags []byte

	err := row.Scan(
		&j.ID, &j.UserID, &j.Company, &j.Position, &j.Status, &j.DateApplied,
		&j.Salary, &j.Location, &j.JobURL, &j.Notes, &j.Priority,
		&contacts, &interviews, &documents, &reminders, &tags,
		&j.IsArchived, &j.LastUpdated, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{contacts, &j.Contacts},
		{interviews, &j.Interviews},
		{documents, &j.Documents},
		{reminders, &j.Reminders},
		{tags, &j.Tags},
	} {
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("failed to decode job collections: %w", err)
		}
	}
	return &j, nil
}
