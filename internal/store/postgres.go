package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres backs the store with a PostgreSQL connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var (
	_ Store     = (*Postgres)(nil)
	_ UserStore = (*Postgres)(nil)
)

// Connect establishes a connection pool and ensures the schema exists.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// The composite indexes match the access patterns of the API: per-user
// status filters and counts, per-user listing newest-first, per-user
// company filters, and the archived partition.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	company TEXT NOT NULL,
	position TEXT NOT NULL,
	status TEXT NOT NULL,
	date_applied DATE NOT NULL,
	salary NUMERIC,
	location TEXT NOT NULL DEFAULT '',
	job_url TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	priority TEXT NOT NULL,
	contacts JSONB NOT NULL DEFAULT '[]',
	interviews JSONB NOT NULL DEFAULT '[]',
	documents JSONB NOT NULL DEFAULT '[]',
	reminders JSONB NOT NULL DEFAULT '[]',
	tags JSONB NOT NULL DEFAULT '[]',
	is_archived BOOLEAN NOT NULL DEFAULT FALSE,
	last_updated TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_user_status ON jobs (user_id, status);
CREATE INDEX IF NOT EXISTS idx_jobs_user_date_applied ON jobs (user_id, date_applied DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_user_company ON jobs (user_id, company);
CREATE INDEX IF NOT EXISTS idx_jobs_user_archived ON jobs (user_id, is_archived);
`
