package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const seenRecordsDDL = `
CREATE TABLE IF NOT EXISTS seen_records (
  key TEXT PRIMARY KEY,
  expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_seen_records_expires_at ON seen_records(expires_at);
`

const (
	selectSeenSQL = `SELECT EXISTS (SELECT 1 FROM seen_records WHERE key = $1 AND expires_at > $2)`
	upsertSeenSQL = `
INSERT INTO seen_records (key, expires_at) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET expires_at = EXCLUDED.expires_at`
	sweepSeenSQL = `DELETE FROM seen_records WHERE expires_at <= $1`
)

// pgStore keeps seen markers in a shared Postgres table so several exporters
// can share one dedupe window. Expiry is compared against the store clock,
// not the database clock.
type pgStore struct {
	pool  *pgxpool.Pool
	ttl   time.Duration
	sweep *sweepGate
	now   func() time.Time
}

func openPostgres(ctx context.Context, dsn string, opts Options) (Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 4
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	// No arguments: pgx sends this over the simple protocol, which allows
	// several statements.
	if _, err := pool.Exec(ctx, seenRecordsDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init seen_records table: %w", err)
	}

	return &pgStore{
		pool:  pool,
		ttl:   opts.RecordTTL,
		sweep: newSweepGate(opts.CleanupInterval, time.Now()),
		now:   time.Now,
	}, nil
}

func (p *pgStore) Close() error {
	if p == nil || p.pool == nil {
		return nil
	}
	p.pool.Close()
	return nil
}

func (p *pgStore) SeenRecord(ctx context.Context, key string) (bool, error) {
	now := p.now().UTC()
	if err := p.sweepExpired(ctx, now); err != nil {
		return false, err
	}

	var seen bool
	if err := p.pool.QueryRow(ctx, selectSeenSQL, key, now).Scan(&seen); err != nil {
		return false, fmt.Errorf("query seen record: %w", err)
	}
	return seen, nil
}

// MarkRecord inserts key or pushes its expiry forward when already present.
func (p *pgStore) MarkRecord(ctx context.Context, key string) error {
	now := p.now().UTC()
	if err := p.sweepExpired(ctx, now); err != nil {
		return err
	}
	if _, err := p.pool.Exec(ctx, upsertSeenSQL, key, now.Add(p.ttl)); err != nil {
		return fmt.Errorf("mark record: %w", err)
	}
	return nil
}

func (p *pgStore) sweepExpired(ctx context.Context, now time.Time) error {
	return p.sweep.run(now, func() error {
		if _, err := p.pool.Exec(ctx, sweepSeenSQL, now); err != nil {
			return fmt.Errorf("cleanup seen records: %w", err)
		}
		return nil
	})
}
