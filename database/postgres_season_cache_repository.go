package database

import (
	"cfb-trends-go/logging"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const createSeasonCacheTable = `
CREATE TABLE IF NOT EXISTS season_cache (
	season      INTEGER     NOT NULL,
	conference  TEXT        NOT NULL,
	kind        TEXT        NOT NULL,
	payload     JSONB       NOT NULL,
	fetched_at  TIMESTAMPTZ NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (season, conference, kind)
)`

const upsertSeasonCache = `
INSERT INTO season_cache (season, conference, kind, payload, fetched_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (season, conference, kind) DO UPDATE SET
	payload    = EXCLUDED.payload,
	fetched_at = EXCLUDED.fetched_at,
	expires_at = EXCLUDED.expires_at`

const selectSeasonCache = `
SELECT payload, fetched_at, expires_at
FROM season_cache
WHERE season = $1 AND conference = $2 AND kind = $3 AND expires_at > $4`

// PostgresSeasonCacheRepository stores season payloads in the season_cache table
type PostgresSeasonCacheRepository struct {
	db     *Postgres
	logger *logging.Logger
}

// NewPostgresSeasonCacheRepository creates the table if needed
func NewPostgresSeasonCacheRepository(ctx context.Context, db *Postgres) (*PostgresSeasonCacheRepository, error) {
	ctx, cancel := boundedContext(ctx, MediumTimeout)
	defer cancel()

	if _, err := db.pool.Exec(ctx, createSeasonCacheTable); err != nil {
		return nil, fmt.Errorf("create season_cache table: %w", err)
	}

	return &PostgresSeasonCacheRepository{
		db:     db,
		logger: logging.WithPrefix("pg_season_cache"),
	}, nil
}

func (r *PostgresSeasonCacheRepository) Get(ctx context.Context, key CacheKey) (*CacheEntry, error) {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	entry := CacheEntry{CacheKey: key}
	err := r.db.pool.QueryRow(ctx, selectSeasonCache, key.Season, key.Conference, string(key.Kind), time.Now().UTC()).
		Scan(&entry.Payload, &entry.FetchedAt, &entry.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("query cache entry %s: %w", key, err)
	}

	return &entry, nil
}

func (r *PostgresSeasonCacheRepository) Put(ctx context.Context, entry *CacheEntry) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	_, err := r.db.pool.Exec(ctx, upsertSeasonCache,
		entry.Season, entry.Conference, string(entry.Kind), string(entry.Payload),
		entry.FetchedAt.UTC(), entry.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("upsert cache entry %s: %w", entry.CacheKey, err)
	}

	r.logger.Debugf("Stored %s (%d bytes, expires %s)", entry.CacheKey, len(entry.Payload), entry.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (r *PostgresSeasonCacheRepository) Invalidate(ctx context.Context, season int, conference string) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	tag, err := r.db.pool.Exec(ctx, `DELETE FROM season_cache WHERE season = $1 AND conference = $2`, season, conference)
	if err != nil {
		return fmt.Errorf("invalidate season %d conference %q: %w", season, conference, err)
	}

	r.logger.Infof("Invalidated %d cache entries for season %d conference=%q", tag.RowsAffected(), season, conference)
	return nil
}

// Close closes the underlying pool
func (r *PostgresSeasonCacheRepository) Close() error {
	return r.db.Close()
}

// Ping checks the backing store is reachable
func (r *PostgresSeasonCacheRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
