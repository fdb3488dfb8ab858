package database

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned when no fresh entry exists for a key
var ErrCacheMiss = errors.New("cache miss")

// CacheKind names the dataset stored in a cache entry
type CacheKind string

const (
	KindGames CacheKind = "games"
	KindLines CacheKind = "lines"
)

// CacheKey identifies one fetched dataset. An empty conference means the whole season.
type CacheKey struct {
	Season     int       `json:"season" bson:"season"`
	Conference string    `json:"conference" bson:"conference"`
	Kind       CacheKind `json:"kind" bson:"kind"`
}

func (k CacheKey) String() string {
	conference := k.Conference
	if conference == "" {
		conference = "all"
	}
	return fmt.Sprintf("%d/%s/%s", k.Season, conference, k.Kind)
}

// CacheEntry is a raw upstream JSON payload with its freshness window
type CacheEntry struct {
	CacheKey  `bson:",inline"`
	Payload   []byte    `json:"payload" bson:"payload"`
	FetchedAt time.Time `json:"fetched_at" bson:"fetched_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// IsExpired reports whether the entry is stale at now
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// SeasonCache persists fetched season data between process restarts.
// Get returns ErrCacheMiss for absent or expired entries.
type SeasonCache interface {
	Get(ctx context.Context, key CacheKey) (*CacheEntry, error)
	Put(ctx context.Context, entry *CacheEntry) error
	Invalidate(ctx context.Context, season int, conference string) error
	Close() error
}

// NoopSeasonCache never stores anything. Used when DB_BACKEND=none.
type NoopSeasonCache struct{}

func (NoopSeasonCache) Get(context.Context, CacheKey) (*CacheEntry, error) {
	return nil, ErrCacheMiss
}

func (NoopSeasonCache) Put(context.Context, *CacheEntry) error { return nil }

func (NoopSeasonCache) Invalidate(context.Context, int, string) error { return nil }

func (NoopSeasonCache) Close() error { return nil }
