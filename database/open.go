package database

import (
	"context"
	"fmt"
)

// Backend names accepted by OpenSeasonCache
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
	BackendNone     = "none"
)

// OpenSeasonCache connects the season cache for the named backend
func OpenSeasonCache(ctx context.Context, backend string, config Config) (SeasonCache, error) {
	switch backend {
	case BackendMongo:
		db, err := NewMongoConnection(config)
		if err != nil {
			return nil, err
		}
		return NewMongoSeasonCacheRepository(db), nil
	case BackendPostgres:
		db, err := NewPostgresConnection(ctx, config)
		if err != nil {
			return nil, err
		}
		repo, err := NewPostgresSeasonCacheRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	case BackendMemory:
		return NewMemorySeasonCache(), nil
	case BackendNone, "":
		return NoopSeasonCache{}, nil
	default:
		return nil, fmt.Errorf("unknown season cache backend %q", backend)
	}
}
