package database

import (
	"cfb-trends-go/logging"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const seasonCacheCollection = "season_cache"

// MongoSeasonCacheRepository stores season payloads in the season_cache collection
type MongoSeasonCacheRepository struct {
	db         *MongoDB
	collection *mongo.Collection
	logger     *logging.Logger
}

func NewMongoSeasonCacheRepository(db *MongoDB) *MongoSeasonCacheRepository {
	collection := db.GetCollection(seasonCacheCollection)
	logger := logging.WithPrefix("mongo_season_cache")

	// One document per (season, conference, kind)
	ctx, cancel := WithShortTimeout()
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "season", Value: 1}, {Key: "conference", Value: 1}, {Key: "kind", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Errorf("Failed to create index on %s collection: %v", seasonCacheCollection, err)
	}

	return &MongoSeasonCacheRepository{
		db:         db,
		collection: collection,
		logger:     logger,
	}
}

func keyFilter(key CacheKey) bson.M {
	return bson.M{"season": key.Season, "conference": key.Conference, "kind": key.Kind}
}

func (r *MongoSeasonCacheRepository) Get(ctx context.Context, key CacheKey) (*CacheEntry, error) {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	filter := keyFilter(key)
	filter["expires_at"] = bson.M{"$gt": time.Now().UTC()}

	var entry CacheEntry
	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to find cache entry %s: %w", key, err)
	}

	return &entry, nil
}

func (r *MongoSeasonCacheRepository) Put(ctx context.Context, entry *CacheEntry) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, keyFilter(entry.CacheKey), entry, opts); err != nil {
		return fmt.Errorf("failed to upsert cache entry %s: %w", entry.CacheKey, err)
	}

	r.logger.Debugf("Stored %s (%d bytes, expires %s)", entry.CacheKey, len(entry.Payload), entry.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (r *MongoSeasonCacheRepository) Invalidate(ctx context.Context, season int, conference string) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"season": season, "conference": conference})
	if err != nil {
		return fmt.Errorf("failed to invalidate season %d conference %q: %w", season, conference, err)
	}

	r.logger.Infof("Invalidated %d cache entries for season %d conference=%q", result.DeletedCount, season, conference)
	return nil
}

// Close disconnects the underlying client
func (r *MongoSeasonCacheRepository) Close() error {
	return r.db.Close()
}

// Ping checks the backing store is reachable
func (r *MongoSeasonCacheRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
