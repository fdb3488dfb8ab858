package database

import (
	"cfb-trends-go/logging"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres wraps a pgx connection pool
type Postgres struct {
	pool   *pgxpool.Pool
	logger *logging.Logger
}

// NewPostgresConnection creates and validates a connection pool
func NewPostgresConnection(ctx context.Context, config Config) (*Postgres, error) {
	logger := logging.WithPrefix("Postgres")

	poolCfg, err := pgxpool.ParseConfig(config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolCfg.MaxConns = 4
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := boundedContext(ctx, config.timeout())
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Errorf("Failed to ping: %v", err)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Infof("Successfully connected to %s/%s", poolCfg.ConnConfig.Host, poolCfg.ConnConfig.Database)
	return &Postgres{pool: pool, logger: logger}, nil
}

// Ping checks the server is still reachable
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	p.logger.Info("Connection pool closed")
	return nil
}
