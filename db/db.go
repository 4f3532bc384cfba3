package db

import (
	"context"
	"fmt"

	"github.com/iamdew/yellostory-lunch/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Open creates the connection pool and checks that the database answers.
func Open(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return OpenDSN(ctx, cfg.DSN())
}

func OpenDSN(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
