package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daap14/crewdesk/internal/project"
	"github.com/daap14/crewdesk/internal/teammate"
)

//go:embed schema_postgres.sql
var postgresSchema string

func openPostgres(ctx context.Context, databaseURL string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{
		driver:    DriverPostgres,
		projects:  project.NewPostgresRepository(pool),
		teammates: teammate.NewPostgresRepository(pool),
		ping:      pool.Ping,
		close: func() error {
			pool.Close()
			return nil
		},
	}, nil
}
