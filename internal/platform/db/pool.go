package db

import (
	"context"
	"fmt"

	"etbinflation/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Open connects to Postgres, pings it and applies pending migrations.
// The pool is closed again if any step fails.
func Open(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("invalid db_server config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	version, err := Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"host":           cfg.Host,
		"db":             cfg.Name,
		"max_conns":      poolCfg.MaxConns,
		"schema_version": version,
	}).Info("Postgres pool ready")
	return pool, nil
}
