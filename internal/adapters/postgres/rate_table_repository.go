package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateTableRepository struct {
	pool *pgxpool.Pool
}

func NewRateTableRepository(pool *pgxpool.Pool) *RateTableRepository {
	return &RateTableRepository{pool: pool}
}

func (r *RateTableRepository) LoadRates(ctx context.Context) (map[string]float64, error) {
	const q = `select period, rate from exchange_rates`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to select exchange rates: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]float64)
	for rows.Next() {
		var (
			period string
			rate   float64
		)
		if err = rows.Scan(&period, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		raw[period] = rate
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exchange rates: %w", err)
	}
	return raw, nil
}

// ReplaceRates swaps the stored table for raw in a single transaction.
func (r *RateTableRepository) ReplaceRates(ctx context.Context, raw map[string]float64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `delete from exchange_rates`); err != nil {
			return fmt.Errorf("failed to clear exchange rates: %w", err)
		}
		rows := make([][]any, 0, len(raw))
		for period, rate := range raw {
			rows = append(rows, []any{period, rate})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"exchange_rates"}, []string{"period", "rate"}, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("failed to insert exchange rates: %w", err)
		}
		return nil
	})
}
