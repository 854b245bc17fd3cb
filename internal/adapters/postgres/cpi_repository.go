package postgres

import (
	"context"
	"fmt"

	"etbinflation/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CPIRepository struct {
	pool *pgxpool.Pool
}

func NewCPIRepository(pool *pgxpool.Pool) *CPIRepository {
	return &CPIRepository{pool: pool}
}

func (r *CPIRepository) LoadCPI(ctx context.Context) (map[domain.Period]float64, error) {
	const q = `select year, month, value from cpi_us`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to select cpi: %w", err)
	}
	defer rows.Close()

	values := make(map[domain.Period]float64)
	for rows.Next() {
		var (
			year, month int
			value       float64
		)
		if err = rows.Scan(&year, &month, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cpi row: %w", err)
		}
		values[domain.NewPeriod(year, month)] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cpi: %w", err)
	}
	return values, nil
}

// UpsertCPI inserts new months and overwrites revised ones.
func (r *CPIRepository) UpsertCPI(ctx context.Context, values map[domain.Period]float64) (int, error) {
	const q = `
        insert into cpi_us(year, month, value) values ($1, $2, $3)
        on conflict (year, month) do update set value = excluded.value;
    `

	batch := &pgx.Batch{}
	for p, v := range values {
		batch.Queue(q, p.Year, p.Month, v)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return i, fmt.Errorf("failed to upsert cpi: %w", err)
		}
	}
	return batch.Len(), nil
}
