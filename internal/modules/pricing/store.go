// README: Rate schedule catalog backed by PostgreSQL (read-only).
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farefloor/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetSchedule(ctx context.Context, tenant types.ID) (RateSchedule, error) {
	row := s.db.QueryRow(ctx, `
        SELECT rate_per_minute, rate_per_km, peak_surge_floor
        FROM rate_schedules
        WHERE tenant_id = $1`, string(tenant),
	)

	var sched RateSchedule
	err := row.Scan(&sched.RatePerMinute, &sched.RatePerKm, &sched.PeakSurgeFloor)
	if errors.Is(err, pgx.ErrNoRows) {
		return RateSchedule{}, ErrScheduleNotFound
	}
	if err != nil {
		return RateSchedule{}, err
	}
	if err := sched.Validate(); err != nil {
		return RateSchedule{}, fmt.Errorf("tenant %s: %w", tenant, err)
	}
	return sched, nil
}

func (s *Store) ListTenants(ctx context.Context) ([]types.ID, error) {
	rows, err := s.db.Query(ctx, `SELECT tenant_id FROM rate_schedules ORDER BY tenant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, types.ID(id))
	}
	return out, rows.Err()
}
