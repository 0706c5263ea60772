package postgres

import (
	"context"
	"database/sql"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// Upsert relies on the UNIQUE (equipment_id, date) constraint: concurrent
// calls for the same day resolve to a single row, and re-applying the same
// arguments is a no-op beyond refreshing the flags.
func (r *availabilityRepository) Upsert(ctx context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error) {
	query := `INSERT INTO availability (equipment_id, date, is_available, price_override_cents, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (equipment_id, date)
	          DO UPDATE SET is_available = EXCLUDED.is_available, price_override_cents = EXCLUDED.price_override_cents
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, day.EquipmentID, day.Date, day.IsAvailable, day.PriceOverrideCents, time.Now()).
		Scan(&day.ID, &day.CreatedAt)
	if err != nil {
		return nil, err
	}
	return day, nil
}

// SeedDays materializes the default-available ledger for a new listing in
// one statement. Existing rows keep their flags.
func (r *availabilityRepository) SeedDays(ctx context.Context, equipmentID string, from time.Time, days int) error {
	query := `INSERT INTO availability (equipment_id, date, is_available, created_at)
	          SELECT $1, d::date, true, $4
	          FROM generate_series($2::date, $3::date, '1 day') AS d
	          ON CONFLICT (equipment_id, date) DO NOTHING`
	end := from.AddDate(0, 0, days-1)
	_, err := r.db.ExecContext(ctx, query, equipmentID, from, end, time.Now())
	return err
}

func (r *availabilityRepository) ListRange(ctx context.Context, equipmentID string, start, end time.Time) ([]domain.AvailabilityDay, error) {
	query := `SELECT id, equipment_id, date, is_available, price_override_cents, created_at
	          FROM availability WHERE equipment_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, equipmentID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.AvailabilityDay
	for rows.Next() {
		var d domain.AvailabilityDay
		if err := rows.Scan(&d.ID, &d.EquipmentID, &d.Date, &d.IsAvailable, &d.PriceOverrideCents, &d.CreatedAt); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// UnblockRange re-opens the days a cancelled booking was holding. Any
// manual host block inside the range is re-opened too; the host can
// re-block from the calendar.
func (r *availabilityRepository) UnblockRange(ctx context.Context, equipmentID string, start, end time.Time) error {
	query := `UPDATE availability SET is_available = true WHERE equipment_id = $1 AND date BETWEEN $2 AND $3`
	_, err := r.db.ExecContext(ctx, query, equipmentID, start, end)
	return err
}

// CountBlocked counts days in the range with an explicit is_available=false
// row. Days without a row are available by default, so zero means the
// whole range is bookable.
func (r *availabilityRepository) CountBlocked(ctx context.Context, equipmentID string, start, end time.Time) (int32, error) {
	query := `SELECT count(*) FROM availability WHERE equipment_id = $1 AND date BETWEEN $2 AND $3 AND is_available = false`
	var count int32
	err := r.db.QueryRowContext(ctx, query, equipmentID, start, end).Scan(&count)
	return count, err
}
