package postgres

import (
	"context"
	"testing"
	"time"

	"equipshare-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAvailabilityRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Insert or update resolves to one row", func(t *testing.T) {
		day := &domain.AvailabilityDay{
			EquipmentID: "eq-1",
			Date:        date,
			IsAvailable: false,
		}

		mock.ExpectQuery(`INSERT INTO availability .+ ON CONFLICT \(equipment_id, date\)`).
			WithArgs("eq-1", date, false, nil, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("av-1", time.Now()))

		res, err := repo.Upsert(ctx, day)
		assert.NoError(t, err)
		assert.Equal(t, "av-1", res.ID)
	})

	t.Run("Repeating the call is safe", func(t *testing.T) {
		override := int32(6000)
		day := &domain.AvailabilityDay{
			EquipmentID:        "eq-1",
			Date:               date,
			IsAvailable:        true,
			PriceOverrideCents: &override,
		}

		for i := 0; i < 2; i++ {
			mock.ExpectQuery(`INSERT INTO availability .+ ON CONFLICT \(equipment_id, date\)`).
				WithArgs("eq-1", date, true, &override, sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("av-1", time.Now()))

			res, err := repo.Upsert(ctx, day)
			assert.NoError(t, err)
			assert.Equal(t, "av-1", res.ID)
		}
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_SeedDays(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	// 365 days starting June 1st end on May 31st the following year.
	end := time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO availability .+ generate_series.+ ON CONFLICT \(equipment_id, date\) DO NOTHING`).
		WithArgs("eq-1", from, end, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 365))

	err = repo.SeedDays(ctx, "eq-1", from, 365)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_CountBlocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM availability`).
		WithArgs("eq-1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountBlocked(ctx, "eq-1", start, end)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), count)
}

func TestAvailabilityRepository_UnblockRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewAvailabilityRepository(db)
	ctx := context.Background()
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE availability SET is_available = true`).
		WithArgs("eq-1", start, end).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err = repo.UnblockRange(ctx, "eq-1", start, end)
	assert.NoError(t, err)
}
