package postgres

import (
	"context"
	"testing"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func equipmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "host_id", "title", "description", "equipment_type", "scooter_subtype", "stroller_subtype",
		"brand", "model", "year", "daily_price_cents", "weekly_price_cents", "monthly_price_cents",
		"location", "latitude", "longitude", "features", "images", "is_verified", "is_active", "created_at", "updated_at",
	})
}

func TestEquipmentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	eq := &domain.Equipment{
		HostID:          "host-1",
		Title:           "Heavy duty scooter",
		Description:     "Up to 400 lbs",
		EquipmentType:   domain.EquipmentTypeMobilityScooter,
		ScooterSubtype:  domain.ScooterSubtypeHeavyDuty,
		Brand:           "Pride",
		Model:           "Victory 10",
		DailyPriceCents: 4500,
		Location:        "Orlando, FL",
		Features:        []string{"basket", "usb_charger"},
		Images:          []string{},
		IsActive:        true,
	}

	mock.ExpectQuery(`INSERT INTO equipment`).
		WithArgs("host-1", "Heavy duty scooter", "Up to 400 lbs", domain.EquipmentTypeMobilityScooter,
			"heavy_duty", "", "Pride", "Victory 10", int32(0), int32(4500), int32(0), int32(0),
			"Orlando, FL", nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg(), false, true,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("eq-1"))

	err = repo.Create(ctx, eq)
	assert.NoError(t, err)
	assert.Equal(t, "eq-1", eq.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := equipmentRows().AddRow(
			"eq-1", "host-1", "Heavy duty scooter", "Up to 400 lbs", "mobility_scooter", "heavy_duty", "",
			"Pride", "Victory 10", 2023, 4500, 27000, 0,
			"Orlando, FL", 28.5, -81.4, "{basket}", "{}", true, true, time.Now(), time.Now(),
		)
		mock.ExpectQuery(`SELECT (.+) FROM equipment WHERE id = \$1`).
			WithArgs("eq-1").
			WillReturnRows(rows)

		eq, err := repo.GetByID(ctx, "eq-1")
		assert.NoError(t, err)
		assert.Equal(t, "eq-1", eq.ID)
		assert.Equal(t, domain.ScooterSubtypeHeavyDuty, eq.ScooterSubtype)
		assert.NotNil(t, eq.Latitude)
		assert.Equal(t, 28.5, *eq.Latitude)
		assert.Equal(t, []string{"basket"}, eq.Features)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM equipment WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(equipmentRows())

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEquipmentRepository_Search(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewEquipmentRepository(db)
	ctx := context.Background()

	t.Run("Type and subtype filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ FROM equipment WHERE is_active = \$1 AND equipment_type = \$2 AND scooter_subtype = \$3\) AS sub`).
			WithArgs(true, "mobility_scooter", "xl").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE is_active = \$1 AND equipment_type = \$2 AND scooter_subtype = \$3 ORDER BY created_at DESC LIMIT 20 OFFSET 0`).
			WithArgs(true, "mobility_scooter", "xl").
			WillReturnRows(equipmentRows().AddRow(
				"eq-2", "host-1", "XL scooter", "", "mobility_scooter", "xl", "",
				"", "", 0, 5500, 0, 0, "Tampa, FL", nil, nil, "{}", "{}", false, true, time.Now(), time.Now(),
			))

		items, total, err := repo.Search(ctx, repository.EquipmentFilter{
			EquipmentType: "mobility_scooter",
			Subtype:       "xl",
			Limit:         20,
			Offset:        0,
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, items, 1)
		assert.Equal(t, "eq-2", items[0].ID)
	})

	t.Run("Bounding box filter", func(t *testing.T) {
		bounds := &repository.GeoBounds{MinLat: 28.0, MaxLat: 29.0, MinLng: -82.0, MaxLng: -81.0}

		mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT .+ latitude >= .+ longitude <= .+\) AS sub`).
			WithArgs(true, 28.0, 29.0, -82.0, -81.0).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT .+ FROM equipment WHERE is_active = .+ latitude >= .+ longitude <= .+ ORDER BY created_at DESC LIMIT 20 OFFSET 0`).
			WithArgs(true, 28.0, 29.0, -82.0, -81.0).
			WillReturnRows(equipmentRows())

		items, total, err := repo.Search(ctx, repository.EquipmentFilter{
			Bounds: bounds,
			Limit:  20,
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(0), total)
		assert.Empty(t, items)
	})
}
