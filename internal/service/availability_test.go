package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"equipshare-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAvailabilityService_SetDay(t *testing.T) {
	orig := timeNow
	timeNow = fixedNow
	defer func() { timeNow = orig }()

	ctx := context.Background()
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Host sets a day", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)
		availabilityRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.AvailabilityDay")).
			Return(&domain.AvailabilityDay{ID: "av-1", EquipmentID: "eq-1", Date: date, IsAvailable: false}, nil)

		day, err := svc.SetDay(ctx, "host-1", "eq-1", DayUpdate{Date: date, IsAvailable: false})
		assert.NoError(t, err)
		assert.False(t, day.IsAvailable)
	})

	t.Run("Non-host rejected", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)

		_, err := svc.SetDay(ctx, "guest-1", "eq-1", DayUpdate{Date: date, IsAvailable: false})
		assert.ErrorIs(t, err, domain.ErrNotAuthorized)
		availabilityRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("Past day rejected", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)

		past := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.SetDay(ctx, "host-1", "eq-1", DayUpdate{Date: past, IsAvailable: false})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("Non-positive override rejected", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)

		zero := int32(0)
		_, err := svc.SetDay(ctx, "host-1", "eq-1", DayUpdate{Date: date, IsAvailable: true, PriceOverrideCents: &zero})
		var vErr *domain.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}

func TestAvailabilityService_SetRange(t *testing.T) {
	orig := timeNow
	timeNow = fixedNow
	defer func() { timeNow = orig }()

	ctx := context.Background()
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)

	t.Run("All days applied in order", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)

		var seen []string
		availabilityRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.AvailabilityDay")).
			Run(func(args mock.Arguments) {
				d := args.Get(1).(*domain.AvailabilityDay)
				seen = append(seen, d.Date.Format("2006-01-02"))
			}).
			Return(&domain.AvailabilityDay{}, nil)

		results, err := svc.SetRange(ctx, "host-1", "eq-1", start, end, false, nil)
		assert.NoError(t, err)
		assert.Len(t, results, 5)
		assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14"}, seen)
		for _, r := range results {
			assert.True(t, r.OK)
		}
	})

	t.Run("Partial failure keeps going", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)

		calls := 0
		availabilityRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.AvailabilityDay")).
			Return(&domain.AvailabilityDay{}, nil).
			Run(func(args mock.Arguments) { calls++ }).
			Times(2)
		availabilityRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.AvailabilityDay")).
			Return(nil, errors.New("db down")).
			Once()
		availabilityRepo.On("Upsert", ctx, mock.AnythingOfType("*domain.AvailabilityDay")).
			Return(&domain.AvailabilityDay{}, nil)

		results, err := svc.SetRange(ctx, "host-1", "eq-1", start, end, false, nil)
		assert.NoError(t, err)
		assert.Len(t, results, 5)
		assert.True(t, results[0].OK)
		assert.True(t, results[1].OK)
		assert.False(t, results[2].OK)
		assert.Contains(t, results[2].Err, "db down")
		assert.True(t, results[3].OK)
		assert.True(t, results[4].OK)
	})

	t.Run("Inverted range rejected", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		equipmentRepo := new(MockEquipmentRepo)
		svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

		equipmentRepo.On("GetByID", ctx, "eq-1").Return(activeEquipment("host-1"), nil)

		_, err := svc.SetRange(ctx, "host-1", "eq-1", end, start, false, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})
}

func TestAvailabilityService_IsRangeAvailable(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)

	t.Run("No blocked days", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		svc := NewAvailabilityService(availabilityRepo, new(MockEquipmentRepo))

		availabilityRepo.On("CountBlocked", ctx, "eq-1", start, end).Return(int32(0), nil)

		ok, err := svc.IsRangeAvailable(ctx, "eq-1", start, end)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("One blocked day sinks the range", func(t *testing.T) {
		availabilityRepo := new(MockAvailabilityRepo)
		svc := NewAvailabilityService(availabilityRepo, new(MockEquipmentRepo))

		availabilityRepo.On("CountBlocked", ctx, "eq-1", start, end).Return(int32(1), nil)

		ok, err := svc.IsRangeAvailable(ctx, "eq-1", start, end)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestAvailabilityService_Quote(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC)

	availabilityRepo := new(MockAvailabilityRepo)
	equipmentRepo := new(MockEquipmentRepo)
	svc := NewAvailabilityService(availabilityRepo, equipmentRepo)

	eq := activeEquipment("host-1") // 4500/day
	equipmentRepo.On("GetByID", ctx, "eq-1").Return(eq, nil)

	override := int32(6000)
	availabilityRepo.On("ListRange", ctx, "eq-1", start, end).Return([]domain.AvailabilityDay{
		{EquipmentID: "eq-1", Date: start, IsAvailable: true, PriceOverrideCents: &override},
		{EquipmentID: "eq-1", Date: start.AddDate(0, 0, 1), IsAvailable: true},
	}, nil)

	// Day 1 overridden to 6000, days 2 and 3 at the 4500 daily price.
	total, err := svc.Quote(ctx, "eq-1", start, end)
	assert.NoError(t, err)
	assert.Equal(t, int32(15000), total)
}
