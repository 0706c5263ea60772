package service

import (
	"context"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
	"equipshare-backend/internal/utils"
)

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	equipmentRepo    repository.EquipmentRepository
}

func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepository,
	equipmentRepo repository.EquipmentRepository,
) AvailabilityService {
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		equipmentRepo:    equipmentRepo,
	}
}

// SetDay writes one calendar day. Only the listing's host may edit the
// calendar, and past days are immutable.
func (s *availabilityService) SetDay(ctx context.Context, userID string, equipmentID string, update DayUpdate) (*domain.AvailabilityDay, error) {
	if err := s.checkOwnership(ctx, userID, equipmentID); err != nil {
		return nil, err
	}
	return s.upsertDay(ctx, equipmentID, update)
}

// SetRange applies one update to every day in the inclusive range. Days are
// processed in date order and failures are reported per day without
// aborting the batch.
func (s *availabilityService) SetRange(ctx context.Context, userID string, equipmentID string, start, end time.Time, isAvailable bool, priceOverrideCents *int32) ([]DayResult, error) {
	if err := s.checkOwnership(ctx, userID, equipmentID); err != nil {
		return nil, err
	}

	dates, err := utils.ExpandDateRange(start, end)
	if err != nil {
		return nil, err
	}

	results := make([]DayResult, 0, len(dates))
	for _, d := range dates {
		_, err := s.upsertDay(ctx, equipmentID, DayUpdate{
			Date:               d,
			IsAvailable:        isAvailable,
			PriceOverrideCents: priceOverrideCents,
		})
		res := DayResult{Date: utils.FormatDate(d), OK: err == nil}
		if err != nil {
			res.Err = err.Error()
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *availabilityService) GetCalendar(ctx context.Context, equipmentID string, start, end time.Time) ([]domain.AvailabilityDay, error) {
	start = utils.TruncateToDay(start)
	end = utils.TruncateToDay(end)
	if start.After(end) {
		return nil, domain.ErrInvalidRange
	}
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.availabilityRepo.ListRange(ctx, equipmentID, start, end)
}

// IsRangeAvailable reports whether every day from start to end inclusive is
// bookable. Days without a ledger row count as available.
func (s *availabilityService) IsRangeAvailable(ctx context.Context, equipmentID string, start, end time.Time) (bool, error) {
	start = utils.TruncateToDay(start)
	end = utils.TruncateToDay(end)
	if start.After(end) {
		return false, domain.ErrInvalidRange
	}

	blocked, err := s.availabilityRepo.CountBlocked(ctx, equipmentID, start, end)
	if err != nil {
		return false, err
	}
	return blocked == 0, nil
}

// Quote prices the stay day by day, honoring per-day price overrides. This
// is the display quote; the booking total uses the flat tier pricing.
func (s *availabilityService) Quote(ctx context.Context, equipmentID string, start, end time.Time) (int32, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return 0, err
	}

	days, err := s.availabilityRepo.ListRange(ctx, equipmentID, utils.TruncateToDay(start), utils.TruncateToDay(end))
	if err != nil {
		return 0, err
	}

	overrides := make(map[string]int32)
	for _, d := range days {
		if d.PriceOverrideCents != nil {
			overrides[utils.FormatDate(d.Date)] = *d.PriceOverrideCents
		}
	}
	return utils.QuoteWithOverrides(eq, start, end, overrides)
}

func (s *availabilityService) checkOwnership(ctx context.Context, userID, equipmentID string) error {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if eq.HostID != userID {
		return domain.ErrNotAuthorized
	}
	return nil
}

func (s *availabilityService) upsertDay(ctx context.Context, equipmentID string, update DayUpdate) (*domain.AvailabilityDay, error) {
	date := utils.TruncateToDay(update.Date)
	if date.Before(utils.TruncateToDay(timeNow())) {
		return nil, domain.NewValidationError("date", "cannot edit past days")
	}
	if update.PriceOverrideCents != nil && *update.PriceOverrideCents <= 0 {
		return nil, domain.NewValidationError("price_override_cents", "must be positive")
	}

	return s.availabilityRepo.Upsert(ctx, &domain.AvailabilityDay{
		EquipmentID:        equipmentID,
		Date:               date,
		IsAvailable:        update.IsAvailable,
		PriceOverrideCents: update.PriceOverrideCents,
	})
}
