package service

import (
	"context"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/logger"
	"equipshare-backend/internal/repository"
	"equipshare-backend/internal/utils"
)

type bookingService struct {
	bookingRepo      repository.BookingRepository
	equipmentRepo    repository.EquipmentRepository
	availabilityRepo repository.AvailabilityRepository
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	equipmentRepo repository.EquipmentRepository,
	availabilityRepo repository.AvailabilityRepository,
) BookingService {
	return &bookingService{
		bookingRepo:      bookingRepo,
		equipmentRepo:    equipmentRepo,
		availabilityRepo: availabilityRepo,
	}
}

// CreateBooking prices the stay and hands the availability gate to the
// repository, which performs the check and the insert in one transaction.
// The total is locked in at creation and never recomputed.
func (s *bookingService) CreateBooking(ctx context.Context, guestID, equipmentID string, start, end time.Time, guestMessage string) (*domain.Booking, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if !eq.IsActive {
		return nil, domain.ErrNotFound
	}
	if eq.HostID == guestID {
		return nil, domain.ErrSelfBooking
	}

	start = utils.TruncateToDay(start)
	end = utils.TruncateToDay(end)
	if start.Before(utils.TruncateToDay(timeNow())) {
		return nil, domain.NewValidationError("start_date", "cannot book past dates")
	}

	total, err := utils.CalculateBookingTotal(eq, start, end)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		GuestID:         guestID,
		HostID:          eq.HostID,
		EquipmentID:     equipmentID,
		StartDate:       start,
		EndDate:         end,
		TotalPriceCents: total,
		Status:          domain.BookingStatusPending,
		GuestMessage:    guestMessage,
	}
	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "booking created",
		"booking_id", booking.ID, "equipment_id", equipmentID, "guest_id", guestID,
		"start", utils.FormatDate(start), "end", utils.FormatDate(end), "total_cents", total)
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != userID && b.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}
	return b, nil
}

// ConfirmBooking moves a pending booking to confirmed. Host only.
func (s *bookingService) ConfirmBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusConfirmed, "", func(b *domain.Booking) error {
		if b.HostID != hostID {
			return domain.ErrNotAuthorized
		}
		return nil
	})
}

// CancelBooking cancels a pending or confirmed booking. Either side may
// cancel.
func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusCancelled, "", func(b *domain.Booking) error {
		if b.GuestID != userID && b.HostID != userID {
			return domain.ErrNotAuthorized
		}
		return nil
	})
}

// CompleteBooking closes out a confirmed booking after the stay. Host only.
func (s *bookingService) CompleteBooking(ctx context.Context, hostID, bookingID string, hostNotes string) (*domain.Booking, error) {
	return s.transition(ctx, bookingID, domain.BookingStatusCompleted, hostNotes, func(b *domain.Booking) error {
		if b.HostID != hostID {
			return domain.ErrNotAuthorized
		}
		return nil
	})
}

func (s *bookingService) ListMyBookings(ctx context.Context, guestID string, status string) ([]domain.BookingDetail, error) {
	if err := validateStatusFilter(status); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByGuest(ctx, guestID, status)
}

func (s *bookingService) ListMyRentals(ctx context.Context, hostID string, status string) ([]domain.BookingDetail, error) {
	if err := validateStatusFilter(status); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByHost(ctx, hostID, status)
}

func (s *bookingService) transition(ctx context.Context, bookingID string, next domain.BookingStatus, hostNotes string, authorize func(*domain.Booking) error) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(b); err != nil {
		return nil, err
	}
	if !b.CanTransitionTo(next) {
		return nil, domain.ErrInvalidStatus
	}

	b.Status = next
	if hostNotes != "" {
		b.HostNotes = hostNotes
	}
	if err := s.bookingRepo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	// A cancellation releases the days the booking was holding.
	if next == domain.BookingStatusCancelled {
		if err := s.availabilityRepo.UnblockRange(ctx, b.EquipmentID, b.StartDate, b.EndDate); err != nil {
			logger.ErrorContext(ctx, "failed to release cancelled booking days",
				"booking_id", b.ID, "equipment_id", b.EquipmentID, "error", err)
		}
	}

	logger.InfoContext(ctx, "booking status changed", "booking_id", b.ID, "status", b.Status)
	return b, nil
}

func validateStatusFilter(status string) error {
	switch domain.BookingStatus(status) {
	case "", domain.BookingStatusPending, domain.BookingStatusConfirmed, domain.BookingStatusCancelled, domain.BookingStatusCompleted:
		return nil
	}
	return domain.NewValidationError("status", "unknown booking status")
}
