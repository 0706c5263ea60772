package service

import (
	"context"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/logger"
	"equipshare-backend/internal/repository"
	"equipshare-backend/internal/utils"
)

var documentTypes = map[string]bool{
	"insurance":    true,
	"registration": true,
	"inspection":   true,
	"manual":       true,
}

type equipmentService struct {
	equipmentRepo    repository.EquipmentRepository
	availabilityRepo repository.AvailabilityRepository
	userRepo         repository.UserRepository
}

func NewEquipmentService(
	equipmentRepo repository.EquipmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	userRepo repository.UserRepository,
) EquipmentService {
	return &equipmentService{
		equipmentRepo:    equipmentRepo,
		availabilityRepo: availabilityRepo,
		userRepo:         userRepo,
	}
}

// CreateEquipment validates the listing, persists it, and seeds the
// availability ledger for the full horizon. The host flag on the user is
// set on their first listing.
func (s *equipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Create(ctx, eq); err != nil {
		return nil, err
	}

	today := utils.TruncateToDay(timeNow())
	if err := s.availabilityRepo.SeedDays(ctx, eq.ID, today, domain.AvailabilityHorizonDays); err != nil {
		// The listing exists; the horizon job will backfill missing days.
		logger.ErrorContext(ctx, "failed to seed availability", "equipment_id", eq.ID, "error", err)
	}

	if user, err := s.userRepo.GetByID(ctx, eq.HostID); err == nil && !user.IsHost {
		user.IsHost = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			logger.ErrorContext(ctx, "failed to set host flag", "user_id", user.ID, "error", err)
		}
	}

	return eq, nil
}

func (s *equipmentService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, userID string, eq *domain.Equipment) (*domain.Equipment, error) {
	existing, err := s.equipmentRepo.GetByID(ctx, eq.ID)
	if err != nil {
		return nil, err
	}
	if existing.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}

	eq.HostID = existing.HostID
	eq.IsVerified = existing.IsVerified
	eq.IsActive = existing.IsActive
	if err := validateEquipment(eq); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) DeactivateEquipment(ctx context.Context, userID, equipmentID string) error {
	existing, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return err
	}
	if existing.HostID != userID {
		return domain.ErrNotAuthorized
	}
	return s.equipmentRepo.Deactivate(ctx, equipmentID)
}

func (s *equipmentService) ListMyEquipment(ctx context.Context, hostID string, limit, offset int32) ([]domain.Equipment, int32, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.equipmentRepo.ListByHost(ctx, hostID, limit, offset)
}

func (s *equipmentService) AddDocument(ctx context.Context, userID string, doc *domain.EquipmentDocument) (*domain.EquipmentDocument, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, doc.EquipmentID)
	if err != nil {
		return nil, err
	}
	if eq.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}
	if !documentTypes[doc.DocumentType] {
		return nil, domain.NewValidationError("document_type", "must be one of insurance, registration, inspection, manual")
	}
	if doc.DocumentURL == "" {
		return nil, domain.NewValidationError("document_url", "is required")
	}

	if err := s.equipmentRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *equipmentService) ListDocuments(ctx context.Context, userID, equipmentID string) ([]domain.EquipmentDocument, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	// Documents may contain sensitive paperwork; only the host sees them.
	if eq.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}
	return s.equipmentRepo.ListDocuments(ctx, equipmentID)
}

func validateEquipment(eq *domain.Equipment) error {
	if eq.Title == "" {
		return domain.NewValidationError("title", "is required")
	}
	if eq.HostID == "" {
		return domain.NewValidationError("host_id", "is required")
	}
	if eq.DailyPriceCents <= 0 {
		return domain.NewValidationError("daily_price_cents", "must be positive")
	}
	if eq.WeeklyPriceCents < 0 || eq.MonthlyPriceCents < 0 {
		return domain.NewValidationError("price", "cannot be negative")
	}
	if eq.Location == "" {
		return domain.NewValidationError("location", "is required")
	}
	if (eq.Latitude == nil) != (eq.Longitude == nil) {
		return domain.NewValidationError("coordinates", "latitude and longitude must be set together")
	}

	switch eq.EquipmentType {
	case domain.EquipmentTypeMobilityScooter:
		switch eq.ScooterSubtype {
		case domain.ScooterSubtypeLightweight, domain.ScooterSubtypeStandard, domain.ScooterSubtypeHeavyDuty, domain.ScooterSubtypeXL:
		default:
			return domain.NewValidationError("scooter_subtype", "invalid subtype for mobility scooter")
		}
		eq.StrollerSubtype = ""
	case domain.EquipmentTypeBabyStroller:
		switch eq.StrollerSubtype {
		case domain.StrollerSubtypeSingle, domain.StrollerSubtypeDouble, domain.StrollerSubtypeSingleJogger, domain.StrollerSubtypeDoubleJogger:
		default:
			return domain.NewValidationError("stroller_subtype", "invalid subtype for baby stroller")
		}
		eq.ScooterSubtype = ""
	default:
		return domain.NewValidationError("equipment_type", "must be mobility_scooter or baby_stroller")
	}

	return nil
}
