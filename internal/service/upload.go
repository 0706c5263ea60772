package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"equipshare-backend/internal/domain"
	"equipshare-backend/internal/repository"
	"equipshare-backend/internal/storage"

	"github.com/google/uuid"
)

const (
	presignExpiry      = 15 * time.Minute
	pendingPhotoExpiry = 24 * time.Hour
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type uploadService struct {
	backend       storage.Backend
	equipmentRepo repository.EquipmentRepository
	bookingRepo   repository.BookingRepository
}

func NewUploadService(
	backend storage.Backend,
	equipmentRepo repository.EquipmentRepository,
	bookingRepo repository.BookingRepository,
) UploadService {
	return &uploadService{
		backend:       backend,
		equipmentRepo: equipmentRepo,
		bookingRepo:   bookingRepo,
	}
}

// PresignEquipmentImage hands the host a short-lived URL for a listing
// photo. The returned file key goes into the listing's images on the next
// equipment update.
func (s *uploadService) PresignEquipmentImage(ctx context.Context, userID, equipmentID, filename, contentType string) (*PresignedUpload, error) {
	if !allowedImageTypes[contentType] {
		return nil, domain.NewValidationError("content_type", "must be image/jpeg, image/png or image/webp")
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if eq.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}

	key := fmt.Sprintf("equipment/%s/%s%s", equipmentID, uuid.New().String(), safeExt(filename))
	url, err := s.backend.GeneratePresignedUploadURL(ctx, key, contentType, presignExpiry)
	if err != nil {
		return nil, err
	}

	return &PresignedUpload{
		UploadURL: url,
		FileKey:   key,
		ExpiresAt: timeNow().Add(presignExpiry).Unix(),
	}, nil
}

// PresignTripPhoto records a PENDING photo row and hands out the upload
// URL. The row expires if the bytes never arrive; the purge job deletes
// stale rows.
func (s *uploadService) PresignTripPhoto(ctx context.Context, userID, bookingID string, photoType domain.TripPhotoType, filename, contentType string) (*domain.TripPhoto, *PresignedUpload, error) {
	if photoType != domain.TripPhotoTypeBefore && photoType != domain.TripPhotoTypeAfter {
		return nil, nil, domain.NewValidationError("photo_type", "must be before or after")
	}
	if !allowedImageTypes[contentType] {
		return nil, nil, domain.NewValidationError("content_type", "must be image/jpeg, image/png or image/webp")
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if b.GuestID != userID && b.HostID != userID {
		return nil, nil, domain.ErrNotAuthorized
	}

	key := fmt.Sprintf("bookings/%s/trip-photos/%s%s", bookingID, uuid.New().String(), safeExt(filename))
	expiresAt := timeNow().Add(pendingPhotoExpiry)
	photo := &domain.TripPhoto{
		BookingID: bookingID,
		UserID:    userID,
		PhotoType: photoType,
		FileKey:   key,
		Status:    domain.UploadStatusPending,
		ExpiresAt: &expiresAt,
	}
	if err := s.bookingRepo.CreateTripPhoto(ctx, photo); err != nil {
		return nil, nil, err
	}

	url, err := s.backend.GeneratePresignedUploadURL(ctx, key, contentType, presignExpiry)
	if err != nil {
		return nil, nil, err
	}

	return photo, &PresignedUpload{
		UploadURL: url,
		FileKey:   key,
		ExpiresAt: timeNow().Add(presignExpiry).Unix(),
	}, nil
}

// ConfirmTripPhoto verifies the bytes landed in storage before flipping the
// row to CONFIRMED.
func (s *uploadService) ConfirmTripPhoto(ctx context.Context, userID, photoID string) error {
	photo, err := s.bookingRepo.GetTripPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return domain.ErrNotAuthorized
	}
	if photo.Status == domain.UploadStatusConfirmed {
		return nil
	}

	exists, size, err := s.backend.FileExists(ctx, photo.FileKey)
	if err != nil {
		return err
	}
	if !exists || size == 0 {
		return domain.NewValidationError("file", "upload not found in storage")
	}

	return s.bookingRepo.ConfirmTripPhoto(ctx, photoID)
}

func (s *uploadService) ListTripPhotos(ctx context.Context, userID, bookingID string) ([]domain.TripPhoto, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != userID && b.HostID != userID {
		return nil, domain.ErrNotAuthorized
	}

	photos, err := s.bookingRepo.ListTripPhotos(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	confirmed := photos[:0]
	for _, p := range photos {
		if p.Status == domain.UploadStatusConfirmed || p.UserID == userID {
			confirmed = append(confirmed, p)
		}
	}
	return confirmed, nil
}

func (s *uploadService) DownloadURL(ctx context.Context, fileKey string) (string, error) {
	exists, _, err := s.backend.FileExists(ctx, fileKey)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrNotFound
	}
	return s.backend.GeneratePresignedDownloadURL(ctx, fileKey, presignExpiry)
}

// safeExt keeps only a plain extension from a client filename.
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext
	}
	return ""
}
