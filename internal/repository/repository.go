package repository

import (
	"context"
	"time"

	"equipshare-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// EquipmentFilter is the search surface over the catalog. Zero values mean
// "no constraint". Subtype only applies together with EquipmentType.
type EquipmentFilter struct {
	Query         string
	EquipmentType string
	Subtype       string
	Location      string
	MinPriceCents int32
	MaxPriceCents int32
	Features      []string
	Bounds        *GeoBounds
	Limit         int32
	Offset        int32
}

type GeoBounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	Deactivate(ctx context.Context, id string) error
	ListByHost(ctx context.Context, hostID string, limit, offset int32) ([]domain.Equipment, int32, error)
	Search(ctx context.Context, filter EquipmentFilter) ([]domain.Equipment, int32, error)

	AddDocument(ctx context.Context, doc *domain.EquipmentDocument) error
	ListDocuments(ctx context.Context, equipmentID string) ([]domain.EquipmentDocument, error)
}

type AvailabilityRepository interface {
	// Upsert inserts or updates the single row for (equipment_id, date)
	// atomically; repeated identical calls are idempotent.
	Upsert(ctx context.Context, day *domain.AvailabilityDay) (*domain.AvailabilityDay, error)

	// SeedDays bulk-creates default-available rows for the horizon starting
	// at from; existing rows are left untouched.
	SeedDays(ctx context.Context, equipmentID string, from time.Time, days int) error

	// UnblockRange marks every day in the inclusive range available again,
	// releasing the hold a cancelled booking placed.
	UnblockRange(ctx context.Context, equipmentID string, start, end time.Time) error

	ListRange(ctx context.Context, equipmentID string, start, end time.Time) ([]domain.AvailabilityDay, error)
	CountBlocked(ctx context.Context, equipmentID string, start, end time.Time) (int32, error)
}

type BookingRepository interface {
	// CreateIfAvailable performs the availability gate and the insert in one
	// transaction serialized on the equipment row, then blocks the booked
	// days in the availability ledger. Returns domain.ErrUnavailableRange
	// when a blocked day or an overlapping pending/confirmed booking exists.
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error

	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, b *domain.Booking) error
	ListByGuest(ctx context.Context, guestID string, status string) ([]domain.BookingDetail, error)
	ListByHost(ctx context.Context, hostID string, status string) ([]domain.BookingDetail, error)

	CreateTripPhoto(ctx context.Context, photo *domain.TripPhoto) error
	GetTripPhoto(ctx context.Context, id string) (*domain.TripPhoto, error)
	ConfirmTripPhoto(ctx context.Context, id string) error
	ListTripPhotos(ctx context.Context, bookingID string) ([]domain.TripPhoto, error)
	DeleteExpiredPendingPhotos(ctx context.Context) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	ListConversation(ctx context.Context, userID, peerID string) ([]domain.Message, error)
	ListByBooking(ctx context.Context, bookingID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, id, receiverID string) error
}
