package service

import (
	"context"
	"time"

	"equipshare-backend/internal/domain"
)

// timeNow is swapped in tests.
var timeNow = time.Now

type AuthService interface {
	Signup(ctx context.Context, email, password, firstName, lastName, phone string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, firstName, lastName, phone, avatarURL string) (*domain.User, error)
}

type EquipmentService interface {
	CreateEquipment(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, userID string, eq *domain.Equipment) (*domain.Equipment, error)
	DeactivateEquipment(ctx context.Context, userID, equipmentID string) error
	ListMyEquipment(ctx context.Context, hostID string, limit, offset int32) ([]domain.Equipment, int32, error)

	AddDocument(ctx context.Context, userID string, doc *domain.EquipmentDocument) (*domain.EquipmentDocument, error)
	ListDocuments(ctx context.Context, userID, equipmentID string) ([]domain.EquipmentDocument, error)
}

// SearchResult is one page of catalog matches.
type SearchResult struct {
	Items   []domain.Equipment `json:"items"`
	Total   int32              `json:"total"`
	HasMore bool               `json:"has_more"`
}

type SearchService interface {
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}

// SearchParams mirrors the public search surface. Lat/Lng/RadiusKm form a
// radius constraint; all three must be set together.
type SearchParams struct {
	Query         string
	EquipmentType string
	Subtype       string
	Location      string
	MinPriceCents int32
	MaxPriceCents int32
	Features      []string
	Lat           *float64
	Lng           *float64
	RadiusKm      *float64
	Limit         int32
	Offset        int32
}

// DayUpdate is one day's requested state in a calendar write.
type DayUpdate struct {
	Date               time.Time
	IsAvailable        bool
	PriceOverrideCents *int32
}

// DayResult reports the per-day outcome of a bulk calendar write. Failed
// days carry the error; the rest of the batch still applies.
type DayResult struct {
	Date string `json:"date"`
	OK   bool   `json:"ok"`
	Err  string `json:"error,omitempty"`
}

type AvailabilityService interface {
	SetDay(ctx context.Context, userID string, equipmentID string, update DayUpdate) (*domain.AvailabilityDay, error)
	SetRange(ctx context.Context, userID string, equipmentID string, start, end time.Time, isAvailable bool, priceOverrideCents *int32) ([]DayResult, error)
	GetCalendar(ctx context.Context, equipmentID string, start, end time.Time) ([]domain.AvailabilityDay, error)
	IsRangeAvailable(ctx context.Context, equipmentID string, start, end time.Time) (bool, error)
	Quote(ctx context.Context, equipmentID string, start, end time.Time) (int32, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, guestID, equipmentID string, start, end time.Time, guestMessage string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, hostID, bookingID string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, hostID, bookingID string, hostNotes string) (*domain.Booking, error)
	ListMyBookings(ctx context.Context, guestID string, status string) ([]domain.BookingDetail, error)
	ListMyRentals(ctx context.Context, hostID string, status string) ([]domain.BookingDetail, error)
}

type MessageService interface {
	SendMessage(ctx context.Context, senderID, receiverID string, bookingID *string, content string) (*domain.Message, error)
	GetConversation(ctx context.Context, userID, peerID string) ([]domain.Message, error)
	GetBookingThread(ctx context.Context, userID, bookingID string) ([]domain.Message, error)
	MarkRead(ctx context.Context, userID, messageID string) error
}

// PresignedUpload is the client's ticket to push bytes to object storage.
type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileKey   string `json:"file_key"`
	ExpiresAt int64  `json:"expires_at"`
}

type UploadService interface {
	PresignEquipmentImage(ctx context.Context, userID, equipmentID, filename, contentType string) (*PresignedUpload, error)
	PresignTripPhoto(ctx context.Context, userID, bookingID string, photoType domain.TripPhotoType, filename, contentType string) (*domain.TripPhoto, *PresignedUpload, error)
	ConfirmTripPhoto(ctx context.Context, userID, photoID string) error
	ListTripPhotos(ctx context.Context, userID, bookingID string) ([]domain.TripPhoto, error)
	DownloadURL(ctx context.Context, fileKey string) (string, error)
}
