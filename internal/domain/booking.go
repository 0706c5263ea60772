package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a reserved inclusive date range for one equipment item.
// TotalPriceCents is computed from the equipment's price tiers at creation
// time and never recomputed afterwards.
type Booking struct {
	ID              string        `json:"id"`
	GuestID         string        `json:"guest_id"`
	HostID          string        `json:"host_id"` // denormalized from equipment at creation
	EquipmentID     string        `json:"equipment_id"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	TotalPriceCents int32         `json:"total_price_cents"`
	Status          BookingStatus `json:"status"`
	GuestMessage    string        `json:"guest_message,omitempty"`
	HostNotes       string        `json:"host_notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// CanTransitionTo encodes the one-directional booking lifecycle.
// Cancelled and completed are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled || next == BookingStatusCompleted
	}
	return false
}

// BookingDetail joins a booking with its equipment and the counterpart
// user as seen from the requesting side.
type BookingDetail struct {
	Booking     Booking      `json:"booking"`
	Equipment   *Equipment   `json:"equipment,omitempty"`
	Counterpart *UserSummary `json:"counterpart,omitempty"`
}

type TripPhotoType string

const (
	TripPhotoTypeBefore TripPhotoType = "before"
	TripPhotoTypeAfter  TripPhotoType = "after"
)

type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "PENDING"
	UploadStatusConfirmed UploadStatus = "CONFIRMED"
)

// TripPhoto is a before/after photo a participant attaches to a booking.
// Rows start PENDING with an expiry and are confirmed once the bytes land
// in object storage.
type TripPhoto struct {
	ID        string        `json:"id"`
	BookingID string        `json:"booking_id"`
	UserID    string        `json:"user_id"`
	PhotoType TripPhotoType `json:"photo_type"`
	FileKey   string        `json:"file_key"`
	Status    UploadStatus  `json:"status"`
	ExpiresAt *time.Time    `json:"expires_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
